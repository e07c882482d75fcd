// spg200_hostio.go - Host I/O port and presentation sink contracts

/*
spg200_hostio.go - Capability Sets the Embedder Implements

Everything outside the five core subsystems goes through two small
interfaces rather than a deep class
hierarchy: a host I/O port the core calls into (ROM reads, NVRAM,
ADC samples, GPIO pin state, UART transmit, per-step advance) and a
presentation sink the core exposes (picture buffer, audio ring,
controller LED). Both are plain interfaces with no embedded state of
their own, matching the "deep class hierarchy / virtual bus" Design
Note: the bus stays an inlined method on the machine, and only the
host boundary is polymorphic.
*/

package main

// Spg200Io is the host I/O port: the capability set the embedding
// caller must implement. The VSmile console wrapper is one concrete
// implementation (spg200_vsmile.go); a bare test harness is another.
type Spg200Io interface {
	// RunCycles is called once per Step/RunFrame iteration, before any
	// peripheral advances, so the host can run its own timers (e.g. the
	// joystick protocol engine).
	RunCycles(cycles int)

	GetAdc0() uint16
	GetAdc1() uint16
	GetAdc2() uint16
	GetAdc3() uint16

	GetPortA() uint16
	SetPortA(value, mask uint16)
	GetPortB() uint16
	SetPortB(value, mask uint16)
	GetPortC() uint16
	SetPortC(value, mask uint16)

	TxUart(value uint8)
	RxUartDone()

	ReadRomCsb(addr uint32) uint16
	WriteRomCsb(addr uint32, value uint16)
	ReadCsb1(addr uint32) uint16
	WriteCsb1(addr uint32, value uint16)
	ReadCsb2(addr uint32) uint16
	WriteCsb2(addr uint32, value uint16)
	ReadCsb3(addr uint32) uint16
	WriteCsb3(addr uint32, value uint16)
}

// nullIo is a minimal Spg200Io used by unit tests that only exercise
// the CPU/bus/peripherals without a full console wrapper. ROMCSB reads
// and writes an in-memory rom array that CSB1 also reads; every other
// call does nothing or returns 0.
type nullIo struct {
	rom [1 << 20]uint16
}

func (n *nullIo) RunCycles(int)                {}
func (n *nullIo) GetAdc0() uint16              { return 0 }
func (n *nullIo) GetAdc1() uint16              { return 0 }
func (n *nullIo) GetAdc2() uint16              { return 0 }
func (n *nullIo) GetAdc3() uint16              { return 0 }
func (n *nullIo) GetPortA() uint16             { return 0 }
func (n *nullIo) SetPortA(value, mask uint16)  {}
func (n *nullIo) GetPortB() uint16             { return 0 }
func (n *nullIo) SetPortB(value, mask uint16)  {}
func (n *nullIo) GetPortC() uint16             { return 0 }
func (n *nullIo) SetPortC(value, mask uint16)  {}
func (n *nullIo) TxUart(value uint8)           {}
func (n *nullIo) RxUartDone()                  {}
func (n *nullIo) ReadRomCsb(addr uint32) uint16 {
	return n.rom[addr&0xfffff]
}
func (n *nullIo) WriteRomCsb(addr uint32, value uint16) { n.rom[addr&0xfffff] = value }
func (n *nullIo) ReadCsb1(addr uint32) uint16           { return n.rom[addr&0xfffff] }
func (n *nullIo) WriteCsb1(addr uint32, value uint16)   {}
func (n *nullIo) ReadCsb2(addr uint32) uint16           { return 0 }
func (n *nullIo) WriteCsb2(addr uint32, value uint16)   {}
func (n *nullIo) ReadCsb3(addr uint32) uint16           { return 0 }
func (n *nullIo) WriteCsb3(addr uint32, value uint16)   {}

// PresentationSink is the per-frame output surface: a 320x240 buffer
// of BGR-555 words (transparent sentinel already resolved to opaque
// black by the PPU) and a drained, zeroed stereo 16-bit audio ring.
type PresentationSink interface {
	GetPicture() []uint16
	GetAudio() []uint16
}
