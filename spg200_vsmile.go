// spg200_vsmile.go - V.Smile console: cartridge/system ROM mapping and pad

/*
spg200_vsmile.go - VSmile Console

Wraps an spg200 machine with the V.Smile's actual external-memory
wiring: a cartridge ROM on ROMCSB+CSB1 (some titles ship a second,
smaller ROM continuing past the 4MiB mark on CSB2, or repurpose CSB2
as an Art Studio NVRAM buffer), the system ROM on CSB3, and a Port
B/Port C GPIO readback that encodes the power/restart buttons and a
region code alongside the joystick UART's RTS/CTS pair. Two joystick
ports exist in the original hardware; this emulation wires only the
first, matching the single-controller scope spec.md's Non-goals carve
out for multiplayer peripherals.
*/

package main

const (
	cartRomWords  = 4 * 1024 * 1024
	sysRomWords   = 1 * 1024 * 1024
	artNvramWords = 128 * 1024
)

type cartType int

const (
	cartTypeNormal cartType = iota
	cartTypeArtStudio
)

// vsmileIo implements Spg200Io against the V.Smile's cartridge/system
// ROM images and GPIO/joystick wiring.
type vsmileIo struct {
	sysRom  []uint16
	cartRom []uint16

	cartType   cartType
	artNvram   []uint16
	regionCode uint16
	vtechLogo  bool

	joy *vsmileJoy

	rts [2]bool
	cts [2]bool

	onButtonPressed      bool
	offButtonPressed     bool
	restartButtonPressed bool
}

// vsmile is the full emulated console: the machine plus the
// cartridge/system-ROM-aware host port and the joystick's RTS-edge
// wiring back into the external-IRQ lines.
type vsmile struct {
	spg200 *spg200
	io     *vsmileIo
}

// vsmileJoySend adapts the joystick engine's RTS/TX callbacks to the
// console's two UART-facing external IRQ lines (one per joystick
// port in hardware; only port 0 is wired here).
type vsmileJoySend struct {
	v   *vsmile
	num int
}

func (s *vsmileJoySend) SetRts(value bool) {
	old := s.v.io.rts[s.num]
	s.v.io.rts[s.num] = value
	if old && !value {
		if s.num == 0 {
			s.v.spg200.SetExt1Irq(true)
		} else {
			s.v.spg200.SetExt2Irq(true)
		}
	}
}

func (s *vsmileJoySend) Tx(value uint8) {
	s.v.spg200.UartTx(value)
}

// newVsmile builds a console around the given ROM images. cartRom
// must be cartRomWords long, sysRom sysRomWords long; artNvram may be
// nil unless cartType is cartTypeArtStudio, in which case it must be
// artNvramWords long.
func newVsmile(sysRom, cartRom []uint16, ct cartType, artNvram []uint16, regionCode uint16, vtechLogo bool, videoTiming int) *vsmile {
	if ct == cartTypeArtStudio && artNvram == nil {
		die("vsmile: art studio cart type requires initial nvram")
	}

	v := &vsmile{}
	v.io = &vsmileIo{
		sysRom:     sysRom,
		cartRom:    cartRom,
		cartType:   ct,
		artNvram:   artNvram,
		regionCode: regionCode & 0xf,
		vtechLogo:  vtechLogo,
		rts:        [2]bool{true, true},
	}
	v.io.joy = newVsmileJoy(&vsmileJoySend{v: v, num: 0})
	v.spg200 = newSpg200(videoTiming, v.io)
	return v
}

func (v *vsmile) RunFrame() { v.spg200.RunFrame() }

func (v *vsmile) Reset() {
	v.spg200.Reset()

	v.spg200.SetExt1Irq(true)
	v.spg200.SetExt2Irq(true)

	v.io.rts[0], v.io.rts[1] = true, true
	v.io.cts[0], v.io.cts[1] = false, false

	v.io.joy.Reset()

	v.io.onButtonPressed = false
	v.io.offButtonPressed = false
	v.io.restartButtonPressed = false
}

func (v *vsmile) GetPicture() []uint16                        { return v.spg200.GetPicture() }
func (v *vsmile) GetAudio() []uint16                          { return v.spg200.GetAudio() }
func (v *vsmile) GetArtNvram() []uint16                       { return v.io.artNvram }
func (v *vsmile) SetPpuViewSettings(settings ppuViewSettings) { v.spg200.SetPpuViewSettings(settings) }
func (v *vsmile) GetControllerLed() joyLedStatus              { return v.io.joy.GetLeds() }
func (v *vsmile) UpdateJoystick(input joyInput)               { v.io.joy.UpdateJoystick(input) }
func (v *vsmile) UpdateOnButton(pressed bool)                 { v.io.onButtonPressed = pressed }
func (v *vsmile) UpdateOffButton(pressed bool)                { v.io.offButtonPressed = pressed }
func (v *vsmile) UpdateRestartButton(pressed bool)            { v.io.restartButtonPressed = pressed }

func (io *vsmileIo) RunCycles(cycles int) { io.joy.RunCycles(cycles) }

func (io *vsmileIo) GetAdc0() uint16 { return 0x000 }
func (io *vsmileIo) GetAdc1() uint16 { return 0x3ff } // full battery
func (io *vsmileIo) GetAdc2() uint16 { return 0x000 }
func (io *vsmileIo) GetAdc3() uint16 { return 0x000 }

func (io *vsmileIo) GetPortA() uint16            { return 0 }
func (io *vsmileIo) SetPortA(value, mask uint16) {}

func (io *vsmileIo) GetPortB() uint16 {
	var v uint16
	if !io.offButtonPressed {
		v |= 1 << 7
	}
	if !io.onButtonPressed {
		v |= 1 << 6
	}
	if !io.restartButtonPressed {
		v |= 1 << 3
	}
	return v
}
func (io *vsmileIo) SetPortB(value, mask uint16) {}

func (io *vsmileIo) GetPortC() uint16 {
	val := io.regionCode | 0x0020 | 0x6000
	if io.vtechLogo {
		val |= 1 << 4
	}
	if io.cts[0] {
		val |= 1 << 8
	}
	if io.cts[1] {
		val |= 1 << 9
	}
	if io.rts[0] {
		val |= 1 << 10
	}
	if io.rts[1] {
		val |= 1 << 12
	}
	return val
}

func (io *vsmileIo) SetPortC(value, mask uint16) {
	if mask&0x0100 != 0 {
		io.cts[0] = value&0x0100 != 0
		io.joy.SetCts(io.cts[0])
	}
	if mask&0x0200 != 0 {
		io.cts[1] = value&0x0200 != 0
	}
}

func (io *vsmileIo) TxUart(value uint8) {
	if io.cts[0] {
		io.joy.Rx(value)
	}
}

func (io *vsmileIo) RxUartDone() { io.joy.TxDone() }

func (io *vsmileIo) ReadRomCsb(addr uint32) uint16 { return io.cartRom[addr] }
func (io *vsmileIo) WriteRomCsb(addr uint32, value uint16) {}

func (io *vsmileIo) ReadCsb1(addr uint32) uint16 { return io.cartRom[addr+0x100000] }
func (io *vsmileIo) WriteCsb1(addr uint32, value uint16) {}

// ReadCsb2/WriteCsb2 serve either the Art Studio NVRAM drawing buffer
// or the continuation of an oversized dual-ROM cartridge dump,
// matching the reference's dual use of this chip-select.
func (io *vsmileIo) ReadCsb2(addr uint32) uint16 {
	if io.cartType == cartTypeArtStudio {
		return io.artNvram[addr&0x1ffff]
	}
	return io.cartRom[addr+0x200000]
}

func (io *vsmileIo) WriteCsb2(addr uint32, value uint16) {
	if io.cartType == cartTypeArtStudio {
		io.artNvram[addr&0x1ffff] = value
	}
}

func (io *vsmileIo) ReadCsb3(addr uint32) uint16          { return io.sysRom[addr] }
func (io *vsmileIo) WriteCsb3(addr uint32, value uint16) {}
