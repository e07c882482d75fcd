package main

import "testing"

// fakeGpioIo is a minimal Spg200Io double that lets tests configure the
// host-side pin values gpio reads and capture what it writes back.
type fakeGpioIo struct {
	portA, portB, portC uint16

	setACalls, setBCalls, setCCalls int
	lastSetValue, lastSetMask       uint16
}

func (f *fakeGpioIo) RunCycles(cycles int) {}
func (f *fakeGpioIo) GetAdc0() uint16      { return 0 }
func (f *fakeGpioIo) GetAdc1() uint16      { return 0 }
func (f *fakeGpioIo) GetAdc2() uint16      { return 0 }
func (f *fakeGpioIo) GetAdc3() uint16      { return 0 }

func (f *fakeGpioIo) GetPortA() uint16 { return f.portA }
func (f *fakeGpioIo) GetPortB() uint16 { return f.portB }
func (f *fakeGpioIo) GetPortC() uint16 { return f.portC }

func (f *fakeGpioIo) SetPortA(value, mask uint16) {
	f.setACalls++
	f.lastSetValue, f.lastSetMask = value, mask
}
func (f *fakeGpioIo) SetPortB(value, mask uint16) {
	f.setBCalls++
	f.lastSetValue, f.lastSetMask = value, mask
}
func (f *fakeGpioIo) SetPortC(value, mask uint16) {
	f.setCCalls++
	f.lastSetValue, f.lastSetMask = value, mask
}

func (f *fakeGpioIo) TxUart(value uint8) {}
func (f *fakeGpioIo) RxUartDone()        {}

func (f *fakeGpioIo) ReadRomCsb(addr uint32) uint16          { return 0 }
func (f *fakeGpioIo) WriteRomCsb(addr uint32, value uint16) {}
func (f *fakeGpioIo) ReadCsb1(addr uint32) uint16            { return 0 }
func (f *fakeGpioIo) WriteCsb1(addr uint32, value uint16)   {}
func (f *fakeGpioIo) ReadCsb2(addr uint32) uint16            { return 0 }
func (f *fakeGpioIo) WriteCsb2(addr uint32, value uint16)   {}
func (f *fakeGpioIo) ReadCsb3(addr uint32) uint16            { return 0 }
func (f *fakeGpioIo) WriteCsb3(addr uint32, value uint16)   {}

func TestGpioSetModeMasksTo5Bits(t *testing.T) {
	g := newGpio(&fakeGpioIo{})
	g.SetMode(0xffff)
	if g.GetMode() != 0x001f {
		t.Errorf("GetMode() = 0x%x, want 0x001f", g.GetMode())
	}
}

func TestGpioResetZeroesPortsButNotMode(t *testing.T) {
	g := newGpio(&fakeGpioIo{})
	g.SetMode(0x0a)
	g.SetBuffer(gpioPortA, 0xffff)
	g.Reset()
	if g.GetMode() != 0x0a {
		t.Errorf("Reset cleared mode: GetMode() = 0x%x, want 0x0a", g.GetMode())
	}
	if g.GetBuffer(gpioPortA) != 0 {
		t.Errorf("Reset did not clear port buffer: got 0x%x", g.GetBuffer(gpioPortA))
	}
}

// readGpio blends the latched buffer (for pins configured as output and
// not masked) with the live host pin value (for pins left as inputs);
// a masked bit reads as 0 regardless of direction. Setting attrib on
// every bit cancels its XOR with dir so the buffer reads back
// unmodified, isolating the dir/mask blending this test targets.
func TestGpioReadGpioBlendsBufferAndHostPins(t *testing.T) {
	io := &fakeGpioIo{portA: 0xffff}
	g := newGpio(io)
	g.SetAttrib(gpioPortA, 0xffff)

	// bit0: output, not masked -> reads from buffer (set to 1)
	// bit1: input (dir=0) -> reads from host pin (portA bit1 = 1)
	// bit2: output but masked -> reads 0, not the host pin
	g.SetDir(gpioPortA, 0x0001|0x0004)
	g.SetMask(gpioPortA, 0x0004)
	g.SetBuffer(gpioPortA, 0x0001)

	got := g.GetData(gpioPortA)
	if got&0x1 == 0 {
		t.Errorf("bit0 (output, unmasked): GetData = 0x%x, want bit0 set from buffer", got)
	}
	if got&0x2 == 0 {
		t.Errorf("bit1 (input): GetData = 0x%x, want bit1 set from host pin", got)
	}
	if got&0x4 != 0 {
		t.Errorf("bit2 (masked output): GetData = 0x%x, want bit2 clear regardless of host pin", got)
	}
}

func TestGpioSetBufferWritesBackThroughSetPortA(t *testing.T) {
	io := &fakeGpioIo{}
	g := newGpio(io)

	g.SetDir(gpioPortA, 0x0003)
	g.SetBuffer(gpioPortA, 0x0001)

	if io.setACalls == 0 {
		t.Fatal("SetBuffer did not call through to SetPortA")
	}
	if io.lastSetMask != 0x0003 {
		t.Errorf("SetPortA mask = 0x%x, want dir bits 0x0003", io.lastSetMask)
	}
}

func TestGpioPortsDispatchToDistinctHostMethods(t *testing.T) {
	io := &fakeGpioIo{}
	g := newGpio(io)

	g.SetDir(gpioPortA, 0x1)
	g.SetBuffer(gpioPortA, 0x1)
	g.SetDir(gpioPortB, 0x1)
	g.SetBuffer(gpioPortB, 0x1)
	g.SetDir(gpioPortC, 0x1)
	g.SetBuffer(gpioPortC, 0x1)

	if io.setACalls == 0 || io.setBCalls == 0 || io.setCCalls == 0 {
		t.Errorf("expected all three ports to dispatch independently, got A=%d B=%d C=%d",
			io.setACalls, io.setBCalls, io.setCCalls)
	}
}
