// spg200_gpio.go - Three-port GPIO block

/*
spg200_gpio.go - Combinational Port Logic

Three ports (A, B, C), each a {buffer, dir, attrib, mask} tuple.
Reading a port combines the CPU-driven buffer with the host-driven pin
state according to direction and mask; writing a port's buffer, dir,
attrib or mask re-evaluates the host-facing SetPortX callback
immediately. This is pure combinational logic, not a register set with
side effects beyond the host callback, matching the reference 1:1.
*/

package main

const (
	gpioPortA = 0
	gpioPortB = 1
	gpioPortC = 2
)

type gpioPort struct {
	buffer uint16
	dir    uint16
	attrib uint16
	mask   uint16
}

type gpio struct {
	mode  uint16
	ports [3]gpioPort
	io    Spg200Io
}

func newGpio(io Spg200Io) *gpio {
	return &gpio{io: io}
}

func (g *gpio) Reset() {
	g.ports = [3]gpioPort{}
}

func (g *gpio) GetMode() uint16 { return g.mode }
func (g *gpio) SetMode(value uint16) {
	g.mode = value & 0x001f
}

func (g *gpio) GetData(port int) uint16 { return g.readGpio(port) }

func (g *gpio) GetBuffer(port int) uint16 { return g.ports[port].buffer }
func (g *gpio) SetBuffer(port int, value uint16) {
	g.ports[port].buffer = value
	g.writeGpio(port)
}

func (g *gpio) GetDir(port int) uint16 { return g.ports[port].dir }
func (g *gpio) SetDir(port int, value uint16) {
	g.ports[port].dir = value
	g.writeGpio(port)
}

func (g *gpio) GetAttrib(port int) uint16 { return g.ports[port].attrib }
func (g *gpio) SetAttrib(port int, value uint16) {
	g.ports[port].attrib = value
	g.writeGpio(port)
}

func (g *gpio) GetMask(port int) uint16 { return g.ports[port].mask }
func (g *gpio) SetMask(port int, value uint16) {
	g.ports[port].mask = value
	g.writeGpio(port)
}

func (g *gpio) readGpio(port int) uint16 {
	p := g.ports[port]
	buf := p.buffer ^ (p.dir &^ p.attrib)
	ioOut := g.hostPort(port)
	return (buf & (p.dir &^ p.mask)) | (ioOut &^ p.dir &^ p.mask)
}

func (g *gpio) writeGpio(port int) {
	p := g.ports[port]
	buf := (p.buffer ^ (p.dir &^ p.attrib)) &^ p.mask
	bits := p.dir &^ p.mask

	switch port {
	case gpioPortA:
		g.io.SetPortA(buf, bits)
	case gpioPortB:
		g.io.SetPortB(buf, bits)
	case gpioPortC:
		g.io.SetPortC(buf, bits)
	}
}

func (g *gpio) hostPort(port int) uint16 {
	switch port {
	case gpioPortA:
		return g.io.GetPortA()
	case gpioPortB:
		return g.io.GetPortB()
	case gpioPortC:
		return g.io.GetPortC()
	}
	return 0
}
