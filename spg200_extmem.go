// spg200_extmem.go - External-memory chip-select mapper

/*
spg200_extmem.go - External Memory Mapper

Routes the external address window (everything above the on-chip
register space) to the host I/O port's four chip-select regions
(ROMCSB, CSB1, CSB2, CSB3) according to a 2-bit address-decode field:
0 routes everything through ROMCSB alone; 1 splits a 22-bit space
two ways between ROMCSB and CSB1 at bit 21; 2 and 3 (treated
identically) split a 22-bit space four ways between all of ROMCSB,
CSB1, CSB2 and CSB3 at bit 20.

The two-way split has a documented read/write asymmetry inherited
verbatim from the reference: the ROMCSB half masks reads to 0x1fffff
but writes to 0x1ffff. spec.md's Design Notes call this out explicitly
as retained, not normalized.
*/

package main

const extmemControlWriteMask = 0x0ffe

type extmem struct {
	ctrl uint16
	io   Spg200Io
}

func newExtmem(io Spg200Io) *extmem {
	return &extmem{io: io}
}

func (e *extmem) Reset() {
	e.ctrl = 5 << 3 // bus_arbiter = 5
}

func (e *extmem) addressDecode() int { return int(e.ctrl>>6) & 0x3 }

func (e *extmem) GetControl() uint16 { return e.ctrl }
func (e *extmem) SetControl(value uint16) {
	e.ctrl = value & extmemControlWriteMask
}

func (e *extmem) ReadWord(addr uint32) uint16 {
	switch e.addressDecode() {
	case 0:
		return e.io.ReadRomCsb(addr)
	case 1:
		switch addr >> 21 {
		case 0:
			return e.io.ReadRomCsb(addr & 0x1fffff)
		case 1:
			return e.io.ReadCsb1(addr & 0x1fffff)
		}
	case 2, 3:
		switch addr >> 20 {
		case 0:
			return e.io.ReadRomCsb(addr & 0x0fffff)
		case 1:
			return e.io.ReadCsb1(addr & 0x0fffff)
		case 2:
			return e.io.ReadCsb2(addr & 0x0fffff)
		case 3:
			return e.io.ReadCsb3(addr & 0x0fffff)
		}
	}
	return 0
}

func (e *extmem) WriteWord(addr uint32, value uint16) {
	switch e.addressDecode() {
	case 0:
		e.io.WriteRomCsb(addr, value)
	case 1:
		switch addr >> 21 {
		case 0:
			e.io.WriteRomCsb(addr&0x1ffff, value)
		case 1:
			e.io.WriteCsb1(addr&0x1fffff, value)
		}
	case 2, 3:
		switch addr >> 20 {
		case 0:
			e.io.WriteRomCsb(addr&0x0fffff, value)
		case 1:
			e.io.WriteCsb1(addr&0x0fffff, value)
		case 2:
			e.io.WriteCsb2(addr&0x0fffff, value)
		case 3:
			e.io.WriteCsb3(addr&0x0fffff, value)
		}
	}
}
