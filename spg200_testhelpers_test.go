package main

// testBus is a flat word-addressable memory used to back a *cpu in
// tests that only need a working busInterface, not a full machine.
type testBus struct {
	mem [1 << 16]uint16
}

func (b *testBus) ReadWord(addr uint32) uint16          { return b.mem[addr&0xffff] }
func (b *testBus) WriteWord(addr uint32, value uint16) { b.mem[addr&0xffff] = value }

func newTestIrqAggregator() (*irqAggregator, *cpu) {
	c := newCpu(&testBus{})
	return newIrqAggregator(c), c
}
