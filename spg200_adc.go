// spg200_adc.go - One-shot ADC conversion block

/*
spg200_adc.go - Analog-to-Digital Converter

A single combined control/status register plus a 10-bit data
register. Writing control both updates the control bits and
write-1-to-clears the status IRQ bit from the same value, then starts
a conversion on a 0->1 transition of the request bit while enabled.
Conversions are clocked by a divisible clock gated by the control
register's clock-select field.

The `req_auto_8k` bit selects a free-running 8kHz sampling mode that
is not implemented; setting it is fatal, matching spec.md's listed
fatal condition and the Design Notes' instruction to preserve it
rather than implement the mode.
*/

package main

const (
	adcCtrlWriteMask   = 0x177f
	adcStatusWriteMask = 0x2000
)

type adc struct {
	ctrl          uint16
	status        uint16
	data          uint16
	clock         divisibleClock
	activeChannel int

	irq *irqAggregator
	io  Spg200Io
}

func newAdc(irq *irqAggregator, io Spg200Io) *adc {
	return &adc{irq: irq, io: io, clock: newDivisibleClock(16)}
}

func (a *adc) Reset() {
	a.clock.Reset()
	a.activeChannel = -1
	a.ctrl = 0
	a.status = 0
	a.data = 0
}

func (a *adc) ctrlRequest() bool   { return a.ctrl&(1<<12) != 0 }
func (a *adc) ctrlAutoReq8k() bool { return a.ctrl&(1<<10) != 0 }
func (a *adc) ctrlIntEnable() bool { return a.ctrl&(1<<9) != 0 }
func (a *adc) ctrlChannel() int    { return int(a.ctrl>>4) & 0x3 }
func (a *adc) ctrlClockSel() int   { return int(a.ctrl>>2) & 0x3 }
func (a *adc) ctrlEnabled() bool   { return a.ctrl&(1<<0) != 0 }
func (a *adc) statusIrq() bool     { return a.status&(1<<13) != 0 }

func (a *adc) RunCycles(cycles int) {
	if a.activeChannel < 0 {
		return
	}
	if !a.clock.Tick(cycles) || !a.clock.GetDividedTick(uint(a.ctrlClockSel())) {
		return
	}

	var sample uint16
	switch a.activeChannel {
	case 0:
		sample = a.io.GetAdc0()
	case 1:
		sample = a.io.GetAdc1()
	case 2:
		sample = a.io.GetAdc2()
	case 3:
		sample = a.io.GetAdc3()
	}

	a.data = (a.data & 0x7fff & ^uint16(0x3ff)) | (sample & 0x3ff) | (1 << 15)
	a.status |= 1 << 13
	a.activeChannel = -1
	if a.ctrlIntEnable() {
		a.irq.SetAdcIrq(true)
	}
}

func (a *adc) SetControl(value uint16) {
	a.ctrl = value & adcCtrlWriteMask
	a.status &^= value & adcStatusWriteMask

	if a.ctrlAutoReq8k() {
		die("adc: unexpected req_auto_8k")
	}

	if !a.statusIrq() {
		a.irq.SetAdcIrq(false)
	}

	if a.ctrlEnabled() {
		a.status |= 1 << 13
		if a.ctrlRequest() {
			a.status &^= 1 << 13
			a.ctrl &^= 1 << 12
			a.activeChannel = a.ctrlChannel()
			a.data &^= 1 << 15
		}
	} else {
		a.activeChannel = -1
	}
}

func (a *adc) GetControl() uint16 {
	return a.ctrl | a.status
}

func (a *adc) GetData() uint16 {
	return a.data
}
