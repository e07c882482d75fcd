// spg200_timer.go - 32768 Hz timebase and two up-counters

/*
spg200_timer.go - Timer Block

A single divisible clock ticks at 32768 Hz (derived from the nominal
27 MHz system clock, i.e. a DivisibleClock with a=27_000_000,
b=32768). Two independent 16-bit up-counters (A, B) are clocked from a
subset of the timebase's divided sub-rates selected by source fields;
the same clock also drives the fixed tick IRQs (4096/2048/1024/4 Hz)
and the TMB1/TMB2 beat IRQs used by other peripherals (the SPU beat
counter, in particular).

The per-tick cascade below is copied faithfully from the reference,
`continue` and all: each `continue` ends the whole iteration, so when
an earlier gate in the cascade (4096/2048/1024 Hz) didn't fire, the
TMB1/TMB2 checks are not reached on that tick either. This is not a bug to
fix; spec.md's Design Notes call out several such cascades as
"preserve, don't normalize."
*/

package main

const timerTimebaseWriteMask = 0x000f

type timer struct {
	irq *irqAggregator

	clock divisibleClock

	timerADivisor int
	timerBEnabled bool
	timerAEnabled bool
	timerBDivisor int

	timerAData    uint16
	timerAPreload uint16
	timerBData    uint16
	timerBPreload uint16

	timebaseSetup  uint16
	timerAControl  uint16
	timerBControl  uint16
}

func newTimer(irq *irqAggregator) *timer {
	return &timer{irq: irq, clock: newDivisibleClockAB(27000000, 32768)}
}

func (t *timer) tmb1() uint { return uint(t.timebaseSetup) & 0x3 }
func (t *timer) tmb2() uint { return uint(t.timebaseSetup>>2) & 0x3 }

func (t *timer) aSourceA() int { return int(t.timerAControl) & 0x7 }
func (t *timer) aSourceB() int { return int(t.timerAControl>>3) & 0x7 }
func (t *timer) bSourceC() int { return int(t.timerBControl) & 0x7 }

func (t *timer) Reset() {
	t.clock.Reset()

	t.timebaseSetup = 0

	t.timerADivisor = -1
	t.timerAData = 0
	t.timerAPreload = 0
	t.timerAEnabled = false
	t.timerAControl = (6 << 0) | (6 << 3)
	t.updateTimerADivisors()

	t.timerBDivisor = -1
	t.timerBData = 0
	t.timerBPreload = 0
	t.timerBEnabled = false
	t.timerBControl = 6 << 0
	t.updateTimerBDivisors()
}

func (t *timer) RunCycles(cycles int) {
	for t.clock.Tick(cycles) {
		if t.timerAEnabled && t.timerADivisor >= 0 && t.clock.GetDividedTick(uint(t.timerADivisor)) {
			t.tickTimerA()
		}
		if t.timerBEnabled && t.timerBDivisor >= 0 && t.clock.GetDividedTick(uint(t.timerBDivisor)) {
			t.tickTimerB()
		}

		if !t.clock.GetDividedTick(3) {
			continue
		}
		t.irq.Set4096HzIrq(true)

		if !t.clock.GetDividedTick(4) {
			continue
		}
		t.irq.Set2048HzIrq(true)

		if !t.clock.GetDividedTick(5) {
			continue
		}
		t.irq.Set1024HzIrq(true)

		if t.clock.GetDividedTick(8 - t.tmb2()) {
			t.irq.SetTmb2Irq(true)
		}
		if t.clock.GetDividedTick(12 - t.tmb1()) {
			t.irq.SetTmb1Irq(true)
		}

		if !t.clock.GetDividedTick(13) {
			continue
		}
		t.irq.Set4HzIrq(true)
	}
}

func (t *timer) tickTimerA() {
	t.timerAData++
	if t.timerAData == 0 {
		t.timerAData = t.timerAPreload
		t.irq.SetTimerAIrq(true)
	}
}

func (t *timer) tickTimerB() {
	t.timerBData++
	if t.timerBData == 0 {
		t.timerBData = t.timerBPreload
		t.irq.SetTimerBIrq(true)
	}
}

func (t *timer) GetTimebaseSetup() uint16 { return t.timebaseSetup }
func (t *timer) SetTimebaseSetup(value uint16) {
	t.timebaseSetup = value & timerTimebaseWriteMask
	t.updateTimerADivisors()
}

func (t *timer) ClearTimebaseCounter() {
	t.clock.divCounter = 0
}

func (t *timer) GetTimerAData() uint16 { return t.timerAData }
func (t *timer) SetTimerAData(value uint16) {
	t.timerAPreload = value
	t.timerAData = value
}

func (t *timer) GetTimerAControl() uint16 { return t.timerAControl }
func (t *timer) SetTimerAControl(value uint16) {
	t.timerAControl = value
	t.updateTimerADivisors()
}

func (t *timer) GetTimerAEnabled() uint16 {
	if t.timerAEnabled {
		return 1
	}
	return 0
}
func (t *timer) SetTimerAEnabled(value uint16) { t.timerAEnabled = value&1 != 0 }
func (t *timer) ClearTimerAIrq()               { t.irq.SetTimerAIrq(false) }

func (t *timer) GetTimerBData() uint16 { return t.timerBData }
func (t *timer) SetTimerBData(value uint16) {
	t.timerBPreload = value
	t.timerBData = value
}

func (t *timer) GetTimerBControl() uint16 { return t.timerBControl }
func (t *timer) SetTimerBControl(value uint16) {
	t.timerBControl = value
	t.updateTimerBDivisors()
}

func (t *timer) GetTimerBEnabled() uint16 {
	if t.timerBEnabled {
		return 1
	}
	return 0
}
func (t *timer) SetTimerBEnabled(value uint16) { t.timerBEnabled = value&1 != 0 }
func (t *timer) ClearTimerBIrq()               { t.irq.SetTimerBIrq(false) }

func (t *timer) updateTimerADivisors() {
	t.timerADivisor = -1

	sourceA := t.aSourceA()
	if sourceA == 0 || sourceA == 1 || sourceA == 6 || sourceA == 7 {
		return
	}

	if sourceA == 5 {
		switch t.aSourceB() {
		case 0: // 2048 Hz
			t.timerADivisor = 4
		case 1: // 1024 Hz
			t.timerADivisor = 5
		case 2: // 256 Hz
			t.timerADivisor = 7
		case 3: // TMB1
			t.timerADivisor = int(12 - t.tmb1())
		case 4: // 4 Hz
			t.timerADivisor = 13
		case 5: // 2 Hz
			t.timerADivisor = 14
		}
	} else if t.aSourceB() == 6 {
		switch sourceA {
		case 2: // 32768 Hz
			t.timerADivisor = 0
		case 3: // 8192 Hz
			t.timerADivisor = 2
		case 4: // 4096 Hz
			t.timerADivisor = 3
		}
	} else {
		die("timer: unsupported timer source combination")
	}
}

func (t *timer) updateTimerBDivisors() {
	t.timerBDivisor = -1

	switch t.bSourceC() {
	case 2: // 32768 Hz
		t.timerBDivisor = 0
	case 3: // 8192 Hz
		t.timerBDivisor = 2
	case 4: // 4096 Hz
		t.timerBDivisor = 3
	}
}
