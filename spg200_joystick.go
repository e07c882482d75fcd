// spg200_joystick.go - V.Smile wired-controller UART protocol

/*
spg200_joystick.go - Joystick Protocol Engine

The V.Smile controller talks to the console over the same UART as
everything else, using a byte stream gated by RTS/CTS handshaking
rather than framed packets. Three independent timers drive the state
machine: an idle timer that keeps the link alive by sending a 0x55
ping once a second, an RTS-timeout timer that gives up waiting for the
console to assert CTS after half a second and force-releases RTS, and
a short tx-start timer that models the turnaround between CTS going
high and the byte actually going out.

A small ring buffer (txBuffer) queues outgoing bytes; queueing the
first byte into an empty buffer asserts RTS (or, if CTS is already up,
starts the tx-start timer directly), and draining the last byte
releases it again. Button/color/axis updates are coalesced: at most
one button byte, one color byte and two axis bytes are queued per
RunCycles tick, not sent continuously.
*/

package main

// joySend is the host-facing half of the link: the console wrapper's
// RTS line and its UART TX, both driven by the joystick engine.
type joySend interface {
	SetRts(value bool)
	Tx(value uint8)
}

// joyInput mirrors one sampled controller frame: a directional pad
// read as signed x/y magnitudes (not raw deltas) plus eight buttons.
type joyInput struct {
	x, y                   int
	red, yellow, blue, green bool
	enter, back, help, abc  bool
}

// joyLedStatus mirrors the four color LEDs the controller reports
// back after Rx() decodes a matching LED-set byte.
type joyLedStatus struct {
	red, yellow, blue, green bool
}

type vsmileJoy struct {
	send joySend

	current  joyInput
	lastSent joyInput

	idleTimer       simpleClock
	rtsTimeoutTimer simpleClock
	txStartTimer    simpleClock

	txBuffer      [16]uint8
	txBufferWrite int
	txBufferRead  int

	probeHistory [2]int

	cts            bool
	rts            bool
	txBusy         bool
	joyActive      bool
	txStarting     bool
	currentUpdated bool

	leds joyLedStatus
}

func newVsmileJoy(send joySend) *vsmileJoy {
	return &vsmileJoy{
		send:            send,
		idleTimer:       newSimpleClock(27000000),
		rtsTimeoutTimer: newSimpleClock(13500000),
		txStartTimer:    newSimpleClock(97200),
	}
}

func (j *vsmileJoy) Reset() {
	j.idleTimer.Reset()
	j.rtsTimeoutTimer.Reset()
	j.txStartTimer.Reset()
	j.current = joyInput{}
	j.lastSent = joyInput{}
	j.cts = false
	j.rts = true
	j.txBusy = false
	j.joyActive = false
	j.txStarting = false
	j.currentUpdated = false
	j.probeHistory = [2]int{}
	j.txBufferRead = 0
	j.txBufferWrite = 0
	j.leds = joyLedStatus{}
}

func (j *vsmileJoy) RunCycles(cycles int) {
	if !j.txBusy {
		if j.idleTimer.Tick(cycles) {
			j.queueTx(0x55)
		}
	}

	if j.txStarting {
		if j.txStartTimer.Tick(cycles) {
			j.txStarting = false
			j.startTx()
		}
	}

	if !j.rts && !j.cts && !j.txStarting && !j.txBusy {
		if j.rtsTimeoutTimer.Tick(cycles) {
			j.send.SetRts(true)
			j.rts = true

			if j.joyActive {
				j.current = joyInput{}
				j.currentUpdated = false
				j.probeHistory = [2]int{}
				j.idleTimer.Reset()
			}
			j.joyActive = false

			j.txBufferRead = 0
			j.txBufferWrite = 0
			j.txStarting = false
			j.queueTx(0x55)
		}
	}

	if j.joyActive && j.currentUpdated {
		j.queueJoyUpdates()
	}
}

func (j *vsmileJoy) UpdateJoystick(input joyInput) {
	j.current = input
	j.currentUpdated = true
}

func (j *vsmileJoy) GetLeds() joyLedStatus { return j.leds }

func (j *vsmileJoy) startTx() {
	if j.txBufferRead == j.txBufferWrite {
		die("joystick: tx queue was empty")
	}
	if j.txBusy {
		die("joystick: uart is busy")
	}
	b := j.popTx()
	j.send.Tx(b)
	j.txBusy = true
}

func (j *vsmileJoy) queueTx(b uint8) {
	newWrite := (j.txBufferWrite + 1) % len(j.txBuffer)
	wasEmpty := j.txBufferRead == j.txBufferWrite
	if newWrite == j.txBufferRead {
		return
	}

	j.txBuffer[j.txBufferWrite] = b
	j.txBufferWrite = newWrite

	if wasEmpty {
		j.send.SetRts(false)
		j.rts = false

		if j.cts {
			if !j.txBusy && !j.txStarting {
				j.txStarting = true
				j.txStartTimer.Reset()
			}
		} else {
			j.rtsTimeoutTimer.Reset()
		}
	}

	j.idleTimer.Reset()
}

func (j *vsmileJoy) popTx() uint8 {
	if j.txBufferWrite == j.txBufferRead {
		die("joystick: empty send buffer")
	}

	value := j.txBuffer[j.txBufferRead]
	j.txBufferRead = (j.txBufferRead + 1) % len(j.txBuffer)
	if j.txBufferWrite == j.txBufferRead {
		j.send.SetRts(true)
		j.rts = true
	}

	return value
}

func clampAbs(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (j *vsmileJoy) queueJoyUpdates() {
	c, l := j.current, j.lastSent

	updateButtons := c.enter != l.enter || c.back != l.back || c.help != l.help || c.abc != l.abc
	updateColors := c.green != l.green || c.blue != l.blue || c.yellow != l.yellow || c.red != l.red
	updateJoy := c.x != l.x || c.y != l.y

	if !updateButtons && !updateColors && !updateJoy {
		return
	}

	if updateButtons {
		buttonValue := uint8(0xa0)
		switch {
		case c.enter:
			buttonValue = 0xa1
		case c.back:
			buttonValue = 0xa2
		case c.help:
			buttonValue = 0xa3
		case c.abc:
			buttonValue = 0xa4
		}
		j.queueTx(buttonValue)
	}

	if updateColors {
		colorValue := uint8(0x90)
		if c.green {
			colorValue |= 0x01
		}
		if c.blue {
			colorValue |= 0x02
		}
		if c.yellow {
			colorValue |= 0x04
		}
		if c.red {
			colorValue |= 0x08
		}
		j.queueTx(colorValue)
	}

	if updateJoy {
		xValue, yValue := uint8(0xc0), uint8(0x80)
		if c.x != 0 {
			abs := c.x
			if abs < 0 {
				abs = -abs
			}
			base := uint8(0xc3)
			if c.x < 0 {
				base = 0xcb
			}
			xValue = base + uint8(clampAbs(abs, 1, 5)-1)
		}
		if c.y != 0 {
			abs := c.y
			if abs < 0 {
				abs = -abs
			}
			base := uint8(0x83)
			if c.y < 0 {
				base = 0x8b
			}
			yValue = base + uint8(clampAbs(abs, 1, 5)-1)
		}
		j.queueTx(xValue)
		j.queueTx(yValue)
	}

	j.idleTimer.Reset()
	j.lastSent = j.current
	j.currentUpdated = false
}

func (j *vsmileJoy) Rx(value uint8) {
	switch value & 0xf0 {
	case 0x60:
		j.leds.green = value&0x01 != 0
		j.leds.blue = value&0x02 != 0
		j.leds.yellow = value&0x04 != 0
		j.leds.red = value&0x08 != 0
	case 0x70, 0xb0:
		if value&0xf0 == 0x70 {
			j.probeHistory[0] = 0
		} else {
			j.probeHistory[0] = j.probeHistory[1]
		}
		j.probeHistory[1] = int(value & 0x0f)
		j.queueTx(0xb0 | uint8((-j.probeHistory[0]+-j.probeHistory[1])^0xa)&0xf)
	}
}

func (j *vsmileJoy) SetCts(value bool) {
	j.cts = value
	if j.cts && j.txBufferRead != j.txBufferWrite && !j.txBusy && !j.txStarting {
		j.txStarting = true
		j.txStartTimer.Reset()
	}
}

func (j *vsmileJoy) TxDone() {
	if !j.txBusy {
		return
	}

	j.joyActive = true
	j.txBusy = false

	if j.cts && j.txBufferRead != j.txBufferWrite {
		j.startTx()
	}
}
