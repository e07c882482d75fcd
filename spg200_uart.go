// spg200_uart.go - Full-duplex byte-timed UART

/*
spg200_uart.go - UART

TX and RX each run an independent CPU-cycle countdown sized from the
16-bit baud divisor: `16 * (65536 - baud) * (mode ? 11 : 10)`. Writing
a byte to TX while idle starts that countdown; on expiry the byte is
handed to the host via TxUart and the IRQ line is re-evaluated. RX
works the other way: the host calls RxStart with a received byte,
which (if RX is enabled and not already mid-receive) starts the same
style countdown; on expiry the byte lands in rx_buf and RxUartDone
fires.

Rx() and PeekRx() are intentionally asymmetric: Rx() clears rx_full
(but not rx_ready) as a side effect of reading the byte, while PeekRx()
has no side effects at all. This mirrors the reference's own split
between the two accessors rather than unifying them.
*/

package main

const (
	uartControlWriteMask = 0xff
	uartStatusClearMask  = 0x0003
)

type uart struct {
	irq *irqAggregator
	io  Spg200Io

	control uint16
	status  uint16

	baudLo uint8
	baudHi uint8

	txBuf     uint8
	txRunning uint8
	rxBuf     uint8
	rxRunning uint8

	txCounter int
	rxCounter int
}

func newUart(irq *irqAggregator, io Spg200Io) *uart {
	return &uart{irq: irq, io: io}
}

func (u *uart) txEnable() bool     { return u.control&(1<<7) != 0 }
func (u *uart) rxEnable() bool     { return u.control&(1<<6) != 0 }
func (u *uart) mode() bool         { return u.control&(1<<5) != 0 }
func (u *uart) txIrqEnable() bool  { return u.control&(1<<1) != 0 }
func (u *uart) rxIrqEnable() bool  { return u.control&(1<<0) != 0 }

func (u *uart) rxReady() bool  { return u.status&(1<<0) != 0 }
func (u *uart) txReady() bool  { return u.status&(1<<1) != 0 }
func (u *uart) txBusy() bool   { return u.status&(1<<6) != 0 }
func (u *uart) rxFull() bool   { return u.status&(1<<7) != 0 }

func (u *uart) setRxReady(v bool) { u.setStatusBit(0, v) }
func (u *uart) setTxReady(v bool) { u.setStatusBit(1, v) }
func (u *uart) setTxBusy(v bool)  { u.setStatusBit(6, v) }
func (u *uart) setRxFull(v bool)  { u.setStatusBit(7, v) }
func (u *uart) setStatusBit(bit uint, v bool) {
	if v {
		u.status |= 1 << bit
	} else {
		u.status &^= 1 << bit
	}
}

func (u *uart) Reset() {
	u.control = 0
	u.status = 1 << 5 // bit 5 strap, always reads back set
	u.baudLo = 0
	u.baudHi = 0
	u.txBuf = 0
	u.txRunning = 0
	u.rxBuf = 0
	u.rxRunning = 0
	u.rxCounter = 0
	u.txCounter = 0
}

func (u *uart) reevaluateIrq() {
	rxActive := u.rxIrqEnable() && u.rxReady()
	txActive := u.txIrqEnable() && u.txReady()
	u.irq.SetUartIrq(rxActive || txActive)
}

func (u *uart) RunCycles(cycles int) {
	if u.txCounter != 0 {
		u.txCounter -= cycles
		if u.txCounter <= 0 {
			u.txCounter = 0
			u.setTxReady(true)
			u.setTxBusy(false)
			u.io.TxUart(u.txRunning)
			u.reevaluateIrq()
		}
	}

	if u.rxCounter != 0 {
		u.rxCounter -= cycles
		if u.rxCounter <= 0 {
			u.rxCounter = 0
			u.setRxFull(true)
			u.setRxReady(true)
			u.rxBuf = u.rxRunning
			u.io.RxUartDone()
			u.reevaluateIrq()
		}
	}
}

func (u *uart) GetControl() uint16 { return u.control }
func (u *uart) SetControl(value uint16) {
	oldTxEnable := u.txEnable()
	u.control = value & uartControlWriteMask

	if !u.rxEnable() {
		u.rxBuf = 0
	}

	u.reevaluateIrq()

	if u.txEnable() != oldTxEnable {
		u.setTxReady(u.txEnable())
		if !u.txEnable() {
			u.setTxBusy(false)
			u.txCounter = 0
		}
	}
}

func (u *uart) GetStatus() uint16 { return u.status }
func (u *uart) SetStatus(value uint16) {
	u.status &^= value & uartStatusClearMask
	u.reevaluateIrq()
}

// SoftReset is an intentional no-op, matching the reference's own
// stub (its body is a bare TODO with no observed side effects).
func (u *uart) SoftReset() {}

func (u *uart) GetBaudLo() uint16 { return uint16(u.baudLo) }
func (u *uart) SetBaudLo(value uint16) { u.baudLo = uint8(value) }
func (u *uart) GetBaudHi() uint16 { return uint16(u.baudHi) }
func (u *uart) SetBaudHi(value uint16) { u.baudHi = uint8(value) }

func (u *uart) GetTx() uint16 { return uint16(u.txBuf) }

func (u *uart) txCycles() int {
	baud := uint(u.baudHi)<<8 | uint(u.baudLo)
	bits := 10
	if u.mode() {
		bits = 11
	}
	return 16 * int(65536-baud) * bits
}

func (u *uart) Tx(value uint16) {
	u.txBuf = uint8(value)

	if u.txEnable() && !u.txBusy() {
		u.txRunning = uint8(value)
		u.setTxReady(false)
		u.setTxBusy(true)
		u.txCounter = u.txCycles()
	}
}

// Rx clears rx_full (but not rx_ready) as a side effect of the read.
func (u *uart) Rx() uint16 {
	u.setRxFull(false)
	return uint16(u.rxBuf)
}

// PeekRx reads the buffer with no side effects.
func (u *uart) PeekRx() uint16 {
	return uint16(u.rxBuf)
}

func (u *uart) RxStart(value uint8) {
	if u.rxCounter != 0 {
		return
	}
	if !u.rxEnable() {
		return
	}
	u.rxCounter = u.txCycles()
	u.rxRunning = value
}
