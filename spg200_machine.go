// spg200_machine.go - Top-level bus and per-frame driver

/*
spg200_machine.go - The Machine

Owns on-chip RAM plus one instance of every peripheral, and is itself
the busInterface every peripheral that needs full-address-space access
(cpu, ppu, spu, dma) is constructed with. This mirrors the reference's
own Spg200 class: there is no separate "bus" object, the machine's
ReadWord/WriteWord address-decode switch *is* the bus, and peripherals
that only ever talk to the host port (extmem, gpio, adc, uart) are
wired directly to the Spg200Io the embedder supplies rather than
through the machine.

RunFrame's per-cycle fan-out order is fixed and must not be reordered:
cpu, then io, then adc, uart, timer, spu, and finally ppu, which is
the one peripheral that can end the frame.
*/

package main

const (
	ramWords = 0x2800

	randomSeed1 = 0x1418
	randomSeed2 = 0x1658
)

// spg200 is the complete emulated SoC: CPU core, video/audio/timing
// peripherals, and the on-chip RAM that backs the bottom of the
// address space.
type spg200 struct {
	io Spg200Io

	ram [ramWords]uint16

	cpu    *cpu
	ppu    *ppu
	spu    *spu
	irq    *irqAggregator
	timer  *timer
	extmem *extmem
	gpio   *gpio
	adc    *adc
	uart   *uart
	dma    *dma

	random1 randomSource
	random2 randomSource
}

// newSpg200 wires every peripheral in the same dependency order as the
// reference constructor: cpu/ppu/spu/dma receive the machine itself as
// their bus, irq receives the cpu, timer receives irq, and extmem/gpio
// take the raw host port while adc/uart take both irq and the host port.
func newSpg200(videoTiming int, io Spg200Io) *spg200 {
	m := &spg200{io: io}

	m.cpu = newCpu(m)
	m.irq = newIrqAggregator(m.cpu)
	m.ppu = newPpu(videoTiming, m, m.irq)
	m.spu = newSpu(m, m.irq)
	m.timer = newTimer(m.irq)
	m.extmem = newExtmem(io)
	m.gpio = newGpio(io)
	m.adc = newAdc(m.irq, io)
	m.uart = newUart(m.irq, io)
	m.dma = newDma(m)

	return m
}

func (m *spg200) Reset() {
	m.ram = [ramWords]uint16{}

	m.cpu.Reset()
	m.irq.Reset()
	m.ppu.Reset()
	m.spu.Reset()
	m.timer.Reset()
	m.extmem.Reset()
	m.gpio.Reset()
	m.adc.Reset()
	m.uart.Reset()
	m.dma.Reset()

	m.random1.Reset()
	m.random2.Reset()
	m.random1.Set(randomSeed1)
	m.random2.Set(randomSeed2)
}

// RunFrame steps the CPU and fans each peripheral out by the cycle
// count it just spent, stopping when the PPU reports a completed
// frame. Order matters: it is copied verbatim from the reference.
func (m *spg200) RunFrame() {
	for {
		cycles := m.cpu.Step()
		m.io.RunCycles(cycles)
		m.adc.RunCycles(cycles)
		m.uart.RunCycles(cycles)
		m.timer.RunCycles(cycles)
		m.spu.RunCycles(cycles)
		if m.ppu.RunCycles(cycles) {
			break
		}
	}
}

func (m *spg200) UartTx(value uint8)     { m.uart.RxStart(value) }
func (m *spg200) SetExt1Irq(val bool)    { m.irq.SetExt1Irq(val) }
func (m *spg200) SetExt2Irq(val bool)    { m.irq.SetExt2Irq(val) }
func (m *spg200) GetPicture() []uint16   { return m.ppu.GetFramebuffer() }
func (m *spg200) GetAudio() []uint16     { return m.spu.GetAudio() }

func (m *spg200) SetPpuViewSettings(v ppuViewSettings) { m.ppu.SetViewSettings(v) }

// ppuBgRegRead/ppuBgRegWrite map a register-block offset (0 or 1) to the background
// index it addresses, and the field number (0-5) within that block to
// the specific scroll/attribute/control/tilemap/attribute-map register.
func (m *spg200) ppuBgRegRead(bg, field int) uint16 {
	switch field {
	case 0:
		return m.ppu.GetBgXScroll(bg)
	case 1:
		return m.ppu.GetBgYScroll(bg)
	case 2:
		return m.ppu.GetBgAttribute(bg)
	case 3:
		return m.ppu.GetBgControl(bg)
	case 4:
		return m.ppu.GetBgTileMapPtr(bg)
	case 5:
		return m.ppu.GetBgAttributeMapPtr(bg)
	}
	return 0
}

func (m *spg200) ppuBgRegWrite(bg, field int, value uint16) {
	switch field {
	case 0:
		m.ppu.SetBgXScroll(bg, value)
	case 1:
		m.ppu.SetBgYScroll(bg, value)
	case 2:
		m.ppu.SetBgAttribute(bg, value)
	case 3:
		m.ppu.SetBgControl(bg, value)
	case 4:
		m.ppu.SetBgTileMapPtr(bg, value)
	case 5:
		m.ppu.SetBgAttributeMapPtr(bg, value)
	}
}

// spuChanRegRead/Write implement the 12-field-per-channel "30xx" block.
func (m *spg200) spuChanRegRead(ch, field int) uint16 {
	switch field {
	case 0x0:
		return m.spu.GetWaveAddressLo(ch)
	case 0x1:
		return m.spu.GetMode(ch)
	case 0x2:
		return m.spu.GetLoopAddressLo(ch)
	case 0x3:
		return m.spu.GetPan(ch)
	case 0x4:
		return m.spu.GetEnvelope0(ch)
	case 0x5:
		return m.spu.GetEnvelopeData(ch)
	case 0x6:
		return m.spu.GetEnvelope1(ch)
	case 0x7:
		return m.spu.GetEnvelopeAddressHi(ch)
	case 0x8:
		return m.spu.GetEnvelopeAddressLo(ch)
	case 0x9:
		return m.spu.GetWaveData0(ch)
	case 0xa:
		return m.spu.GetEnvelopeLoopControl(ch)
	case 0xb:
		return m.spu.GetWaveData(ch)
	}
	return 0
}

func (m *spg200) spuChanRegWrite(ch, field int, value uint16) {
	switch field {
	case 0x0:
		m.spu.SetWaveAddressLo(ch, value)
	case 0x1:
		m.spu.SetMode(ch, value)
	case 0x2:
		m.spu.SetLoopAddressLo(ch, value)
	case 0x3:
		m.spu.SetPan(ch, value)
	case 0x4:
		m.spu.SetEnvelope0(ch, value)
	case 0x5:
		m.spu.SetEnvelopeData(ch, value)
	case 0x6:
		m.spu.SetEnvelope1(ch, value)
	case 0x7:
		m.spu.SetEnvelopeAddressHi(ch, value)
	case 0x8:
		m.spu.SetEnvelopeAddressLo(ch, value)
	case 0x9:
		m.spu.SetWaveData0(ch, value)
	case 0xa:
		m.spu.SetEnvelopeLoopControl(ch, value)
	case 0xb:
		m.spu.SetWaveData(ch, value)
	}
}

// spuChanReg2Read/Write implement the 8-field-per-channel "32xx" block.
func (m *spg200) spuChanReg2Read(ch, field int) uint16 {
	switch field {
	case 0x0:
		return m.spu.GetPhaseHi(ch)
	case 0x1:
		return m.spu.GetPhaseAccumulatorHi(ch)
	case 0x2:
		return m.spu.GetTargetPhaseHi(ch)
	case 0x3:
		return m.spu.GetRampDownClock(ch)
	case 0x4:
		return m.spu.GetPhaseLo(ch)
	case 0x5:
		return m.spu.GetPhaseAccumulatorLo(ch)
	case 0x6:
		return m.spu.GetTargetPhaseLo(ch)
	case 0x7:
		return m.spu.GetPitchBendControl(ch)
	}
	return 0
}

func (m *spg200) spuChanReg2Write(ch, field int, value uint16) {
	switch field {
	case 0x0:
		m.spu.SetPhaseHi(ch, value)
	case 0x1:
		m.spu.SetPhaseAccumulatorHi(ch, value)
	case 0x2:
		m.spu.SetTargetPhaseHi(ch, value)
	case 0x3:
		m.spu.SetRampDownClock(ch, value)
	case 0x4:
		m.spu.SetPhaseLo(ch, value)
	case 0x5:
		m.spu.SetPhaseAccumulatorLo(ch, value)
	case 0x6:
		m.spu.SetTargetPhaseLo(ch, value)
	case 0x7:
		m.spu.SetPitchBendControl(ch, value)
	}
}

// gpioRegRead/Write implement the 5-register-per-port "3d0x" block,
// preserving the reference's write-path alias: both the data and
// buffer addresses within a port write through SetBuffer, while the
// read path keeps GetData and GetBuffer as distinct registers.
func (m *spg200) gpioRegRead(port, field int) uint16 {
	switch field {
	case 0:
		return m.gpio.GetData(port)
	case 1:
		return m.gpio.GetBuffer(port)
	case 2:
		return m.gpio.GetDir(port)
	case 3:
		return m.gpio.GetAttrib(port)
	case 4:
		return m.gpio.GetMask(port)
	}
	return 0
}

func (m *spg200) gpioRegWrite(port, field int, value uint16) {
	switch field {
	case 0, 1:
		m.gpio.SetBuffer(port, value)
	case 2:
		m.gpio.SetDir(port, value)
	case 3:
		m.gpio.SetAttrib(port, value)
	case 4:
		m.gpio.SetMask(port, value)
	}
}

func (m *spg200) ReadWord(addr uint32) uint16 {
	addr &= 0x3fffff

	switch {
	case addr < 0x2800:
		return m.ram[addr]

	case addr >= 0x2810 && addr < 0x281c:
		bg := int((addr - 0x2810) / 6)
		field := int((addr - 0x2810) % 6)
		return m.ppuBgRegRead(bg, field)

	case addr == 0x281c:
		return m.ppu.GetVerticalCompressAmount()
	case addr == 0x281d:
		return m.ppu.GetVerticalCompressOffset()
	case addr == 0x2820:
		return m.ppu.GetBgSegmentPtr(0)
	case addr == 0x2821:
		return m.ppu.GetBgSegmentPtr(1)
	case addr == 0x2822:
		return m.ppu.GetSpriteSegmentPtr()
	case addr == 0x282a:
		return m.ppu.GetBlendLevel()
	case addr == 0x2830:
		return m.ppu.GetFadeLevel()
	case addr == 0x2836:
		return m.ppu.GetIrqVpos()
	case addr == 0x2837:
		return m.ppu.GetIrqHpos()
	case addr == 0x2842:
		return m.ppu.GetSpriteControl()
	case addr == 0x2854:
		return m.ppu.GetStnLcdControl()
	case addr == 0x2862:
		return m.ppu.GetIrqControl()
	case addr == 0x2863:
		return m.ppu.GetIrqStatus()
	case addr == 0x2870:
		return m.ppu.GetSpriteDmaSource()
	case addr == 0x2871:
		return m.ppu.GetSpriteDmaTarget()
	case addr == 0x2872:
		return m.ppu.GetSpriteDmaLength()

	case addr >= 0x2900 && addr < 0x2a00:
		return m.ppu.GetLineScroll(uint8(addr - 0x2900))
	case addr >= 0x2a00 && addr < 0x2b00:
		return m.ppu.GetLineCompress(uint8(addr - 0x2a00))
	case addr >= 0x2b00 && addr < 0x2c00:
		return m.ppu.GetPaletteColor(uint8(addr - 0x2b00))
	case addr >= 0x2c00 && addr < 0x3000:
		return m.ppu.ReadSpriteMemory(uint16(addr-0x2c00) & 0x3ff)

	case addr >= 0x3000 && addr < 0x3100:
		ch := int(addr>>4) & 0xf
		return m.spuChanRegRead(ch, int(addr&0xf))
	case addr >= 0x3200 && addr < 0x3300:
		ch := int(addr>>4) & 0xf
		return m.spuChanReg2Read(ch, int(addr&0xf))

	case addr == 0x3400:
		return m.spu.GetChannelEnable()
	case addr == 0x3401:
		return m.spu.GetMainVolume()
	case addr == 0x3402:
		return m.spu.GetChannelFiqEnable()
	case addr == 0x3403:
		return m.spu.GetChannelFiqStatus()
	case addr == 0x3404:
		return m.spu.GetBeatBaseCount()
	case addr == 0x3405:
		return m.spu.GetBeatCount()
	case addr == 0x3406:
		return m.spu.GetEnvClk0_3()
	case addr == 0x3407:
		return m.spu.GetEnvClk4_7()
	case addr == 0x3408:
		return m.spu.GetEnvClk8_11()
	case addr == 0x3409:
		return m.spu.GetEnvClk12_15()
	case addr == 0x340a:
		return m.spu.GetEnvRampdown()
	case addr == 0x340b:
		return m.spu.GetChannelStop()
	case addr == 0x340c:
		return m.spu.GetChannelZeroCross()
	case addr == 0x340d:
		return m.spu.GetControl()
	case addr == 0x340f:
		return m.spu.GetChannelStatus()
	case addr == 0x3412:
		return m.spu.GetWaveOutLeft()
	case addr == 0x3413:
		return m.spu.GetWaveOutRight()
	case addr == 0x3414:
		return m.spu.GetChannelRepeat()
	case addr == 0x3415:
		return m.spu.GetChannelEnvMode()
	case addr == 0x3416:
		return m.spu.GetChannelToneRelease()
	case addr == 0x3417:
		return m.spu.GetChannelEnvIrq()
	case addr == 0x3418:
		return m.spu.GetChannelPitchBend()

	case addr == 0x3d00:
		return m.gpio.GetMode()
	case addr >= 0x3d01 && addr <= 0x3d0f:
		port := int(addr-0x3d01) / 5
		field := int(addr-0x3d01) % 5
		return m.gpioRegRead(port, field)

	case addr == 0x3d10:
		return m.timer.GetTimebaseSetup()
	case addr == 0x3d12:
		return m.timer.GetTimerAData()
	case addr == 0x3d13:
		return m.timer.GetTimerAControl()
	case addr == 0x3d14:
		return m.timer.GetTimerAEnabled()
	case addr == 0x3d16:
		return m.timer.GetTimerBData()
	case addr == 0x3d17:
		return m.timer.GetTimerBControl()
	case addr == 0x3d18:
		return m.timer.GetTimerBEnabled()
	case addr == 0x3d1c:
		return m.ppu.GetLineCounter()

	case addr == 0x3d21:
		return m.irq.GetIoIrqControl()
	case addr == 0x3d22:
		return m.irq.GetIoIrqStatus()
	case addr == 0x3d23:
		return m.extmem.GetControl()
	case addr == 0x3d25:
		return m.adc.GetControl()
	case addr == 0x3d27:
		return m.adc.GetData()
	case addr == 0x3d2b:
		if m.ppu.videoTiming == videoTimingPAL {
			return 1
		}
		return 0
	case addr == 0x3d2c:
		return m.random1.Get()
	case addr == 0x3d2d:
		return m.random2.Get()
	case addr == 0x3d2e:
		return m.irq.GetFiqSelect()
	case addr == 0x3d2f:
		return m.cpu.GetDs()

	case addr == 0x3d30:
		return m.uart.GetControl()
	case addr == 0x3d31:
		return m.uart.GetStatus()
	case addr == 0x3d33:
		return m.uart.GetBaudLo()
	case addr == 0x3d34:
		return m.uart.GetBaudHi()
	case addr == 0x3d35:
		return m.uart.GetTx()
	case addr == 0x3d36:
		return m.uart.Rx()

	case addr == 0x3e00:
		return m.dma.GetSourceLo()
	case addr == 0x3e01:
		return m.dma.GetSourceHi()
	case addr == 0x3e02:
		return m.dma.GetLength()
	case addr == 0x3e03:
		return m.dma.GetTarget()

	case addr >= 0x4000:
		return m.extmem.ReadWord(addr)
	}

	return 0
}

func (m *spg200) WriteWord(addr uint32, value uint16) {
	addr &= 0x3fffff

	switch {
	case addr < 0x2800:
		m.ram[addr] = value
		return

	case addr >= 0x2810 && addr < 0x281c:
		bg := int((addr - 0x2810) / 6)
		field := int((addr - 0x2810) % 6)
		m.ppuBgRegWrite(bg, field, value)
		return

	case addr == 0x281c:
		m.ppu.SetVerticalCompressAmount(value)
		return
	case addr == 0x281d:
		m.ppu.SetVerticalCompressOffset(value)
		return
	case addr == 0x2820:
		m.ppu.SetBgSegmentPtr(0, value)
		return
	case addr == 0x2821:
		m.ppu.SetBgSegmentPtr(1, value)
		return
	case addr == 0x2822:
		m.ppu.SetSpriteSegmentPtr(value)
		return
	case addr == 0x282a:
		m.ppu.SetBlendLevel(value)
		return
	case addr == 0x2830:
		m.ppu.SetFadeLevel(value)
		return
	case addr == 0x2836:
		m.ppu.SetIrqVpos(value)
		return
	case addr == 0x2837:
		m.ppu.SetIrqHpos(value)
		return
	case addr == 0x2842:
		m.ppu.SetSpriteControl(value)
		return
	case addr == 0x2854:
		m.ppu.SetStnLcdControl(value)
		return
	case addr == 0x2862:
		m.ppu.SetIrqControl(value)
		return
	case addr == 0x2863:
		m.ppu.ClearIrqStatus(value)
		return
	case addr == 0x2870:
		m.ppu.SetSpriteDmaSource(value)
		return
	case addr == 0x2871:
		m.ppu.SetSpriteDmaTarget(value)
		return
	case addr == 0x2872:
		m.ppu.StartSpriteDma(value)
		return

	case addr >= 0x2900 && addr < 0x2a00:
		m.ppu.SetLineScroll(uint8(addr-0x2900), value)
		return
	case addr >= 0x2a00 && addr < 0x2b00:
		m.ppu.SetLineCompress(uint8(addr-0x2a00), value)
		return
	case addr >= 0x2b00 && addr < 0x2c00:
		m.ppu.SetPaletteColor(uint8(addr-0x2b00), value)
		return
	case addr >= 0x2c00 && addr < 0x3000:
		m.ppu.WriteSpriteMemory(uint16(addr-0x2c00)&0x3ff, value)
		return

	case addr >= 0x3000 && addr < 0x3100:
		ch := int(addr>>4) & 0xf
		m.spuChanRegWrite(ch, int(addr&0xf), value)
		return
	case addr >= 0x3200 && addr < 0x3300:
		ch := int(addr>>4) & 0xf
		m.spuChanReg2Write(ch, int(addr&0xf), value)
		return

	case addr == 0x3400:
		m.spu.SetChannelEnable(value)
		return
	case addr == 0x3401:
		m.spu.SetMainVolume(value)
		return
	case addr == 0x3402:
		m.spu.SetChannelFiqEnable(value)
		return
	case addr == 0x3403:
		m.spu.ClearChannelFiqStatus(value)
		return
	case addr == 0x3404:
		m.spu.SetBeatBaseCount(value)
		return
	case addr == 0x3405:
		m.spu.SetBeatCount(value)
		return
	case addr == 0x3406:
		m.spu.SetEnvClk0_3(value)
		return
	case addr == 0x3407:
		m.spu.SetEnvClk4_7(value)
		return
	case addr == 0x3408:
		m.spu.SetEnvClk8_11(value)
		return
	case addr == 0x3409:
		m.spu.SetEnvClk12_15(value)
		return
	case addr == 0x340a:
		m.spu.SetEnvRampdown(value)
		return
	case addr == 0x340b:
		m.spu.ClearChannelStop(value)
		return
	case addr == 0x340c:
		m.spu.SetChannelZeroCross(value)
		return
	case addr == 0x340d:
		m.spu.SetControl(value)
		return
	case addr == 0x3410:
		m.spu.SetWaveInLeft(value)
		return
	case addr == 0x3411:
		m.spu.SetWaveInRight(value)
		return
	case addr == 0x3414:
		m.spu.SetChannelRepeat(value)
		return
	case addr == 0x3415:
		m.spu.SetChannelEnvMode(value)
		return
	case addr == 0x3416:
		m.spu.SetChannelToneRelease(value)
		return
	case addr == 0x3417:
		m.spu.ClearChannelEnvIrq(value)
		return
	case addr == 0x3418:
		m.spu.SetChannelPitchBend(value)
		return

	case addr == 0x3d00:
		m.gpio.SetMode(value)
		return
	case addr >= 0x3d01 && addr <= 0x3d0f:
		port := int(addr-0x3d01) / 5
		field := int(addr-0x3d01) % 5
		m.gpioRegWrite(port, field, value)
		return

	case addr == 0x3d10:
		m.timer.SetTimebaseSetup(value)
		return
	case addr == 0x3d11:
		m.timer.ClearTimebaseCounter()
		return
	case addr == 0x3d12:
		m.timer.SetTimerAData(value)
		return
	case addr == 0x3d13:
		m.timer.SetTimerAControl(value)
		return
	case addr == 0x3d14:
		m.timer.SetTimerAEnabled(value)
		return
	case addr == 0x3d15:
		m.timer.ClearTimerAIrq()
		return
	case addr == 0x3d16:
		m.timer.SetTimerBData(value)
		return
	case addr == 0x3d17:
		m.timer.SetTimerBControl(value)
		return
	case addr == 0x3d18:
		m.timer.SetTimerBEnabled(value)
		return
	case addr == 0x3d19:
		m.timer.ClearTimerBIrq()
		return

	case addr == 0x3d20:
		return
	case addr == 0x3d21:
		m.irq.SetIoIrqControl(value)
		return
	case addr == 0x3d22:
		m.irq.ClearIoIrqStatus(value)
		return
	case addr == 0x3d23:
		m.extmem.SetControl(value)
		return
	case addr == 0x3d24:
		return
	case addr == 0x3d25:
		m.adc.SetControl(value)
		return
	case addr == 0x3d28, addr == 0x3d29, addr == 0x3d2a:
		return
	case addr == 0x3d2c:
		m.random1.Set(value)
		return
	case addr == 0x3d2d:
		m.random2.Set(value)
		return
	case addr == 0x3d2e:
		m.irq.SetFiqSelect(value)
		return
	case addr == 0x3d2f:
		m.cpu.SetDs(value)
		return

	case addr == 0x3d30:
		m.uart.SetControl(value)
		return
	case addr == 0x3d31:
		m.uart.SetStatus(value)
		return
	case addr == 0x3d32:
		m.uart.SoftReset()
		return
	case addr == 0x3d33:
		m.uart.SetBaudLo(value)
		return
	case addr == 0x3d34:
		m.uart.SetBaudHi(value)
		return
	case addr == 0x3d35:
		m.uart.Tx(value)
		return

	case addr == 0x3e00:
		m.dma.SetSourceLo(value)
		return
	case addr == 0x3e01:
		m.dma.SetSourceHi(value)
		return
	case addr == 0x3e02:
		m.dma.StartDma(value)
		return
	case addr == 0x3e03:
		m.dma.SetTarget(value)
		return

	case addr >= 0x4000:
		m.extmem.WriteWord(addr, value)
		return
	}
}
