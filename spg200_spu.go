// spg200_spu.go - 16-channel phase-accumulator sound processing unit

/*
spg200_spu.go - SPU

Each of 16 channels runs an independent 19-bit phase accumulator;
every sample period (a SimpleClock of period 96) linearly interpolates
between a channel's previous and current decoded sample, weighted by
the fractional part of the accumulator, then mixes all enabled
channels through a per-channel pan/volume/envelope stage into a
stereo pair appended to a ring-shaped audio buffer.

A slower DivisibleClock (period 384) drives envelope and pitch-bend
steps at per-channel-selectable sub-rates (GetDividedTick against a
lookup table of divide amounts indexed by each channel's env_clk or
pitch_bend time_step field); rampdowns run off their own even slower
DivisibleClock (period 13) gated the same way. The beat counter rides
the envelope clock's tick, independent of any one channel.

Wave decode supports three tone_mode/adpcm/tone_color combinations:
4-bit ADPCM (via spg200_adpcm.go's decoder), 8-bit PCM (replicated to
fill a 16-bit sample slot), and 16-bit PCM passthrough. A 0xffff/0xff
end-of-stream marker either stops the channel (tone_mode 1) or loops
it back to loop_address (tone_mode 2, clearing adpcm so the ambiguous
default takes effect).
*/

package main

var spuEnvelopeFrameDivides = [16]uint{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 13, 13, 13, 13}
var spuRampdownFrameDivides = [8]uint{2, 4, 6, 8, 10, 12, 13, 13}
var spuPitchbendFrameDivides = [8]uint{3, 4, 5, 6, 7, 8, 9, 10}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type spuMode struct{ raw uint16 }

func (m spuMode) adpcm() bool    { return m.raw&(1<<15) != 0 }
func (m *spuMode) clearAdpcm() { m.raw &^= 1 << 15 }
func (m spuMode) toneColor() bool { return m.raw&(1<<14) != 0 }
func (m spuMode) toneMode() int   { return int(m.raw>>12) & 0x3 }

const spuModeWriteMask = 0xf000

type spuPan struct{ raw uint16 }

func (p spuPan) pan() int    { return int(p.raw>>8) & 0x7f }
func (p spuPan) volume() int { return int(p.raw) & 0x7f }

const spuPanWriteMask = 0x7f7f

type spuEnvelope0 struct{ raw uint16 }

func (e spuEnvelope0) target() int { return int(e.raw>>8) & 0x7f }
func (e spuEnvelope0) sign() bool  { return e.raw&(1<<7) != 0 }
func (e spuEnvelope0) inc() int    { return int(e.raw) & 0x7f }

const spuEnvelope0WriteMask = 0x7fff

type spuEnvelope1 struct{ raw uint16 }

func (e spuEnvelope1) repeatCount() int  { return int(e.raw>>9) & 0x7f }
func (e *spuEnvelope1) setRepeatCount(v int) {
	e.raw = (e.raw &^ (0x7f << 9)) | uint16(v&0x7f)<<9
}
func (e spuEnvelope1) repeat() bool { return e.raw&(1<<8) != 0 }
func (e spuEnvelope1) load() int    { return int(e.raw) & 0xff }

type spuEnvelopeIrq struct{ raw uint16 }

func (e spuEnvelopeIrq) irqFireAddress() int { return int(e.raw>>7) & 0x1ff }
func (e spuEnvelopeIrq) irqEnable() bool     { return e.raw&(1<<6) != 0 }

const spuEnvelopeIrqWriteMask = 0xffc0

type spuEnvelopeData struct{ raw uint16 }

func (e spuEnvelopeData) count() int { return int(e.raw>>8) & 0xff }
func (e *spuEnvelopeData) setCount(v int) {
	e.raw = (e.raw &^ (0xff << 8)) | uint16(v&0xff)<<8
}
func (e spuEnvelopeData) edd() int { return int(e.raw) & 0x7f }
func (e *spuEnvelopeData) setEdd(v int) {
	e.raw = (e.raw &^ 0x7f) | uint16(v&0x7f)
}

const spuEnvelopeDataWriteMask = 0xff7f

type spuEnvelopeLoopControl struct{ raw uint16 }

func (e spuEnvelopeLoopControl) rampdownOffset() int { return int(e.raw>>9) & 0x7f }
func (e *spuEnvelopeLoopControl) setRampdownOffset(v int) {
	e.raw = (e.raw &^ (0x7f << 9)) | uint16(v&0x7f)<<9
}
func (e spuEnvelopeLoopControl) eaOffset() int { return int(e.raw) & 0x1ff }
func (e *spuEnvelopeLoopControl) setEaOffset(v int) {
	e.raw = (e.raw &^ 0x1ff) | uint16(v&0x1ff)
}
func (e *spuEnvelopeLoopControl) addEaOffset(delta int) {
	e.setEaOffset(e.eaOffset() + delta)
}

type spuPitchBendControl struct{ raw uint16 }

func (p spuPitchBendControl) timeStep() int { return int(p.raw>>13) & 0x7 }
func (p spuPitchBendControl) sign() bool    { return p.raw&(1<<12) != 0 }
func (p spuPitchBendControl) offset() int   { return int(p.raw) & 0xfff }

type spuChannelData struct {
	waveAddress     uint32
	loopAddress     uint32
	waveShift       uint8
	envelopeAddress uint32

	mode                 spuMode
	pan                  spuPan
	envelope0            spuEnvelope0
	envelope1            spuEnvelope1
	envelopeIrq          spuEnvelopeIrq
	envelopeData         spuEnvelopeData
	envelopeLoopControl  spuEnvelopeLoopControl

	waveData0 uint16
	waveData  uint16

	phase       uint32
	phaseAcc    uint32
	targetPhase uint32

	envClk      uint8
	rampdownClk uint8

	pitchBendControl spuPitchBendControl
	adpcm            adpcmDecoder
}

func newSpuChannelData() spuChannelData {
	return spuChannelData{waveData0: 0x8000, waveData: 0x8000}
}

type spuControl struct{ raw uint16 }

func (c spuControl) noInterpolation() bool { return c.raw&(1<<9) != 0 }
func (c spuControl) lowPassEnable() bool   { return c.raw&(1<<8) != 0 }
func (c spuControl) highVolume() uint      { return uint(c.raw>>6) & 0x3 }
func (c spuControl) overflow() bool        { return c.raw&(1<<5) != 0 }
func (c *spuControl) setOverflow(v bool) {
	if v {
		c.raw |= 1 << 5
	} else {
		c.raw &^= 1 << 5
	}
}
func (c spuControl) init() bool { return c.raw&(1<<3) != 0 }

const spuControlWriteMask = 0x388

type spuBeatCount struct{ raw uint16 }

func (b spuBeatCount) irqEnable() bool { return b.raw&(1<<15) != 0 }
func (b spuBeatCount) irqStatus() bool { return b.raw&(1<<14) != 0 }
func (b *spuBeatCount) setIrqStatus(v bool) {
	if v {
		b.raw |= 1 << 14
	} else {
		b.raw &^= 1 << 14
	}
}
func (b spuBeatCount) beatCount() int { return int(b.raw) & 0x3fff }
func (b *spuBeatCount) setBeatCount(v int) {
	b.raw = (b.raw &^ 0x3fff) | uint16(v&0x3fff)
}
func (b *spuBeatCount) decBeatCount() {
	if b.beatCount() > 0 {
		b.setBeatCount(b.beatCount() - 1)
	}
}

type spu struct {
	bus busInterface
	irq *irqAggregator

	audioBuffer    [6144 * 2]uint16
	audioBufferPos int

	sampleClock   simpleClock
	envelopeClock divisibleClock
	rampdownClock divisibleClock

	channels [16]spuChannelData

	channelEnable      uint16
	channelFiqEnable   uint16
	channelFiqStatus   uint16
	channelEnvRampdown uint16
	channelStop        uint16
	channelZeroCross   uint16
	channelRepeat      uint16
	channelEnvMode     uint16
	channelToneRelease uint16
	channelEnvIrq      uint16
	channelPitchBend   uint16

	waveOutL, waveOutR uint16

	mainVolume             uint8
	beatBaseCount          uint16
	currentBeatBaseCount   uint16
	beatCount              spuBeatCount
	control                spuControl
}

func newSpu(bus busInterface, irq *irqAggregator) *spu {
	return &spu{
		bus:           bus,
		irq:           irq,
		sampleClock:   newSimpleClockAB(96, 1),
		envelopeClock: newDivisibleClockAB(384, 1),
		rampdownClock: newDivisibleClockAB(13, 1),
	}
}

func bitSet16(bitmap uint16, bit int) bool { return bitmap&(1<<uint(bit)) != 0 }
func setBit16(bitmap *uint16, bit int, v bool) {
	if v {
		*bitmap |= 1 << uint(bit)
	} else {
		*bitmap &^= 1 << uint(bit)
	}
}
func anyBit16(bitmap uint16) bool { return bitmap != 0 }

func (s *spu) Reset() {
	s.audioBufferPos = 0
	s.sampleClock.Reset()
	s.envelopeClock.Reset()
	s.rampdownClock.Reset()

	for i := range s.channels {
		s.channels[i] = newSpuChannelData()
	}
	s.channelEnable = 0
	s.channelFiqEnable = 0
	s.channelFiqStatus = 0
	s.channelEnvRampdown = 0
	s.channelStop = 0
	s.channelZeroCross = 0
	s.channelRepeat = 0
	s.channelEnvMode = 0
	s.channelToneRelease = 0
	s.channelEnvIrq = 0
	s.channelPitchBend = 0

	s.mainVolume = 0
	s.waveOutL = 0x8000
	s.waveOutR = 0x8000
	s.beatBaseCount = 0
	s.currentBeatBaseCount = 0
	s.beatCount = spuBeatCount{}
	s.control = spuControl{}
}

func (s *spu) RunCycles(cycles int) {
	if s.sampleClock.Tick(cycles) {
		s.generateSample()
	}

	if s.envelopeClock.Tick(cycles) {
		s.updateEnvelopes()

		if s.rampdownClock.Tick(1) {
			s.updateRampdowns()
		}

		if s.currentBeatBaseCount != 0 {
			s.currentBeatBaseCount--
			if s.currentBeatBaseCount == 0 {
				s.currentBeatBaseCount = s.beatBaseCount
				s.beatCount.decBeatCount()

				if s.beatCount.beatCount() == 0 && s.beatCount.irqEnable() {
					s.beatCount.setIrqStatus(true)
					s.updateBeatIrq()
				}
			}
		}
	}
}

func (s *spu) generateSample() {
	var leftOut, rightOut int32

	for i := 0; i < 16; i++ {
		if !bitSet16(s.channelEnable, i) || bitSet16(s.channelStop, i) {
			continue
		}
		s.tickChannel(i)

		ch := &s.channels[i]
		prevSamplePart := uint16((uint64(ch.waveData0) * uint64((1<<19)-ch.phaseAcc)) >> 19)
		curSamplePart := uint16((uint64(ch.waveData) * uint64(ch.phaseAcc)) >> 19)
		sample := int16(prevSamplePart + curSamplePart - 0x8000)

		leftPan := clampInt((0x80-ch.pan.pan())*2, 0, 0x7f)
		rightPan := clampInt(ch.pan.pan()*2, 0, 0x7f)

		sample = int16((int32(sample) * int32(ch.envelopeData.edd())) >> 7)

		leftOut += (int32(sample) * int32(leftPan) * int32(ch.pan.volume())) >> 14
		rightOut += (int32(sample) * int32(rightPan) * int32(ch.pan.volume())) >> 14
	}

	leftFinal := int16(((leftOut >> (4 - s.control.highVolume())) * int32(s.mainVolume)) >> 7)
	rightFinal := int16(((rightOut >> (4 - s.control.highVolume())) * int32(s.mainVolume)) >> 7)

	s.waveOutL = uint16(leftFinal) ^ 0x8000
	s.waveOutR = uint16(rightFinal) ^ 0x8000

	s.audioBuffer[s.audioBufferPos] = s.waveOutL
	s.audioBufferPos++
	s.audioBuffer[s.audioBufferPos] = s.waveOutR
	s.audioBufferPos++
	if s.audioBufferPos == len(s.audioBuffer) {
		s.audioBufferPos = 0
	}
}

func (s *spu) updateEnvelopes() {
	for i := 0; i < 16; i++ {
		if !bitSet16(s.channelEnable, i) || bitSet16(s.channelStop, i) {
			continue
		}
		s.tickChannelEnvelope(i)
		s.tickChannelPitchbend(i)
	}
}

func (s *spu) updateRampdowns() {
	for i := 0; i < 16; i++ {
		if !bitSet16(s.channelEnable, i) || bitSet16(s.channelStop, i) {
			continue
		}
		s.tickChannelRampdown(i)
	}
}

func (s *spu) tickChannel(i int) {
	ch := &s.channels[i]
	phaseAcc := ch.phaseAcc + ch.phase
	ch.phaseAcc = phaseAcc & 0x7ffff
	if phaseAcc < 0x80000 {
		return
	}

	if bitSet16(s.channelFiqEnable, i) {
		setBit16(&s.channelFiqStatus, i, true)
		s.updateChannelIrq()
	}

	ch.waveData0 = ch.waveData

	if ch.mode.toneMode() == 0 {
		return
	}

	word := s.bus.ReadWord(ch.waveAddress)

	switch {
	case ch.mode.adpcm():
		if word == 0xffff {
			s.handleEndMarker(i)
		} else {
			adpcmValue := uint8(word>>ch.waveShift) & 0xf
			ch.waveData = uint16(ch.adpcm.Decode(adpcmValue)) ^ 0x8000
		}
		ch.waveShift += 4
		if ch.waveShift >= 16 {
			ch.waveShift = 0
			ch.waveAddress++
		}

	case !ch.mode.toneColor():
		pcmValue := uint8(word>>ch.waveShift) & 0xff
		if pcmValue == 0xff {
			s.handleEndMarker(i)
		} else {
			ch.waveData = (uint16(pcmValue) << 8) | uint16(pcmValue)
		}
		ch.waveShift += 8
		if ch.waveShift >= 16 {
			ch.waveShift = 0
			ch.waveAddress++
		}

	default:
		if word == 0xffff {
			s.handleEndMarker(i)
		} else {
			ch.waveData = word
		}
		ch.waveAddress++
	}
}

func (s *spu) handleEndMarker(i int) {
	ch := &s.channels[i]
	switch ch.mode.toneMode() {
	case 1:
		s.stopChannel(i)
	case 2:
		ch.waveAddress = ch.loopAddress
		ch.waveShift = 0
		ch.mode.clearAdpcm()
	}
}

func (s *spu) tickChannelEnvelope(i int) {
	ch := &s.channels[i]
	if bitSet16(s.channelEnvMode, i) || bitSet16(s.channelEnvRampdown, i) {
		return
	}
	if !s.envelopeClock.GetDividedTick(spuEnvelopeFrameDivides[ch.envClk]) {
		return
	}

	if ch.envelopeData.count() > 0 {
		ch.envelopeData.setCount(ch.envelopeData.count() - 1)
	}

	if ch.envelopeData.count() == 0 {
		if ch.envelopeData.edd() != ch.envelope0.target() {
			if ch.envelope0.sign() {
				newEdd := clampInt(ch.envelopeData.edd()-ch.envelope0.inc(), ch.envelope0.target(), 0x7f)
				ch.envelopeData.setEdd(newEdd)
				if ch.envelopeData.edd() == 0 {
					s.stopChannel(i)
					return
				}
			} else {
				newEdd := clampInt(ch.envelopeData.edd()+ch.envelope0.inc(), 0, ch.envelope0.target())
				ch.envelopeData.setEdd(newEdd)
			}
		}

		if ch.envelopeData.edd() == ch.envelope0.target() {
			addr := ch.envelopeAddress + uint32(ch.envelopeLoopControl.eaOffset())
			if ch.envelope1.repeat() {
				if ch.envelope1.repeatCount() > 0 {
					ch.envelope1.setRepeatCount(ch.envelope1.repeatCount() - 1)
				}

				if ch.envelope1.repeatCount() == 0 {
					ch.envelope0.raw = s.bus.ReadWord(addr)
					ch.envelope1.raw = s.bus.ReadWord(addr + 1)
					oldRampdownOffset := ch.envelopeLoopControl.rampdownOffset()
					ch.envelopeLoopControl.raw = s.bus.ReadWord(addr + 2)
					ch.envelopeLoopControl.setRampdownOffset(oldRampdownOffset)

					if ch.envelopeIrq.irqEnable() && ch.envelopeLoopControl.eaOffset() == ch.envelopeIrq.irqFireAddress() {
						setBit16(&s.channelEnvIrq, i, true)
						s.updateBeatIrq()
					}
				}
			} else {
				ch.envelope0.raw = s.bus.ReadWord(addr)
				ch.envelope1.raw = s.bus.ReadWord(addr + 1)
				ch.envelopeLoopControl.addEaOffset(2)

				if ch.envelopeIrq.irqEnable() && ch.envelopeLoopControl.eaOffset() == ch.envelopeIrq.irqFireAddress() {
					setBit16(&s.channelEnvIrq, i, true)
					s.updateBeatIrq()
				}
			}
		}

		ch.envelopeData.setCount(ch.envelope1.load())
	}
}

func (s *spu) tickChannelPitchbend(i int) {
	ch := &s.channels[i]
	if !bitSet16(s.channelPitchBend, i) || ch.phase == ch.targetPhase {
		return
	}
	if !s.envelopeClock.GetDividedTick(spuPitchbendFrameDivides[ch.pitchBendControl.timeStep()]) {
		return
	}

	if ch.pitchBendControl.sign() {
		ch.phase = uint32(clampInt(int(ch.phase)-ch.pitchBendControl.offset(), int(ch.targetPhase), 0x7ffff))
	} else {
		ch.phase = uint32(clampInt(int(ch.phase)+ch.pitchBendControl.offset(), 0, int(ch.targetPhase)))
	}
}

func (s *spu) tickChannelRampdown(i int) {
	ch := &s.channels[i]
	if !bitSet16(s.channelEnvRampdown, i) {
		return
	}
	if !s.rampdownClock.GetDividedTick(spuRampdownFrameDivides[ch.rampdownClk]) {
		return
	}

	ch.envelopeData.setEdd(clampInt(ch.envelopeData.edd()-ch.envelopeLoopControl.rampdownOffset(), 0, 0x7f))

	if ch.envelopeData.edd() == 0 {
		s.stopChannel(i)
		setBit16(&s.channelEnvRampdown, i, false)
		setBit16(&s.channelToneRelease, i, false)
	}
}

func (s *spu) startChannel(i int) {
	ch := &s.channels[i]
	ch.waveShift = 0
	ch.adpcm.Reset()
	if !bitSet16(s.channelEnvMode, i) {
		ch.envelopeData.setCount(ch.envelope1.load())
	}
}

func (s *spu) stopChannel(i int) {
	setBit16(&s.channelStop, i, true)
	setBit16(&s.channelToneRelease, i, false)
	setBit16(&s.channelEnvRampdown, i, false)
	s.channels[i].mode.clearAdpcm()
}

func (s *spu) updateChannelIrq() {
	s.irq.SetSpuChannelIrq(anyBit16(s.channelFiqStatus))
}

func (s *spu) updateBeatIrq() {
	beatEnabled := s.beatCount.irqEnable() && s.beatCount.irqStatus()
	envirqEnabled := anyBit16(s.channelEnvIrq)
	s.irq.SetSpuBeatIrq(beatEnabled || envirqEnabled)
}

// GetAudio drains and returns the accumulated interleaved stereo
// sample buffer.
func (s *spu) GetAudio() []uint16 {
	size := s.audioBufferPos
	s.audioBufferPos = 0
	out := make([]uint16, size)
	copy(out, s.audioBuffer[:size])
	return out
}

func (s *spu) GetWaveAddressLo(ch int) uint16 { return uint16(s.channels[ch].waveAddress & 0xffff) }
func (s *spu) SetWaveAddressLo(ch int, v uint16) {
	s.channels[ch].waveAddress = (s.channels[ch].waveAddress &^ 0xffff) | uint32(v)
	s.channels[ch].waveShift = 0
}

func (s *spu) GetMode(ch int) uint16 {
	waveAddressHi := uint16(s.channels[ch].waveAddress >> 16)
	loopAddressHi := uint16(s.channels[ch].loopAddress >> 16)
	return s.channels[ch].mode.raw | (loopAddressHi << 6) | waveAddressHi
}

func (s *spu) SetMode(ch int, v uint16) {
	s.channels[ch].mode.raw = v & spuModeWriteMask
	s.channels[ch].waveAddress = (uint32(v&0x3f) << 16) | (s.channels[ch].waveAddress & 0xffff)
	s.channels[ch].loopAddress = (uint32((v>>6)&0x3f) << 16) | (s.channels[ch].loopAddress & 0xffff)
}

func (s *spu) GetLoopAddressLo(ch int) uint16 { return uint16(s.channels[ch].loopAddress & 0xffff) }
func (s *spu) SetLoopAddressLo(ch int, v uint16) {
	s.channels[ch].loopAddress = (s.channels[ch].loopAddress &^ 0xffff) | uint32(v)
}

func (s *spu) GetPan(ch int) uint16 { return s.channels[ch].pan.raw }
func (s *spu) SetPan(ch int, v uint16) { s.channels[ch].pan.raw = v & spuPanWriteMask }

func (s *spu) GetEnvelope0(ch int) uint16 { return s.channels[ch].envelope0.raw }
func (s *spu) SetEnvelope0(ch int, v uint16) { s.channels[ch].envelope0.raw = v & spuEnvelope0WriteMask }

func (s *spu) GetEnvelopeData(ch int) uint16 { return s.channels[ch].envelopeData.raw }
func (s *spu) SetEnvelopeData(ch int, v uint16) {
	s.channels[ch].envelopeData.raw = v & spuEnvelopeDataWriteMask
}

func (s *spu) GetEnvelope1(ch int) uint16 { return s.channels[ch].envelope1.raw }
func (s *spu) SetEnvelope1(ch int, v uint16) { s.channels[ch].envelope1.raw = v }

func (s *spu) GetEnvelopeAddressHi(ch int) uint16 {
	envelopeAddressHi := uint16(s.channels[ch].envelopeAddress >> 16)
	return s.channels[ch].envelopeIrq.raw | envelopeAddressHi
}
func (s *spu) SetEnvelopeAddressHi(ch int, v uint16) {
	s.channels[ch].envelopeIrq.raw = v & spuEnvelopeIrqWriteMask
	s.channels[ch].envelopeAddress = (uint32(v&0x3f) << 16) | (s.channels[ch].envelopeAddress & 0xffff)
}

func (s *spu) GetEnvelopeAddressLo(ch int) uint16 { return uint16(s.channels[ch].envelopeAddress & 0xffff) }
func (s *spu) SetEnvelopeAddressLo(ch int, v uint16) {
	s.channels[ch].envelopeAddress = (s.channels[ch].envelopeAddress &^ 0xffff) | uint32(v)
}

func (s *spu) GetWaveData0(ch int) uint16 { return s.channels[ch].waveData0 }
func (s *spu) SetWaveData0(ch int, v uint16) { s.channels[ch].waveData0 = v }

func (s *spu) GetEnvelopeLoopControl(ch int) uint16 { return s.channels[ch].envelopeLoopControl.raw }
func (s *spu) SetEnvelopeLoopControl(ch int, v uint16) {
	s.channels[ch].envelopeLoopControl.raw = v
}

func (s *spu) GetWaveData(ch int) uint16 { return s.channels[ch].waveData }
func (s *spu) SetWaveData(ch int, v uint16) { s.channels[ch].waveData = v }

func (s *spu) GetPhaseHi(ch int) uint16 { return uint16(s.channels[ch].phase >> 16) }
func (s *spu) SetPhaseHi(ch int, v uint16) {
	s.channels[ch].phase = (uint32(v&0x07) << 16) | (s.channels[ch].phase & 0xffff)
}

func (s *spu) GetPhaseAccumulatorHi(ch int) uint16 { return uint16(s.channels[ch].phaseAcc >> 16) }
func (s *spu) SetPhaseAccumulatorHi(ch int, v uint16) {
	s.channels[ch].phaseAcc = (uint32(v&0x07) << 16) | (s.channels[ch].phaseAcc & 0xffff)
}

func (s *spu) GetTargetPhaseHi(ch int) uint16 { return uint16(s.channels[ch].targetPhase >> 16) }
func (s *spu) SetTargetPhaseHi(ch int, v uint16) {
	s.channels[ch].targetPhase = (uint32(v&0x07) << 16) | (s.channels[ch].targetPhase & 0xffff)
}

func (s *spu) GetRampDownClock(ch int) uint16 { return uint16(s.channels[ch].rampdownClk) }
func (s *spu) SetRampDownClock(ch int, v uint16) { s.channels[ch].rampdownClk = uint8(v) & 0x07 }

func (s *spu) GetPhaseLo(ch int) uint16 { return uint16(s.channels[ch].phase & 0xffff) }
func (s *spu) SetPhaseLo(ch int, v uint16) {
	s.channels[ch].phase = (s.channels[ch].phase &^ 0xffff) | uint32(v)
}

func (s *spu) GetPhaseAccumulatorLo(ch int) uint16 { return uint16(s.channels[ch].phaseAcc & 0xffff) }
func (s *spu) SetPhaseAccumulatorLo(ch int, v uint16) {
	s.channels[ch].phaseAcc = (s.channels[ch].phaseAcc &^ 0xffff) | uint32(v)
}

func (s *spu) GetTargetPhaseLo(ch int) uint16 { return uint16(s.channels[ch].targetPhase & 0xffff) }
func (s *spu) SetTargetPhaseLo(ch int, v uint16) {
	s.channels[ch].targetPhase = (s.channels[ch].targetPhase &^ 0xffff) | uint32(v)
}

func (s *spu) GetPitchBendControl(ch int) uint16 { return s.channels[ch].pitchBendControl.raw }
func (s *spu) SetPitchBendControl(ch int, v uint16) { s.channels[ch].pitchBendControl.raw = v }

func (s *spu) GetChannelEnable() uint16 { return s.channelEnable }
func (s *spu) SetChannelEnable(v uint16) {
	old := s.channelEnable
	s.channelEnable = v
	for i := 0; i < 16; i++ {
		if bitSet16(old, i) == bitSet16(s.channelEnable, i) {
			continue
		}
		if bitSet16(s.channelStop, i) {
			continue
		}
		if bitSet16(s.channelEnable, i) {
			s.startChannel(i)
		} else {
			s.stopChannel(i)
		}
	}
}

func (s *spu) GetMainVolume() uint16 { return uint16(s.mainVolume) }
func (s *spu) SetMainVolume(v uint16) { s.mainVolume = uint8(v) & 0x7f }

func (s *spu) GetChannelFiqEnable() uint16 { return s.channelFiqEnable }
func (s *spu) SetChannelFiqEnable(v uint16) { s.channelFiqEnable = v }

func (s *spu) GetChannelFiqStatus() uint16 { return s.channelFiqStatus }
func (s *spu) ClearChannelFiqStatus(v uint16) {
	s.channelFiqStatus &^= v
	s.updateChannelIrq()
}

func (s *spu) GetBeatBaseCount() uint16 { return s.beatBaseCount }
func (s *spu) SetBeatBaseCount(v uint16) {
	s.beatBaseCount = v & 0xfff
	s.currentBeatBaseCount = s.beatBaseCount
}

func (s *spu) GetBeatCount() uint16 { return s.beatCount.raw }
func (s *spu) SetBeatCount(v uint16) {
	oldIrqStatus := s.beatCount.irqStatus()
	s.beatCount.raw = v
	s.beatCount.setIrqStatus(oldIrqStatus && !s.beatCount.irqStatus())
	s.updateBeatIrq()
}

func (s *spu) GetEnvClk0_3() uint16 {
	return uint16(s.channels[0].envClk) | uint16(s.channels[1].envClk)<<4 |
		uint16(s.channels[2].envClk)<<8 | uint16(s.channels[3].envClk)<<12
}
func (s *spu) SetEnvClk0_3(v uint16) {
	s.channels[0].envClk = uint8(v) & 0xf
	s.channels[1].envClk = uint8(v>>4) & 0xf
	s.channels[2].envClk = uint8(v>>8) & 0xf
	s.channels[3].envClk = uint8(v>>12) & 0xf
}

func (s *spu) GetEnvClk4_7() uint16 {
	return uint16(s.channels[4].envClk) | uint16(s.channels[5].envClk)<<4 |
		uint16(s.channels[6].envClk)<<8 | uint16(s.channels[7].envClk)<<12
}
func (s *spu) SetEnvClk4_7(v uint16) {
	s.channels[4].envClk = uint8(v) & 0xf
	s.channels[5].envClk = uint8(v>>4) & 0xf
	s.channels[6].envClk = uint8(v>>8) & 0xf
	s.channels[7].envClk = uint8(v>>12) & 0xf
}

func (s *spu) GetEnvClk8_11() uint16 {
	return uint16(s.channels[8].envClk) | uint16(s.channels[9].envClk)<<4 |
		uint16(s.channels[10].envClk)<<8 | uint16(s.channels[11].envClk)<<12
}
func (s *spu) SetEnvClk8_11(v uint16) {
	s.channels[8].envClk = uint8(v) & 0xf
	s.channels[9].envClk = uint8(v>>4) & 0xf
	s.channels[10].envClk = uint8(v>>8) & 0xf
	s.channels[11].envClk = uint8(v>>12) & 0xf
}

func (s *spu) GetEnvClk12_15() uint16 {
	return uint16(s.channels[12].envClk) | uint16(s.channels[13].envClk)<<4 |
		uint16(s.channels[14].envClk)<<8 | uint16(s.channels[15].envClk)<<12
}
func (s *spu) SetEnvClk12_15(v uint16) {
	s.channels[12].envClk = uint8(v) & 0xf
	s.channels[13].envClk = uint8(v>>4) & 0xf
	s.channels[14].envClk = uint8(v>>8) & 0xf
	s.channels[15].envClk = uint8(v>>12) & 0xf
}

func (s *spu) GetEnvRampdown() uint16 { return s.channelEnvRampdown }
func (s *spu) SetEnvRampdown(v uint16) { s.channelEnvRampdown = v }

func (s *spu) GetChannelStop() uint16 { return s.channelStop }
func (s *spu) ClearChannelStop(v uint16) {
	old := s.channelStop
	s.channelStop &^= v

	for i := 0; i < 16; i++ {
		if bitSet16(old, i) == bitSet16(s.channelStop, i) {
			continue
		}
		if bitSet16(s.channelEnable, i) && !bitSet16(s.channelStop, i) {
			s.startChannel(i)
		}
	}
}

func (s *spu) GetChannelZeroCross() uint16 { return s.channelZeroCross }
func (s *spu) SetChannelZeroCross(v uint16) { s.channelZeroCross = v }

func (s *spu) GetControl() uint16 { return s.control.raw }
func (s *spu) SetControl(v uint16) {
	oldOverflow := s.control.overflow()
	s.control.raw = v & spuControlWriteMask
	s.control.setOverflow(oldOverflow)
}

func (s *spu) GetChannelStatus() uint16 { return s.channelEnable &^ s.channelStop }

func (s *spu) SetWaveInLeft(uint16)  {}
func (s *spu) SetWaveInRight(uint16) {}

func (s *spu) GetWaveOutLeft() uint16  { return s.waveOutL }
func (s *spu) SetWaveOutLeft(v uint16) { s.waveOutL = v }
func (s *spu) GetWaveOutRight() uint16  { return s.waveOutR }
func (s *spu) SetWaveOutRight(v uint16) { s.waveOutR = v }

func (s *spu) GetChannelRepeat() uint16 { return s.channelRepeat }
func (s *spu) SetChannelRepeat(v uint16) { s.channelRepeat = v }

func (s *spu) GetChannelEnvMode() uint16 { return s.channelEnvMode }
func (s *spu) SetChannelEnvMode(v uint16) { s.channelEnvMode = v }

func (s *spu) GetChannelToneRelease() uint16 { return s.channelToneRelease }
func (s *spu) SetChannelToneRelease(v uint16) { s.channelToneRelease = v }

func (s *spu) GetChannelEnvIrq() uint16 { return s.channelEnvIrq }
func (s *spu) ClearChannelEnvIrq(v uint16) { s.channelEnvIrq &^= v }

func (s *spu) GetChannelPitchBend() uint16 { return s.channelPitchBend }
func (s *spu) SetChannelPitchBend(v uint16) { s.channelPitchBend = v }
