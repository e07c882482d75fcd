// spg200_adpcm.go - Per-channel ADPCM nibble decoder for the SPU

/*
spg200_adpcm.go - 4-bit ADPCM to 16-bit PCM

Each SPU channel in ADPCM mode owns one of these: it consumes 4-bit
codes one at a time and produces a running 16-bit sample, with a
step-size index that adapts per code the way IMA ADPCM does. Grounded
on the step-size and step-adjust tables of the machine this core
replaces.
*/

package main

var adpcmStepSizeTable = [89]int{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17, 19, 21, 23,
	25, 28, 31, 34, 37, 41, 45, 50, 55, 60, 66, 73, 80,
	88, 97, 107, 118, 130, 143, 157, 173, 190, 209, 230, 253, 279,
	307, 337, 371, 408, 449, 494, 544, 598, 658, 724, 796, 876, 963,
	1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066, 2272, 2499, 2749, 3024, 3327,
	3660, 4026, 4428, 4871, 5358, 5894, 6484, 7132, 7845, 8630, 9493, 10442, 11487,
	12635, 13899, 15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794, 32767,
}

var adpcmStepAdjustTable = [8]int{-1, -1, -1, -1, 2, 4, 6, 8}

// adpcmDecoder is the per-channel ADPCM decode state: a step index and
// the last decoded sample.
type adpcmDecoder struct {
	stepIndex  int
	lastSample int
}

func (a *adpcmDecoder) Reset() {
	a.stepIndex = 0
	a.lastSample = 0
}

// Decode consumes one 4-bit code and returns the next 16-bit signed
// sample.
func (a *adpcmDecoder) Decode(code uint8) int16 {
	ss := adpcmStepSizeTable[a.stepIndex]
	e := ss / 8
	if code&0x1 != 0 {
		e += ss / 4
	}
	if code&0x2 != 0 {
		e += ss / 2
	}
	if code&0x4 != 0 {
		e += ss
	}
	if code&0x8 != 0 {
		e = -e
	}

	sample := a.lastSample + e
	if sample > 32767 {
		sample = 32767
	} else if sample < -32768 {
		sample = -32768
	}
	a.lastSample = sample

	a.stepIndex += adpcmStepAdjustTable[code&0x07]
	if a.stepIndex < 0 {
		a.stepIndex = 0
	} else if a.stepIndex > 88 {
		a.stepIndex = 88
	}

	return int16(sample)
}
