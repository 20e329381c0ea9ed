// Package chroma provides pitch-class profile utilities applied between
// feature extraction and key estimation: averaging per-frame profiles into
// one global profile, correcting for detuning, and gating low-energy bins.
package chroma

import (
	"gonum.org/v1/gonum/floats"
)

// FrameAverage collapses a sequence of per-frame pitch-class profiles into a
// single averaged profile. All frames must share the same length. Returns
// nil for an empty sequence.
func FrameAverage(frames [][]float64) []float64 {
	if len(frames) == 0 {
		return nil
	}

	avg := make([]float64, len(frames[0]))
	for _, frame := range frames {
		floats.Add(avg, frame)
	}
	floats.Scale(1/float64(len(frames)), avg)

	return avg
}

// DetuningShift normalizes a sub-semitone PCP by its peak and rotates it so
// the peak sits on a tempered semitone bin. A profile at semitone resolution
// (or with non-positive peak) is returned unchanged apart from the
// normalization.
func DetuningShift(pcp []float64) []float64 {
	out := make([]float64, len(pcp))
	copy(out, pcp)

	resolution := len(pcp) / 12
	if resolution < 1 {
		return out
	}

	peak := floats.Max(out)
	if peak > 0 {
		floats.Scale(1/peak, out)
	}
	if resolution == 1 {
		return out
	}

	offset := floats.MaxIdx(out) % resolution
	shift := offset
	if offset > resolution/2 {
		shift = resolution - offset
	}
	if shift == 0 {
		return out
	}

	return roll(out, shift)
}

// Gate zeroes every bin whose value falls below threshold
func Gate(pcp []float64, threshold float64) []float64 {
	out := make([]float64, len(pcp))
	for i, v := range pcp {
		if v >= threshold {
			out[i] = v
		}
	}
	return out
}

// roll rotates v forward by k positions, wrapping circularly
func roll(v []float64, k int) []float64 {
	size := len(v)
	k = ((k % size) + size) % size

	out := make([]float64, size)
	for i, x := range v {
		out[(i+k)%size] = x
	}
	return out
}
