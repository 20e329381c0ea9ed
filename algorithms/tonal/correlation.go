package tonal

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// circularCorrelator evaluates the normalized cross-correlation between a
// PCP and an interpolated profile at every rotation of the profile. Two
// paths produce the same values (within floating tolerance): a direct
// time-domain scan, and an FFT batch via the cross-correlation theorem for
// high-resolution PCPs where the O(N²) scan starts to cost.
type circularCorrelator struct {
	useFFT       bool
	fftThreshold int
}

func newCircularCorrelator() *circularCorrelator {
	return &circularCorrelator{
		useFFT:       true,
		fftThreshold: 128,
	}
}

// Scan returns the correlation at every shift in [0, len(pcp)). The PCP mean
// and spread are computed once by the caller since they do not depend on the
// shift.
func (cc *circularCorrelator) Scan(pcp []float64, pcpMean, pcpSpread float64, prof *interpolatedProfile) []float64 {
	if cc.useFFT && len(pcp) >= cc.fftThreshold {
		return cc.scanFFT(pcp, pcpMean, pcpSpread, prof)
	}

	scores := make([]float64, len(pcp))
	for shift := range scores {
		scores[shift] = correlate(pcp, pcpMean, pcpSpread, prof, shift)
	}
	return scores
}

// correlate computes the correlation statistic at a single shift. The shift
// rotates the profile backward relative to the PCP; the modulo is normalized
// into [0, size) so the rotation is circular.
func correlate(pcp []float64, pcpMean, pcpSpread float64, prof *interpolatedProfile, shift int) float64 {
	size := len(pcp)

	r := 0.0
	for i := 0; i < size; i++ {
		index := (i - shift) % size
		if index < 0 {
			index += size
		}
		r += (pcp[i] - pcpMean) * (prof.values[index] - prof.mean)
	}

	return r / (pcpSpread * prof.spread)
}

// scanFFT evaluates all shifts at once: the circular cross-correlation of
// the centered PCP with the centered profile is IFFT(FFT(pcp)*conj(FFT(prof))).
func (cc *circularCorrelator) scanFFT(pcp []float64, pcpMean, pcpSpread float64, prof *interpolatedProfile) []float64 {
	size := len(pcp)
	scores := make([]float64, size)

	denom := pcpSpread * prof.spread
	if denom == 0 {
		// A profile whose mean round-trips exactly zeroes every numerator
		// term, so the direct path yields 0/0 = NaN at every shift. FFT
		// rounding would instead leave a tiny numerator and produce ±Inf;
		// force the same NaN so such a template stays unelectable on both
		// paths.
		for i := range scores {
			scores[i] = math.NaN()
		}
		return scores
	}

	centeredPCP := make([]float64, size)
	centeredProf := make([]float64, size)
	for i := 0; i < size; i++ {
		centeredPCP[i] = pcp[i] - pcpMean
		centeredProf[i] = prof.values[i] - prof.mean
	}

	spectrum := fft.FFTReal(centeredPCP)
	profSpectrum := fft.FFTReal(centeredProf)
	for i := range spectrum {
		spectrum[i] *= cmplx.Conj(profSpectrum[i])
	}

	corr := fft.IFFT(spectrum)
	for i := range scores {
		scores[i] = real(corr[i]) / denom
	}
	return scores
}
