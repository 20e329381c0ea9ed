package tonal

import (
	"math"

	"github.com/RyanBlaney/sonido-keyfind/algorithms/common"
)

// interpolatedProfile is a 12-bin template stretched to the PCP resolution,
// with the statistics every correlation evaluation needs cached alongside.
// spread is the square root of the summed squared deviations, not a true
// standard deviation; the missing 1/N cancels against the PCP side of the
// correlation quotient.
type interpolatedProfile struct {
	values []float64
	mean   float64
	spread float64
}

// interpolateProfile stretches a 12-bin template to 12*n bins. Each semitone
// anchor template[i] lands on bin i*n; the n-1 bins toward the next anchor
// descend linearly from it, parameterized by the forward difference:
//
//	values[i*n+j] = template[i] - j*(template[i]-template[(i+1)%12])/n
//
// For n=1 this is the template itself.
func interpolateProfile(template []float64, n int) *interpolatedProfile {
	size := 12 * n
	values := make([]float64, size)

	for i := 0; i < 12; i++ {
		values[i*n] = template[i]

		incr := (template[i] - template[(i+1)%12]) / float64(n)
		for j := 1; j <= n-1; j++ {
			values[i*n+j] = template[i] - float64(j)*incr
		}
	}

	mean := common.Mean(values)
	spread := math.Sqrt(common.SumSquaredDeviations(values, mean))

	return &interpolatedProfile{
		values: values,
		mean:   mean,
		spread: spread,
	}
}
