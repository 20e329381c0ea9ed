package tonal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolateIdentityAtSemitoneResolution(t *testing.T) {
	template := edmProfiles["shaath"].major

	p := interpolateProfile(template, 1)
	require.Len(t, p.values, 12)
	assert.Equal(t, template, p.values)

	// Cached statistics equal direct computation over the 12 values
	sum := 0.0
	for _, v := range template {
		sum += v
	}
	mean := sum / 12

	ssd := 0.0
	for _, v := range template {
		d := v - mean
		ssd += d * d
	}

	assert.InDelta(t, mean, p.mean, 1e-12)
	assert.InDelta(t, math.Sqrt(ssd), p.spread, 1e-12)
}

func TestInterpolateAnchorsAndFill(t *testing.T) {
	template := extendedProfiles["bmtg2"].major
	n := 3

	p := interpolateProfile(template, n)
	require.Len(t, p.values, 36)

	for i := 0; i < 12; i++ {
		// Semitone anchors carry the raw template values exactly
		assert.Equal(t, template[i], p.values[i*n], "anchor %d", i)

		next := template[(i+1)%12]
		incr := (template[i] - next) / float64(n)
		for j := 1; j < n; j++ {
			expected := template[i] - float64(j)*incr
			assert.InDelta(t, expected, p.values[i*n+j], 1e-12, "bin %d", i*n+j)

			// The forward-difference fill traces the same line as the convex
			// combination of the surrounding anchors
			frac := float64(j) / float64(n)
			assert.InDelta(t, (1-frac)*template[i]+frac*next, p.values[i*n+j], 1e-12)
		}
	}
}

func TestInterpolateSpreadIsNotDividedByN(t *testing.T) {
	p := interpolateProfile(edmProfiles["temperley"].minor, 4)

	ssd := 0.0
	for _, v := range p.values {
		d := v - p.mean
		ssd += d * d
	}

	assert.InDelta(t, math.Sqrt(ssd), p.spread, 1e-12)
	// A true standard deviation would be sqrt(ssd/N); the convention here is
	// the raw root of the summed squared deviations
	assert.Greater(t, p.spread, math.Sqrt(ssd/float64(len(p.values)))+1e-9)
}

func TestInterpolateWrapsFromLastAnchorToFirst(t *testing.T) {
	template := edmProfiles["shaath"].minor
	n := 2

	p := interpolateProfile(template, n)

	// The bin between the last anchor and the wrap point interpolates toward
	// template[0], not off the end of the array
	expected := template[11] - (template[11]-template[0])/float64(n)
	assert.InDelta(t, expected, p.values[23], 1e-12)
}
