package tonal

import (
	"errors"
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-keyfind/algorithms/common"
	"github.com/RyanBlaney/sonido-keyfind/logging"
)

// Tonal center alphabet. Index 0 is A, ascending by semitone.
var keyNames = []string{"A", "Bb", "B", "C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab"}

var (
	// ErrInvalidProfileSize is returned when the input PCP length is not a
	// positive multiple of 12.
	ErrInvalidProfileSize = errors.New("input PCP size is not a positive multiple of 12")

	// ErrKeyNotFound is returned when no shift ever produced a comparable
	// correlation score, e.g. when NaN propagated through every comparison.
	ErrKeyNotFound = errors.New("could not find key")

	// ErrFlatProfile is returned for a constant PCP, whose zero spread would
	// make every correlation indeterminate.
	ErrFlatProfile = errors.New("input PCP has zero spread")
)

// KeyParams configures a KeyEstimator
type KeyParams struct {
	Family  ProfileFamily `json:"family"`   // Profile family (extended or EDM)
	Profile string        `json:"profile"`  // Profile type within the family, e.g. "bmtg2", "edma"
	PCPSize int           `json:"pcp_size"` // Expected PCP size hint; the actual input length overrides it
}

// KeyEstimate is the result of one key estimation
type KeyEstimate struct {
	Key      string  `json:"key"`      // Tonal center, "A" through "Ab"
	Scale    string  `json:"scale"`    // "major" or "minor"
	Strength float64 `json:"strength"` // Best correlation across all rotations of the winning mode

	// FirstToSecondRelativeStrength is the normalized gap between the best
	// and second-best correlation of the winning mode
	FirstToSecondRelativeStrength float64 `json:"first_to_second_relative_strength"`
}

// mode is the internal candidate label. modeOther competes with its own
// template but is reported as "minor".
type mode int

const (
	modeMajor mode = iota
	modeMinor
	modeOther
)

// modeScan is the outcome of scanning one mode's template across all shifts
type modeScan struct {
	max   float64
	max2  float64
	shift int
}

// KeyEstimator estimates the musical key of an averaged pitch-class profile
// by correlating fixed style templates against every rotation of the input.
//
// The estimator keeps its interpolated templates cached between calls and
// reinterpolates only when the input length changes. That cache is the only
// mutable state: concurrent Estimate calls with differing PCP lengths on a
// single instance are not supported, use one estimator per goroutine.
type KeyEstimator struct {
	params   KeyParams
	profiles profileSet
	corr     *circularCorrelator
	logger   logging.Logger

	// interpolation cache, invalidated when the PCP length changes
	cachedSize int
	major      *interpolatedProfile
	minor      *interpolatedProfile
	other      *interpolatedProfile
}

// NewKeyEstimator creates a key estimator for the given profile family and
// type. An unknown profile type is a configuration error, reported here and
// never per call.
func NewKeyEstimator(params KeyParams) (*KeyEstimator, error) {
	set, err := lookupProfiles(params.Family, params.Profile)
	if err != nil {
		return nil, fmt.Errorf("key estimator: %w: %q (%s family)", err, params.Profile, params.Family)
	}

	e := &KeyEstimator{
		params:   params,
		profiles: set,
		corr:     newCircularCorrelator(),
		logger: logging.WithFields(logging.Fields{
			"component": "key_estimator",
			"family":    params.Family.String(),
			"profile":   params.Profile,
		}),
	}

	// Honor the size hint so the first Estimate call finds warm templates
	if params.PCPSize >= 12 && params.PCPSize%12 == 0 {
		e.resize(params.PCPSize)
	}

	return e, nil
}

// Estimate returns the best matching key for one averaged PCP. The input is
// read but never mutated, and no state beyond the interpolation cache
// survives the call.
func (e *KeyEstimator) Estimate(pcp []float64) (*KeyEstimate, error) {
	size := len(pcp)
	if size < 12 || size%12 != 0 {
		return nil, fmt.Errorf("key estimator: %w: got %d", ErrInvalidProfileSize, size)
	}

	if size != e.cachedSize {
		e.resize(size)
	}

	pcpMean := common.Mean(pcp)
	pcpSpread := math.Sqrt(common.SumSquaredDeviations(pcp, pcpMean))
	if pcpSpread == 0 {
		return nil, fmt.Errorf("key estimator: %w", ErrFlatProfile)
	}

	majorScan := scanBest(e.corr.Scan(pcp, pcpMean, pcpSpread, e.major))
	minorScan := scanBest(e.corr.Scan(pcp, pcpMean, pcpSpread, e.minor))
	var otherScan *modeScan
	if e.other != nil {
		s := scanBest(e.corr.Scan(pcp, pcpMean, pcpSpread, e.other))
		otherScan = &s
	}

	winner, best := pickMode(majorScan, minorScan, otherScan)
	if best.shift < 0 {
		return nil, fmt.Errorf("key estimator: %w", ErrKeyNotFound)
	}

	// Convert the winning shift, expressed at resolution N, to a semitone
	// index: round half up, wrapping a shift within half a semitone below
	// the octave back to the tonic.
	keyIndex := int(float64(best.shift*12)/float64(size)+0.5) % 12

	scale := "minor"
	if winner == modeMajor {
		scale = "major"
	}

	est := &KeyEstimate{
		Key:                           keyNames[keyIndex],
		Scale:                         scale,
		Strength:                      best.max,
		FirstToSecondRelativeStrength: (best.max - best.max2) / best.max,
	}

	e.logger.Debug("key estimated", logging.Fields{
		"key":      est.Key,
		"scale":    est.Scale,
		"strength": est.Strength,
		"pcp_size": size,
	})

	return est, nil
}

// resize reinterpolates the 12-bin templates to the given PCP size
func (e *KeyEstimator) resize(size int) {
	n := size / 12

	e.major = interpolateProfile(e.profiles.major, n)
	e.minor = interpolateProfile(e.profiles.minor, n)
	e.other = nil
	if e.profiles.other != nil {
		e.other = interpolateProfile(e.profiles.other, n)
	}
	e.cachedSize = size

	e.logger.Debug("interpolated key profiles", logging.Fields{
		"pcp_size":   size,
		"resolution": n,
	})
}

// scanBest walks one mode's scores tracking the running maximum, the shift
// where it occurred, and the second-highest value seen. The update rule is
// strictly greater: a tie with the current maximum does not displace the
// second maximum. NaN scores never win a comparison, so a mode whose
// template has zero spread keeps shift == -1.
func scanBest(scores []float64) modeScan {
	s := modeScan{max: -1, max2: -1, shift: -1}
	for shift, r := range scores {
		if r > s.max {
			s.max2 = s.max
			s.max = r
			s.shift = shift
		}
	}
	return s
}

// pickMode applies the mode selection cascade, in order:
//
// three-mode family (other != nil):
//
//	major  iff maxMajor > maxMinor and maxMajor > maxOther
//	minor  iff maxMinor >= maxMajor and maxMinor >= maxOther
//	other  iff maxOther > maxMajor and maxOther > maxMinor
//
// A major/other tie above minor satisfies none of the three and resolves to
// no key. Two-mode family: major wins ties against minor.
func pickMode(major, minor modeScan, other *modeScan) (mode, modeScan) {
	if other != nil {
		switch {
		case major.max > minor.max && major.max > other.max:
			return modeMajor, major
		case minor.max >= major.max && minor.max >= other.max:
			return modeMinor, minor
		case other.max > major.max && other.max > minor.max:
			return modeOther, *other
		}
		return modeMajor, modeScan{max: math.NaN(), max2: math.NaN(), shift: -1}
	}

	if major.max >= minor.max {
		return modeMajor, major
	}
	return modeMinor, minor
}
