package tonal

import (
	"errors"
	"sort"
)

// ProfileFamily selects which catalog of key profile templates an estimator
// draws from. The two families mirror the two generations of profile tuning:
// the extended family carries a third "other" template per type alongside
// major and minor, the EDM family carries major and minor only.
type ProfileFamily int

const (
	FamilyExtended ProfileFamily = iota
	FamilyEDM
)

func (f ProfileFamily) String() string {
	switch f {
	case FamilyExtended:
		return "extended"
	case FamilyEDM:
		return "edm"
	default:
		return "unknown"
	}
}

// ErrUnsupportedProfileType is returned at configuration time when the
// requested profile type is not in the selected family's catalog.
var ErrUnsupportedProfileType = errors.New("unsupported profile type")

// profileSet holds the 12-bin reference templates for one profile type.
// other is nil in the EDM family.
type profileSet struct {
	major []float64
	minor []float64
	other []float64
}

// Extended family templates. Row order within each type: major, minor, other.
// Bin order: I, bII, II, bIII, III, IV, #IV, V, bVI, VI, bVII, VII.
var extendedProfiles = map[string]profileSet{
	"bmtg1": {
		major: []float64{1.0000, 0.1573, 0.4200, 0.1570, 0.5296, 0.3669, 0.1632, 0.7711, 0.1676, 0.3827, 0.2113, 0.2965},
		minor: []float64{1.0000, 0.2330, 0.3615, 0.3905, 0.2925, 0.3777, 0.1961, 0.7425, 0.2701, 0.2161, 0.4228, 0.2272},
		other: []float64{1.0000, 0.2608, 0.3528, 0.2935, 0.4393, 0.3580, 0.2137, 0.7809, 0.2578, 0.2539, 0.3233, 0.2615},
	},
	"bmtg2": {
		major: []float64{1.00, 0.10, 0.42, 0.10, 0.53, 0.37, 0.10, 0.77, 0.10, 0.38, 0.21, 0.30},
		minor: []float64{1.00, 0.10, 0.36, 0.39, 0.29, 0.38, 0.10, 0.74, 0.27, 0.10, 0.42, 0.23},
		other: []float64{1.00, 0.26, 0.35, 0.29, 0.44, 0.36, 0.21, 0.78, 0.26, 0.25, 0.32, 0.26},
	},
	"bmtg3": {
		major: []float64{1.00, 0.00, 0.42, 0.00, 0.53, 0.37, 0.00, 0.76, 0.00, 0.38, 0.21, 0.30},
		minor: []float64{1.00, 0.00, 0.36, 0.39, 0.10, 0.37, 0.00, 0.76, 0.27, 0.00, 0.42, 0.23},
		other: []float64{1.00, 0.26, 0.35, 0.29, 0.44, 0.37, 0.21, 0.76, 0.26, 0.25, 0.32, 0.26},
	},
	"edma": {
		major: []float64{1.00, 0.29, 0.50, 0.40, 0.60, 0.56, 0.32, 0.80, 0.31, 0.45, 0.42, 0.39},
		minor: []float64{1.00, 0.31, 0.44, 0.58, 0.33, 0.49, 0.29, 0.78, 0.43, 0.29, 0.53, 0.32},
		other: []float64{1.00, 0.26, 0.35, 0.29, 0.44, 0.36, 0.21, 0.78, 0.26, 0.25, 0.32, 0.26},
	},
}

// EDM family templates. The edmm major template is deliberately flat: with
// no shape to match, its correlations collapse to rounding noise and major
// never outscores minor, so edmm reports major repertoire as minor, which is
// the tuning's documented intent.
var edmProfiles = map[string]profileSet{
	"temperley": {
		major: []float64{5.0, 2.0, 3.5, 2.0, 4.5, 4.0, 2.0, 4.5, 2.0, 3.5, 1.5, 4.0},
		minor: []float64{5.0, 2.0, 3.5, 4.5, 2.0, 4.0, 2.0, 4.5, 3.5, 2.0, 1.5, 4.0},
	},
	"shaath": {
		major: []float64{6.6, 2.0, 3.5, 2.3, 4.6, 4.0, 2.5, 5.2, 2.4, 3.7, 2.3, 3.4},
		minor: []float64{6.5, 2.7, 3.5, 5.4, 2.6, 3.5, 2.5, 5.2, 4.0, 2.7, 4.3, 3.2},
	},
	"edma": {
		major: []float64{0.16519551, 0.04749026, 0.08293076, 0.06687112, 0.09994645, 0.09274123, 0.05294487, 0.13159476, 0.05218986, 0.07443653, 0.06940723, 0.0642515},
		minor: []float64{0.17235348, 0.05336489, 0.0761009, 0.10043649, 0.05621498, 0.08527853, 0.0497915, 0.13451001, 0.07458916, 0.05003023, 0.09187879, 0.05545106},
	},
	"edmm": {
		major: []float64{0.083, 0.083, 0.083, 0.083, 0.083, 0.083, 0.083, 0.083, 0.083, 0.083, 0.083, 0.083},
		minor: []float64{0.17235348, 0.04, 0.0761009, 0.12, 0.05621498, 0.08527853, 0.0497915, 0.13451001, 0.07458916, 0.05003023, 0.09187879, 0.05545106},
	},
}

func familyCatalog(family ProfileFamily) map[string]profileSet {
	if family == FamilyEDM {
		return edmProfiles
	}
	return extendedProfiles
}

// lookupProfiles resolves a profile type within a family
func lookupProfiles(family ProfileFamily, profileType string) (profileSet, error) {
	set, ok := familyCatalog(family)[profileType]
	if !ok {
		return profileSet{}, ErrUnsupportedProfileType
	}
	return set, nil
}

// SupportedProfileTypes returns the profile types available in a family,
// sorted alphabetically
func SupportedProfileTypes(family ProfileFamily) []string {
	catalog := familyCatalog(family)
	types := make([]string, 0, len(catalog))
	for name := range catalog {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
