package tonal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownProfileTypeIsConfigurationError(t *testing.T) {
	_, err := NewKeyEstimator(KeyParams{Family: FamilyEDM, Profile: "krumhansl"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnsupportedProfileType)

	_, err = NewKeyEstimator(KeyParams{Family: FamilyExtended, Profile: "temperley"})
	require.ErrorIs(t, err, ErrUnsupportedProfileType)
}

func TestSupportedProfileTypes(t *testing.T) {
	assert.Equal(t, []string{"bmtg1", "bmtg2", "bmtg3", "edma"}, SupportedProfileTypes(FamilyExtended))
	assert.Equal(t, []string{"edma", "edmm", "shaath", "temperley"}, SupportedProfileTypes(FamilyEDM))
}

func TestCatalogShape(t *testing.T) {
	for _, name := range SupportedProfileTypes(FamilyExtended) {
		set, err := lookupProfiles(FamilyExtended, name)
		require.NoError(t, err, name)
		assert.Len(t, set.major, 12, name)
		assert.Len(t, set.minor, 12, name)
		assert.Len(t, set.other, 12, "extended family carries a third template: %s", name)
	}

	for _, name := range SupportedProfileTypes(FamilyEDM) {
		set, err := lookupProfiles(FamilyEDM, name)
		require.NoError(t, err, name)
		assert.Len(t, set.major, 12, name)
		assert.Len(t, set.minor, 12, name)
		assert.Nil(t, set.other, "EDM family has no third template: %s", name)
	}
}

func TestEDMATemplatesDifferPerFamily(t *testing.T) {
	extended, err := lookupProfiles(FamilyExtended, "edma")
	require.NoError(t, err)
	edm, err := lookupProfiles(FamilyEDM, "edma")
	require.NoError(t, err)

	// Same corpus, different tuning generation: the two catalogs must stay
	// independent.
	assert.NotEqual(t, extended.major, edm.major)
	assert.NotEqual(t, extended.minor, edm.minor)
}
