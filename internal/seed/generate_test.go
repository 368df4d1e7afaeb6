package seed_test

import (
	"strings"
	"testing"

	"homerelief/internal/divisions"
	"homerelief/internal/seed"
	"homerelief/pkg/types"

	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	catalog, err := divisions.Default()
	require.NoError(t, err)

	a := seed.Generate(catalog, 12, 42)
	b := seed.Generate(catalog, 12, 42)
	require.Equal(t, a, b)

	c := seed.Generate(catalog, 12, 7)
	require.NotEqual(t, a, c)
}

func TestGeneratedRecordsAreValid(t *testing.T) {
	catalog, err := divisions.Default()
	require.NoError(t, err)

	data := seed.Generate(catalog, 30, 1)
	require.Len(t, data.DamageReports, 30)
	require.Len(t, data.DonationOffers, 30)
	require.Len(t, data.VolunteerOffers, 30)

	for i, r := range data.DamageReports {
		require.True(t, strings.HasPrefix(r.PhoneNumber, seed.PhonePrefix))
		require.Contains(t, catalog.DistrictNames(), r.District)
		require.Contains(t, types.DamageTypes, r.DamageType)
		require.GreaterOrEqual(t, r.FamilyMembers, 1)
		require.NotEmpty(t, r.EssentialNeeds)
		for _, need := range r.EssentialNeeds {
			require.Contains(t, types.EssentialNeeds, need)
		}
		require.Equal(t, r.Latitude == nil, r.Longitude == nil)
		require.Equal(t, i%3 == 0, r.Verified)
	}

	for _, v := range data.VolunteerOffers {
		require.NotEmpty(t, v.Skills)
		if v.AvailabilityStart != nil {
			require.False(t, v.AvailabilityStart.After(*v.AvailabilityEnd))
		}
	}
}
