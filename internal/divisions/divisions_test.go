package divisions_test

import (
	"testing"

	"homerelief/internal/divisions"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := divisions.Default()
	require.NoError(t, err)

	names := c.DistrictNames()
	require.Len(t, names, 25)
	require.Equal(t, "Colombo", names[0])
	require.Contains(t, names, "Nuwara Eliya")

	require.Contains(t, c.Divisions("colombo"), "Kotte Divisional Secretariat")
	require.Empty(t, c.Divisions("Jaffna"))
	require.Nil(t, c.Divisions("Atlantis"))

	gn := c.GNDivisions("Gampaha", "negombo divisional secretariat")
	require.Equal(t, []string{"Negombo Town", "Kochchikade", "Kattuwa", "Dalupotha", "Kurana"}, gn)
	require.Nil(t, c.GNDivisions("Gampaha", "Nowhere"))
}

func TestCanonical(t *testing.T) {
	c, err := divisions.Default()
	require.NoError(t, err)

	cases := map[string]string{
		"Colombo":       "Colombo",
		"  kandy ":      "Kandy",
		"Colmbo":        "Colombo",
		"Ratnapur":      "Ratnapura",
		"nuwara eliyaa": "Nuwara Eliya",
	}
	for in, want := range cases {
		got, ok := c.Canonical(in)
		require.True(t, ok, in)
		require.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "Springfield", "Kandyyyy"} {
		_, ok := c.Canonical(in)
		require.False(t, ok, in)
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := divisions.Parse(`
[[district]]
name = "Galle"

[[district]]
name = "galle"
`)
	require.Error(t, err)

	_, err = divisions.Parse(`[[district]]`)
	require.Error(t, err)
}
