package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimentdash/internal/domain/dashboard"
)

func TestCountryResolver(t *testing.T) {
	r := NewCountryResolver()

	assert.Equal(t, "United States", r.Resolve("USA"))
	assert.Equal(t, "United States", r.Resolve(" usa "))
	assert.Equal(t, "United Kingdom", r.Resolve("England"))
	assert.Equal(t, "France", r.Resolve("France"))
	assert.Equal(t, "Atlantis", r.Resolve(" Atlantis"))

	r.AddAlias("Bharat", "India")
	assert.Equal(t, "India", r.Resolve("BHARAT"))
}

func TestMergeRegions(t *testing.T) {
	stats := []dashboard.LocationStat{
		{Location: "USA", Negative: 1, Total: 2},
		{Location: "United States", Negative: 3, Total: 3},
		{Location: "France", Negative: 1, Total: 1},
		{Location: "Empty", Negative: 0, Total: 0},
		{Location: "  ", Negative: 1, Total: 1},
	}

	regions := MergeRegions(stats, NewCountryResolver())
	require.Len(t, regions, 2)

	assert.Equal(t, "France", regions[0].Name)
	assert.InDelta(t, 1.0, regions[0].NegativePct, 1e-9)

	us := regions[1]
	assert.Equal(t, "United States", us.Name)
	assert.Equal(t, []string{"USA", "United States"}, us.Sources)
	assert.Equal(t, 4, us.Negative)
	assert.Equal(t, 5, us.Total)
	assert.InDelta(t, 0.8, us.NegativePct, 1e-9)
}
