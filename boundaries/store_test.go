package boundaries

import (
	"testing"

	"github.com/socal-mls/map-api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCompleteness(t *testing.T) {
	store := Load()

	assert.Len(t, store.RegionNames(), 3)
	assert.Equal(t, []string{"Central California", "Northern California", "Southern California"}, store.RegionNames())
	assert.NotEmpty(t, store.CountyNames())
	assert.NotEmpty(t, store.CityNames())

	for _, name := range store.CountyNames() {
		b := store.County(name)
		require.NotNil(t, b, "county %q", name)
		assert.NotEmpty(t, b.Polygon, "county %q has no polygon", name)
		assert.NotEmpty(t, b.Region, "county %q has no region label", name)
	}
}

func TestPlacementPrefersStoredCentroid(t *testing.T) {
	store := Load()

	la := store.County("Los Angeles")
	require.NotNil(t, la)
	assert.InDelta(t, 34.05, la.Placement().Lat, 1e-9)
	assert.InDelta(t, -118.25, la.Placement().Lng, 1e-9)

	// Ventura carries no hand-maintained centroid; the placement is the
	// polygon's own point mean.
	ventura := store.County("Ventura")
	require.NotNil(t, ventura)
	want := PolygonCentroid(ventura.Polygon)
	assert.Equal(t, want, ventura.Placement())
}

func TestPolygonCentroid(t *testing.T) {
	p := types.Polygon{{
		{-118.0, 34.0},
		{-117.0, 34.0},
		{-117.0, 35.0},
		{-118.0, 35.0},
	}}
	c := PolygonCentroid(p)
	assert.InDelta(t, 34.5, c.Lat, 1e-9)
	assert.InDelta(t, -117.5, c.Lng, 1e-9)

	assert.Equal(t, Point{}, PolygonCentroid(nil))
}

func TestCountiesInViewport(t *testing.T) {
	store := Load()

	// Coachella Valley window: Riverside in, Los Angeles out.
	v := types.Viewport{North: 34.2, South: 33.2, East: -115.5, West: -116.8}
	names := store.CountiesInViewport(v)

	assert.Contains(t, names, "Riverside")
	assert.NotContains(t, names, "Los Angeles")
	assert.NotContains(t, names, "San Francisco")
}

func TestCitiesInViewportWorldBoundsReturnsAll(t *testing.T) {
	store := Load()
	names := store.CitiesInViewport(types.WorldViewport)
	assert.Len(t, names, len(store.CityNames()))
}

func TestInViewportAntimeridianFallback(t *testing.T) {
	store := Load()

	// west > east wraps the antimeridian; California sits on the west
	// side of the wrapped window.
	v := types.Viewport{North: 45, South: 30, East: -100, West: 150}
	names := store.CountiesInViewport(v)
	assert.Contains(t, names, "Los Angeles")

	// A wrapped window that excludes the US longitudes.
	empty := types.Viewport{North: 45, South: 30, East: -170, West: 150}
	assert.Empty(t, store.CountiesInViewport(empty))
}

func TestMainRegion(t *testing.T) {
	cases := map[string]string{
		"Northern California": "Northern California",
		"Bay Area":            "Central California",
		"Sacramento Valley":   "Central California",
		"Central Valley":      "Central California",
		"Central Coast":       "Central California",
		"Sierra Nevada":       "Central California",
		"Los Angeles Metro":   "Southern California",
		"Inland Empire":       "Southern California",
		"Orange County":       "Southern California",
		"San Diego Metro":     "Southern California",
	}
	for detailed, main := range cases {
		assert.Equal(t, main, MainRegion(detailed), "region %q", detailed)
	}
}

func TestViewportContains(t *testing.T) {
	v := types.Viewport{North: 35, South: 33, East: -116, West: -119}
	assert.True(t, v.Contains(34.05, -118.24))
	assert.False(t, v.Contains(36.0, -118.24))
	assert.False(t, v.Contains(34.05, -115.0))

	wrap := types.Viewport{North: 45, South: 30, East: -100, West: 150}
	assert.True(t, wrap.Contains(34.0, -118.0))
	assert.True(t, wrap.Contains(35.0, 160.0))
	assert.False(t, wrap.Contains(34.0, 0.0))
}
