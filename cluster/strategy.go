// Package cluster implements the map viewport decision engine: given a
// viewport, zoom, filters and request context it decides between
// aggregated clusters and individual listings, picks the aggregation
// tier, and runs the matching builder against the listings store.
package cluster

import "github.com/socal-mls/map-api/types"

// Tier is the spatial aggregation granularity for a clustered response.
type Tier int

const (
	TierRegion Tier = iota
	TierCounty
	TierCity
	TierGrid
)

// Method returns the clusteringMethod wire value for the tier.
func (t Tier) Method() string {
	switch t {
	case TierRegion:
		return "region-based"
	case TierCounty:
		return "county-based"
	case TierCity:
		return "city-based"
	default:
		return "grid-based"
	}
}

// Marker budgets for the density-aware exceptions. A uniform zoom rule
// would hide a handful of matches behind a single boundary after the
// user or assistant already narrowed the search.
const (
	maxMarkersSpecificLocation = 150
	maxMarkersFilteredSearch   = 200
	defaultDensityCeiling      = 800
)

// ShouldCluster is the strategy decision table, evaluated in precedence
// order over (context, zoom, probed density).
func ShouldCluster(zoom int, ctx types.MapRequestContext, count int) bool {
	if ctx.Source == "ai" && ctx.Intent == "specific_location" {
		return count > maxMarkersSpecificLocation
	}
	if ctx.Source == "ai" && ctx.Intent == "filtered_search" {
		if count <= maxMarkersFilteredSearch {
			return false
		}
		// Dense filtered searches fall through to the default rules.
	}
	if ctx.Source == "manual" {
		// Hierarchical boundaries own everything below zoom 12.
		return zoom < 12
	}
	if ctx.Source == "initial" {
		// First paint always clusters; cost control.
		return true
	}
	if zoom < 11 {
		return true
	}
	if zoom < 12 {
		return count >= defaultDensityCeiling
	}
	return false
}

// TierForZoom maps zoom to the aggregation tier once clustering has been
// chosen. Grid is the fallback for zoom bands the named tiers don't own.
func TierForZoom(zoom int) Tier {
	switch {
	case zoom < 7:
		return TierRegion
	case zoom <= 9:
		return TierCounty
	case zoom <= 11:
		return TierCity
	default:
		return TierGrid
	}
}

// GridSizeForZoom returns the grid cell edge length in degrees. Larger
// cells give fewer, more geographically focused clusters.
func GridSizeForZoom(zoom int) float64 {
	switch {
	case zoom < 6:
		return 5.0
	case zoom < 8:
		return 2.5
	case zoom < 10:
		return 1.0
	case zoom < 11:
		return 0.5
	case zoom < 12:
		return 0.25
	case zoom < 13:
		return 0.1
	default:
		return 0.05
	}
}
