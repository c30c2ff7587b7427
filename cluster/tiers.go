package cluster

import (
	"context"
	"math"
	"sort"

	"github.com/lib/pq"
	"github.com/socal-mls/map-api/boundaries"
	"github.com/socal-mls/map-api/models"
	"github.com/socal-mls/map-api/types"
)

// Region centroid fallback when no county placements contribute.
const (
	fallbackRegionLat = 37.0
	fallbackRegionLng = -119.0
)

// tierStats is one group-by row of live aggregate stats for a boundary.
type tierStats struct {
	Name         string         `gorm:"column:name"`
	ListingCount int            `gorm:"column:listing_count"`
	CityCount    int            `gorm:"column:city_count"`
	AvgPrice     float64        `gorm:"column:avg_price"`
	MinPrice     float64        `gorm:"column:min_price"`
	MaxPrice     float64        `gorm:"column:max_price"`
	MlsSources   pq.StringArray `gorm:"column:mls_sources;type:text[]"`
}

// tierStatsByName groups live listings by boundary name. The column is an
// internal constant ("county" or "city"), never user input.
func (e *Engine) tierStatsByName(ctx context.Context, pred *Predicate, column string) (map[string]tierStats, error) {
	var rows []tierStats
	err := e.DB.WithContext(ctx).
		Model(&models.Listing{}).
		Select(column + ` AS name,
			COUNT(*) AS listing_count,
			COUNT(DISTINCT city) AS city_count,
			AVG(list_price) AS avg_price,
			MIN(list_price) AS min_price,
			MAX(list_price) AS max_price,
			array_agg(DISTINCT mls_source) AS mls_sources`).
		Scopes(pred.Scope()).
		Group(column).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	stats := make(map[string]tierStats, len(rows))
	for _, r := range rows {
		stats[r.Name] = r
	}
	return stats, nil
}

func sourceList(arr pq.StringArray) []string {
	out := make([]string, 0, len(arr))
	out = append(out, arr...)
	sort.Strings(out)
	return out
}

// countyClusters emits one cluster per static county whose placement point
// falls in the viewport. A county with no live stats still renders with
// count 0 so geography never disappears with inventory.
func (e *Engine) countyClusters(ctx context.Context, pred *Predicate, v types.Viewport, includePolygons bool) ([]types.Cluster, int, error) {
	stats, err := e.tierStatsByName(ctx, pred, "county")
	if err != nil {
		return nil, 0, err
	}
	clusters, total := assembleCountyClusters(stats, e.Boundaries.CountiesInViewport(v), e.Boundaries, includePolygons)
	return clusters, total, nil
}

func assembleCountyClusters(stats map[string]tierStats, names []string, store *boundaries.Store, includePolygons bool) ([]types.Cluster, int) {
	clusters := make([]types.Cluster, 0, len(names))
	total := 0
	for _, name := range names {
		b := store.County(name)
		st := stats[name]
		c := types.CountyCluster{
			Latitude:    b.Placement().Lat,
			Longitude:   b.Placement().Lng,
			Count:       st.ListingCount,
			CountyName:  name,
			CityCount:   st.CityCount,
			AvgPrice:    int(math.Round(st.AvgPrice)),
			MinPrice:    st.MinPrice,
			MaxPrice:    st.MaxPrice,
			MlsSources:  sourceList(st.MlsSources),
			IsCluster:   true,
			ClusterType: "county",
		}
		if includePolygons {
			c.Polygon = b.Polygon
		}
		total += c.Count
		clusters = append(clusters, c)
	}
	return clusters, total
}

// cityClusters mirrors countyClusters at the city tier, sorted by count
// descending so the densest markers render first.
func (e *Engine) cityClusters(ctx context.Context, pred *Predicate, v types.Viewport, includePolygons bool) ([]types.Cluster, int, error) {
	stats, err := e.tierStatsByName(ctx, pred, "city")
	if err != nil {
		return nil, 0, err
	}
	clusters, total := assembleCityClusters(stats, e.Boundaries.CitiesInViewport(v), e.Boundaries, includePolygons)
	return clusters, total, nil
}

func assembleCityClusters(stats map[string]tierStats, names []string, store *boundaries.Store, includePolygons bool) ([]types.Cluster, int) {
	clusters := make([]types.Cluster, 0, len(names))
	total := 0
	for _, name := range names {
		b := store.City(name)
		st := stats[name]
		c := types.CityCluster{
			Latitude:    b.Placement().Lat,
			Longitude:   b.Placement().Lng,
			Count:       st.ListingCount,
			CityName:    name,
			AvgPrice:    int(math.Round(st.AvgPrice)),
			MinPrice:    st.MinPrice,
			MaxPrice:    st.MaxPrice,
			MlsSources:  sourceList(st.MlsSources),
			IsCluster:   true,
			ClusterType: "city",
		}
		if includePolygons {
			c.Polygon = b.Polygon
		}
		total += c.Count
		clusters = append(clusters, c)
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Size() > clusters[j].Size()
	})
	return clusters, total
}

type regionRollup struct {
	count       int
	countyCount int
	cityCount   int
	avgPrices   []float64
	minPrice    float64
	maxPrice    float64
	lats        []float64
	lngs        []float64
	sources     map[string]struct{}
}

func newRegionRollup() *regionRollup {
	return &regionRollup{minPrice: math.Inf(1), sources: make(map[string]struct{})}
}

func (r *regionRollup) absorb(st tierStats, placement boundaries.Point) {
	r.count += st.ListingCount
	r.countyCount++
	r.cityCount += st.CityCount
	if st.ListingCount > 0 {
		r.avgPrices = append(r.avgPrices, st.AvgPrice)
		if st.MinPrice < r.minPrice {
			r.minPrice = st.MinPrice
		}
		if st.MaxPrice > r.maxPrice {
			r.maxPrice = st.MaxPrice
		}
		for _, s := range st.MlsSources {
			r.sources[s] = struct{}{}
		}
	}
	r.lats = append(r.lats, placement.Lat)
	r.lngs = append(r.lngs, placement.Lng)
}

// finalize collapses a roll-up into the emitted cluster. An empty roll-up
// degrades to a zero-count marker at the statewide fallback point.
func (r *regionRollup) finalize(name string) types.RegionCluster {
	lat, lng := fallbackRegionLat, fallbackRegionLng
	if len(r.lats) > 0 {
		lat = mean(r.lats)
		lng = mean(r.lngs)
	}
	minPrice := r.minPrice
	if math.IsInf(minPrice, 1) {
		minPrice = 0
	}
	sources := make([]string, 0, len(r.sources))
	for s := range r.sources {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	return types.RegionCluster{
		Latitude:    lat,
		Longitude:   lng,
		Count:       r.count,
		RegionName:  name,
		CountyCount: r.countyCount,
		CityCount:   r.cityCount,
		AvgPrice:    int(math.Round(mean(r.avgPrices))),
		MinPrice:    minPrice,
		MaxPrice:    r.maxPrice,
		MlsSources:  sources,
		IsCluster:   true,
		ClusterType: "region",
	}
}

// regionClusters rolls live county stats up into the three top-level
// regions. Regions are few enough that the viewport never clips them.
func (e *Engine) regionClusters(ctx context.Context, pred *Predicate, includePolygons bool) ([]types.Cluster, int, error) {
	stats, err := e.tierStatsByName(ctx, pred, "county")
	if err != nil {
		return nil, 0, err
	}
	clusters, total := assembleRegionClusters(stats, e.Boundaries, includePolygons)
	return clusters, total, nil
}

func assembleRegionClusters(stats map[string]tierStats, store *boundaries.Store, includePolygons bool) ([]types.Cluster, int) {
	roll := make(map[string]*regionRollup)
	for _, name := range store.CountyNames() {
		b := store.County(name)
		main := boundaries.MainRegion(b.Region)
		r := roll[main]
		if r == nil {
			r = newRegionRollup()
			roll[main] = r
		}
		r.absorb(stats[name], b.Placement())
	}

	clusters := make([]types.Cluster, 0, len(store.RegionNames()))
	total := 0
	for _, regionName := range store.RegionNames() {
		r := roll[regionName]
		if r == nil {
			r = newRegionRollup()
		}
		c := r.finalize(regionName)
		if includePolygons {
			if b := store.Region(regionName); b != nil {
				c.Polygon = b.Polygon
			}
		}
		total += c.Count
		clusters = append(clusters, c)
	}
	return clusters, total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
