// Package boundaries holds the static region/county/city polygon tables.
// The store is built once at process start and is read-only afterwards,
// so any number of request goroutines can share it without locking.
package boundaries

import (
	"sort"
	"strings"

	"github.com/dhconnelly/rtreego"
	"github.com/socal-mls/map-api/types"
)

const (
	dimensions     = 2
	minChildren    = 25
	maxChildren    = 50
	pointTolerance = 1e-6
)

// Point is a placement coordinate for a boundary marker.
type Point struct {
	Lat float64
	Lng float64
}

// Boundary is one named static polygon. Centroid, when present, is a
// hand-maintained placement override; otherwise the placement is the
// point-mean centroid of the polygon itself.
type Boundary struct {
	Name     string
	Region   string // counties only: detailed region label
	Centroid *Point
	Polygon  types.Polygon

	placement Point
}

// Placement returns the marker coordinate resolved at load time.
func (b *Boundary) Placement() Point { return b.placement }

type tierTable struct {
	byName map[string]*Boundary
	names  []string
	index  *rtreego.Rtree
}

// Store keys every boundary by name and indexes placement points in an
// R-tree for viewport clipping.
type Store struct {
	regions  tierTable
	counties tierTable
	cities   tierTable
}

// indexEntry wraps a boundary placement to satisfy rtreego.Spatial.
type indexEntry struct {
	name string
	rect *rtreego.Rect
}

func (e *indexEntry) Bounds() *rtreego.Rect { return e.rect }

// Load builds the store from the compiled-in boundary tables.
func Load() *Store {
	return &Store{
		regions:  buildTier(regionBoundaries),
		counties: buildTier(countyBoundaries),
		cities:   buildTier(cityBoundaries),
	}
}

func buildTier(list []*Boundary) tierTable {
	t := tierTable{
		byName: make(map[string]*Boundary, len(list)),
		index:  rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
	for _, b := range list {
		if b.Centroid != nil {
			b.placement = *b.Centroid
		} else {
			b.placement = PolygonCentroid(b.Polygon)
		}
		t.byName[b.Name] = b
		t.names = append(t.names, b.Name)

		p := rtreego.Point{b.placement.Lat, b.placement.Lng}
		t.index.Insert(&indexEntry{name: b.Name, rect: p.ToRect(pointTolerance)})
	}
	sort.Strings(t.names)
	return t
}

func (s *Store) RegionNames() []string { return s.regions.names }
func (s *Store) CountyNames() []string { return s.counties.names }
func (s *Store) CityNames() []string   { return s.cities.names }

func (s *Store) Region(name string) *Boundary { return s.regions.byName[name] }
func (s *Store) County(name string) *Boundary { return s.counties.byName[name] }
func (s *Store) City(name string) *Boundary   { return s.cities.byName[name] }

// CountiesInViewport returns the names of counties whose placement point
// falls inside the viewport, sorted for stable output.
func (s *Store) CountiesInViewport(v types.Viewport) []string {
	return s.counties.inViewport(v)
}

// CitiesInViewport is the city-tier equivalent of CountiesInViewport.
func (s *Store) CitiesInViewport(v types.Viewport) []string {
	return s.cities.inViewport(v)
}

func (t tierTable) inViewport(v types.Viewport) []string {
	// R-tree rectangles cannot wrap the antimeridian and degenerate
	// viewports produce zero-length rects, so scan directly in both cases.
	if !v.WrapsAntimeridian() && v.North > v.South && v.East > v.West {
		bottomLeft := rtreego.Point{v.South, v.West}
		lengths := []float64{v.North - v.South, v.East - v.West}
		if rect, err := rtreego.NewRect(bottomLeft, lengths); err == nil {
			results := t.index.SearchIntersect(rect)
			names := make([]string, 0, len(results))
			for _, r := range results {
				names = append(names, r.(*indexEntry).name)
			}
			sort.Strings(names)
			return names
		}
	}

	names := make([]string, 0, len(t.names))
	for _, name := range t.names {
		p := t.byName[name].placement
		if v.Contains(p.Lat, p.Lng) {
			names = append(names, name)
		}
	}
	return names
}

// MainRegion collapses a detailed county region label into one of the
// three top-level California regions used at the region tier.
func MainRegion(region string) string {
	if strings.Contains(region, "Northern") {
		return "Northern California"
	}
	if strings.Contains(region, "Bay Area") ||
		strings.Contains(region, "Sacramento") ||
		strings.Contains(region, "Central Valley") ||
		strings.Contains(region, "Central Coast") ||
		strings.Contains(region, "Sierra") {
		return "Central California"
	}
	return "Southern California"
}

// PolygonCentroid computes the point-mean centroid of all leaf [lng,lat]
// pairs across the polygon's rings.
func PolygonCentroid(p types.Polygon) Point {
	var latSum, lngSum float64
	var n int
	for _, ring := range p {
		for _, pt := range ring {
			if len(pt) < 2 {
				continue
			}
			lngSum += pt[0]
			latSum += pt[1]
			n++
		}
	}
	if n == 0 {
		return Point{}
	}
	return Point{Lat: latSum / float64(n), Lng: lngSum / float64(n)}
}
