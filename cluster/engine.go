package cluster

import (
	"context"

	"github.com/socal-mls/map-api/boundaries"
	"github.com/socal-mls/map-api/types"
	"gorm.io/gorm"
)

// Engine is the request-scoped decision and aggregation pipeline. It is
// stateless: the only shared data is the read-only boundary store.
type Engine struct {
	DB         *gorm.DB
	Boundaries *boundaries.Store
}

func NewEngine(db *gorm.DB, store *boundaries.Store) *Engine {
	return &Engine{DB: db, Boundaries: store}
}

// Request is one map view request after parameter parsing.
type Request struct {
	Viewport        types.Viewport
	Zoom            int
	Filters         Filters
	Context         types.MapRequestContext
	IncludePolygons bool
}

// Prepared is the decision outcome plus what a transport needs to finish
// the response. Result.Listings is left empty; when ListingLimit > 0 the
// transport drains OpenListings itself, buffered or frame-by-frame.
type Prepared struct {
	Result       *types.MapResult
	ListingLimit int

	engine   *Engine
	pred     *Predicate
	viewport types.Viewport
}

// OpenListings opens the listing cursor for a prepared response.
func (p *Prepared) OpenListings(ctx context.Context) (ListingCursor, error) {
	return p.engine.OpenListings(ctx, p.pred, p.viewport, p.ListingLimit)
}

// densityProbeMinZoom gates the count probe; below it tier aggregates are
// always used and counting would be wasted work.
const densityProbeMinZoom = 7

// Prepare runs the full decision pipeline: build the predicate, probe
// density, pick a strategy and tier, and run the matching builder. Both
// wire formats consume the returned value, so they cannot diverge.
func (e *Engine) Prepare(ctx context.Context, req Request) (*Prepared, error) {
	pred := BuildPredicate(req.Filters)

	count := 0
	if req.Zoom >= densityProbeMinZoom {
		n, err := e.CountListings(ctx, pred, req.Viewport)
		if err != nil {
			return nil, err
		}
		count = int(n)
	}

	res := &types.MapResult{
		Zoom:     req.Zoom,
		GridSize: GridSizeForZoom(req.Zoom),
		Context:  req.Context,
	}
	prep := &Prepared{Result: res, engine: e, pred: pred, viewport: req.Viewport}

	if !ShouldCluster(req.Zoom, req.Context, count) {
		res.Type = "listings"
		res.TotalCount = count
		prep.ListingLimit = individualListingLimit(req.Zoom)
		return prep, nil
	}

	tier := TierForZoom(req.Zoom)
	var (
		clusters []types.Cluster
		total    int
		err      error
	)
	switch tier {
	case TierRegion:
		clusters, total, err = e.regionClusters(ctx, pred, req.IncludePolygons)
	case TierCounty:
		clusters, total, err = e.countyClusters(ctx, pred, req.Viewport, req.IncludePolygons)
	case TierCity:
		clusters, total, err = e.cityClusters(ctx, pred, req.Viewport, req.IncludePolygons)
	default:
		clusters, total, err = e.gridClusters(ctx, pred, req.Viewport, res.GridSize)
	}
	if err != nil {
		return nil, err
	}

	res.Type = "clusters"
	res.ClusteringMethod = tier.Method()
	res.Clusters = clusters
	// Tier aggregation and viewport clipping can diverge from the raw
	// probe, so the reported total is always the sum actually returned.
	res.TotalCount = total

	if cityListingsOnly(tier, req.Zoom, total) {
		res.Type = "listings"
		res.Clusters = nil
		res.ClusteringMethod = ""
		prep.ListingLimit = HybridListingCap
		return prep, nil
	}
	if attachListings(total) {
		res.ListingsIncluded = true
		prep.ListingLimit = HybridListingCap
	}
	return prep, nil
}

// Run executes the pipeline for the buffered transport, materializing
// listing rows into the result.
func (e *Engine) Run(ctx context.Context, req Request) (*types.MapResult, error) {
	prep, err := e.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if prep.ListingLimit > 0 {
		cur, err := prep.OpenListings(ctx)
		if err != nil {
			return nil, err
		}
		defer cur.Close()
		for {
			s, ok, err := cur.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			prep.Result.Listings = append(prep.Result.Listings, s)
		}
	}
	return prep.Result, nil
}
