package cluster

import (
	"context"

	"github.com/socal-mls/map-api/models"
	"github.com/socal-mls/map-api/types"
)

// CountListings is the count-only density probe: one count query, no
// document materialization. Any datastore error is fatal to the request;
// a silent zero would flip the strategy table.
func (e *Engine) CountListings(ctx context.Context, pred *Predicate, v types.Viewport) (int64, error) {
	var n int64
	err := e.DB.WithContext(ctx).
		Model(&models.Listing{}).
		Scopes(pred.Scope(), ViewportScope(v)).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}
