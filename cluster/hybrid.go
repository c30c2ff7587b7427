package cluster

import (
	"context"
	"database/sql"

	"github.com/socal-mls/map-api/models"
	"github.com/socal-mls/map-api/types"
	"gorm.io/gorm"
)

// Hybrid display thresholds. Below HybridListingCap the boundary layer
// stays useful as hover context while the underlying pins are cheap
// enough to also show; above it boundaries go out alone.
const (
	HybridListingCap    = 600
	CityListingsOnlyMax = 300

	zoom12ListingLimit  = 500
	unlimitedListingCap = 50000
)

// attachListings reports whether the hybrid composer should fetch pins
// alongside a tier's boundaries.
func attachListings(totalCount int) bool {
	return totalCount > 0 && totalCount < HybridListingCap
}

// cityListingsOnly reports the city-tier override: close enough in, a
// sparse boundary layer adds more visual noise than value.
func cityListingsOnly(tier Tier, zoom, totalCount int) bool {
	return tier == TierCity && zoom >= 11 && totalCount > 0 && totalCount <= CityListingsOnlyMax
}

// individualListingLimit caps a pure listings response: 500 at zoom 12,
// effectively unlimited once the viewport is street-level.
func individualListingLimit(zoom int) int {
	if zoom >= 13 {
		return unlimitedListingCap
	}
	return zoom12ListingLimit
}

// listingProjection is the only field set the map tier may request.
const listingProjection = `listing_id, listing_key, slug, slug_address,
	latitude, longitude, list_price, bedrooms_total, beds_total,
	bathrooms_total_decimal, living_area, address, unparsed_address, city,
	property_type, property_sub_type, mls_source, pool_yn, spa_yn,
	primary_photo_url`

// ListingCursor iterates map listing rows in stable fetch order. The
// caller owns it and must Close promptly on cancellation so the
// underlying datastore cursor is released.
type ListingCursor interface {
	Next() (types.ListingSummary, bool, error)
	Close() error
}

type rowsCursor struct {
	db   *gorm.DB
	rows *sql.Rows
}

func (c *rowsCursor) Next() (types.ListingSummary, bool, error) {
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			return types.ListingSummary{}, false, err
		}
		return types.ListingSummary{}, false, nil
	}
	var s types.ListingSummary
	if err := c.db.ScanRows(c.rows, &s); err != nil {
		return types.ListingSummary{}, false, err
	}
	return s, true, nil
}

func (c *rowsCursor) Close() error { return c.rows.Close() }

// OpenListings opens the projection cursor both transports drain: the
// buffered serializer collects it into one slice, the streamed one
// batches it into frames.
func (e *Engine) OpenListings(ctx context.Context, pred *Predicate, v types.Viewport, limit int) (ListingCursor, error) {
	db := e.DB.WithContext(ctx)
	rows, err := db.
		Model(&models.Listing{}).
		Select(listingProjection).
		Scopes(pred.Scope(), ViewportScope(v)).
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	return &rowsCursor{db: db, rows: rows}, nil
}
