package cluster

import (
	"context"
	"math"

	"github.com/lib/pq"
	"github.com/socal-mls/map-api/models"
	"github.com/socal-mls/map-api/types"
)

const (
	maxGridClusters     = 1000
	maxSampleListingIDs = 10
)

// CellAnchor snaps a coordinate to its grid cell anchor. Mirrors the SQL
// bucketing expression so cell membership stays idempotent per size.
func CellAnchor(coord, size float64) float64 {
	return math.Round(coord/size) * size
}

type gridRow struct {
	CellLat          float64        `gorm:"column:cell_lat"`
	CellLng          float64        `gorm:"column:cell_lng"`
	Latitude         float64        `gorm:"column:latitude"`
	Longitude        float64        `gorm:"column:longitude"`
	Count            int            `gorm:"column:count"`
	AvgPrice         float64        `gorm:"column:avg_price"`
	MinPrice         float64        `gorm:"column:min_price"`
	MaxPrice         float64        `gorm:"column:max_price"`
	PropertyTypes    pq.StringArray `gorm:"column:property_types;type:text[]"`
	MlsSources       pq.StringArray `gorm:"column:mls_sources;type:text[]"`
	SampleListingIds pq.StringArray `gorm:"column:sample_listing_ids;type:text[]"`
}

// gridClusters buckets raw listing coordinates into ad-hoc cells in a
// single aggregation round trip. The emitted placement is the true
// centroid of each cell's members, not the cell anchor, so markers look
// naturally distributed rather than snapped to a lattice.
func (e *Engine) gridClusters(ctx context.Context, pred *Predicate, v types.Viewport, size float64) ([]types.Cluster, int, error) {
	var rows []gridRow
	err := e.DB.WithContext(ctx).
		Model(&models.Listing{}).
		Select(`ROUND(latitude / ?) * ? AS cell_lat,
			ROUND(longitude / ?) * ? AS cell_lng,
			AVG(latitude) AS latitude,
			AVG(longitude) AS longitude,
			COUNT(*) AS count,
			ROUND(AVG(list_price)) AS avg_price,
			MIN(list_price) AS min_price,
			MAX(list_price) AS max_price,
			array_agg(DISTINCT property_type) AS property_types,
			array_agg(DISTINCT mls_source) AS mls_sources,
			(array_agg(listing_id))[1:?] AS sample_listing_ids`,
			size, size, size, size, maxSampleListingIDs).
		Scopes(pred.Scope(), ViewportScope(v)).
		Group("1, 2").
		Order("count DESC, cell_lat, cell_lng").
		Limit(maxGridClusters).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	clusters := make([]types.Cluster, 0, len(rows))
	total := 0
	for _, r := range rows {
		c := types.GridCluster{
			Latitude:         r.Latitude,
			Longitude:        r.Longitude,
			Count:            r.Count,
			AvgPrice:         int(r.AvgPrice),
			MinPrice:         r.MinPrice,
			MaxPrice:         r.MaxPrice,
			PropertyTypes:    append([]string{}, r.PropertyTypes...),
			MlsSources:       append([]string{}, r.MlsSources...),
			SampleListingIds: append([]string{}, r.SampleListingIds...),
			IsCluster:        true,
			ClusterType:      "grid",
		}
		total += c.Count
		clusters = append(clusters, c)
	}
	return clusters, total, nil
}
