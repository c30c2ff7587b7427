package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/socal-mls/map-api/boundaries"
	"github.com/socal-mls/map-api/cluster"
	"github.com/socal-mls/map-api/types"
	"github.com/socal-mls/map-api/utils"
	"gorm.io/gorm"
)

type MapController struct {
	Engine     *cluster.Engine
	Boundaries *boundaries.Store
}

func NewMapController(db *gorm.DB, store *boundaries.Store) *MapController {
	return &MapController{Engine: cluster.NewEngine(db, store), Boundaries: store}
}

// GetMapClusters godoc
// @Summary Clusters or individual listings for a map viewport
// @Tags map
// @Produce json
// @Param north query number false "Viewport north bound (default 90)"
// @Param south query number false "Viewport south bound (default -90)"
// @Param east query number false "Viewport east bound (default 180)"
// @Param west query number false "Viewport west bound (default -180)"
// @Param zoom query integer false "Map zoom level (default 8)"
// @Param stream query boolean false "Stream listings as an event stream"
// @Router /map-clusters [get]
func (mc *MapController) GetMapClusters(c *gin.Context) {
	req := parseMapRequest(c)

	stream := c.Query("stream")
	if stream == "true" || stream == "1" {
		mc.streamMapResponse(c, req)
		return
	}

	res, err := mc.Engine.Run(c.Request.Context(), req)
	if err != nil {
		log.Printf("map-clusters request %s failed: %v", c.GetString("requestID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	writeBuffered(c, res)
}

// Health godoc
// @Summary Liveness probe with boundary-table inventory
// @Tags map
// @Produce json
// @Router /health [get]
func (mc *MapController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"regions":  len(mc.Boundaries.RegionNames()),
		"counties": len(mc.Boundaries.CountyNames()),
		"cities":   len(mc.Boundaries.CityNames()),
	})
}

// parseMapRequest reads the full query surface. Malformed numerics fall
// back to defaults instead of rejecting; this is a best-effort
// visualization layer.
func parseMapRequest(c *gin.Context) cluster.Request {
	viewport := types.Viewport{
		North: utils.ParseFloat(c.Query("north"), types.WorldViewport.North),
		South: utils.ParseFloat(c.Query("south"), types.WorldViewport.South),
		East:  utils.ParseFloat(c.Query("east"), types.WorldViewport.East),
		West:  utils.ParseFloat(c.Query("west"), types.WorldViewport.West),
	}
	zoom := utils.ParseInt(c.Query("zoom"), 8)

	filters := cluster.Filters{
		ListingType:     c.DefaultQuery("listingType", "sale"),
		PropertyType:    c.Query("propertyType"),
		PropertySubType: c.Query("propertySubType"),
		MinPrice:        utils.ParseFloat(c.Query("minPrice"), 0),
		MaxPrice:        utils.ParseFloat(c.Query("maxPrice"), 0),
		Beds:            utils.ParseInt(c.Query("beds"), 0),
		Baths:           utils.ParseFloat(c.Query("baths"), 0),
		MinSqft:         utils.ParseFloat(c.Query("minSqft"), 0),
		MaxSqft:         utils.ParseFloat(c.Query("maxSqft"), 0),
		MinLotSize:      utils.ParseFloat(c.Query("minLotSize"), 0),
		MaxLotSize:      utils.ParseFloat(c.Query("maxLotSize"), 0),
		MinYear:         utils.ParseInt(c.Query("minYear"), 0),
		MaxYear:         utils.ParseInt(c.Query("maxYear"), 0),
		MinGarages:      utils.ParseInt(c.Query("minGarages"), 0),
		PoolYn:          utils.ParseBool(c.Query("poolYn")),
		SpaYn:           utils.ParseBool(c.Query("spaYn")),
		ViewYn:          utils.ParseBool(c.Query("viewYn")),
		GarageYn:        utils.ParseBool(c.Query("garageYn")),
		GatedCommunity:  utils.ParseBool(c.Query("gatedCommunity")),
		SeniorCommunity: utils.ParseBool(c.Query("seniorCommunity")),
		AssociationYN:   utils.ParseBool(c.Query("associationYN")),
		HOA:             c.Query("hoa"),
		City:            c.Query("city"),
		Subdivision:     c.Query("subdivision"),
		LandType:        c.Query("landType"),
	}
	if raw := c.Query("mlsSource"); raw != "" {
		filters.MlsSources = strings.Split(raw, ",")
	}

	reqContext := types.MapRequestContext{
		Source:        c.DefaultQuery("source", "manual"),
		Intent:        c.DefaultQuery("intent", "explore"),
		ExpectedCount: utils.ParseInt(c.Query("expectedCount"), 0),
		LocationName:  c.Query("locationName"),
		LocationType:  c.Query("locationType"),
	}

	return cluster.Request{
		Viewport:        viewport,
		Zoom:            zoom,
		Filters:         filters,
		Context:         reqContext,
		IncludePolygons: c.Query("includePolygons") == "true",
	}
}

// Boundary-tier stats change slowly, so cluster payloads cache at the
// edge and CDN; listing payloads reflect live density decisions and
// never cache.
func setClusterCacheHeaders(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300, s-maxage=1800, stale-while-revalidate=86400")
	c.Header("CDN-Cache-Control", "max-age=1800")
	c.Header("Vary", "Accept-Encoding")
}

func writeBuffered(c *gin.Context, res *types.MapResult) {
	listings := res.Listings
	if listings == nil {
		listings = []types.ListingSummary{}
	}

	if res.Type == "clusters" {
		setClusterCacheHeaders(c)
		payload := gin.H{
			"type":             "clusters",
			"zoom":             res.Zoom,
			"gridSize":         res.GridSize,
			"clusteringMethod": res.ClusteringMethod,
			"clusters":         res.Clusters,
			"totalCount":       res.TotalCount,
			"clusterCount":     len(res.Clusters),
			"listingsIncluded": res.ListingsIncluded,
			"context":          res.Context,
		}
		if res.ListingsIncluded {
			payload["listings"] = listings
		}
		c.JSON(http.StatusOK, payload)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.JSON(http.StatusOK, gin.H{
		"type":         "listings",
		"zoom":         res.Zoom,
		"listings":     listings,
		"totalCount":   res.TotalCount,
		"listingCount": len(listings),
		"context":      res.Context,
	})
}
