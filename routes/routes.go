package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/socal-mls/map-api/boundaries"
	"github.com/socal-mls/map-api/controllers"
	"github.com/socal-mls/map-api/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, store *boundaries.Store) {
	mapController := controllers.NewMapController(db, store)

	// Public routes; map responses are edge-cacheable so no auth layer.
	public := r.Group("/api")
	public.Use(middleware.RequestID())
	{
		public.GET("/health", mapController.Health)
		SetupMapRoutes(public, mapController)
	}
}
