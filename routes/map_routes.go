package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/socal-mls/map-api/controllers"
)

func SetupMapRoutes(rg *gin.RouterGroup, mapController *controllers.MapController) {
	rg.GET("/map-clusters", mapController.GetMapClusters)
}
