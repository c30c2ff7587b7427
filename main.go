package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/socal-mls/map-api/boundaries"
	"github.com/socal-mls/map-api/config"
	"github.com/socal-mls/map-api/routes"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	// Initialize database
	db := config.InitDB()

	// Static boundary tables: loaded once, read-only for the process
	// lifetime.
	store := boundaries.Load()
	log.Printf("Loaded boundaries: %d regions, %d counties, %d cities",
		len(store.RegionNames()), len(store.CountyNames()), len(store.CityNames()))

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, db, store)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
