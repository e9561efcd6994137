package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/laundry-pos-api/config"
	"github.com/kendall-kelly/laundry-pos-api/controllers"
	"github.com/kendall-kelly/laundry-pos-api/middleware"
	"github.com/kendall-kelly/laundry-pos-api/models"
	"github.com/kendall-kelly/laundry-pos-api/services"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/clause"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	config.ConfigureLogger(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("env", cfg.GoEnv).Msg("Starting Laundry POS API server...")

	// Connect to database
	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	db := config.GetDB()
	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	log.Info().Msg("Database migration completed successfully")

	app, err := services.NewApp(services.NewGormStore(db), services.NewPricingClient(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load POS state")
	}

	var backups services.BackupService
	if cfg.BackupsEnabled() {
		s3Service, err := services.NewS3Service(context.Background(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3")
		}
		backups = services.NewS3BackupService(s3Service)
		log.Info().Str("bucket", cfg.AWSS3Bucket).Msg("Order backups enabled")
	}

	var auth gin.HandlerFunc
	if cfg.AuthEnabled() {
		auth, err = middleware.EnsureValidToken(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up authentication")
		}
	} else {
		log.Warn().Msg("AUTH0_DOMAIN not set, API is unauthenticated")
	}

	router := setupRouter(cfg, controllers.NewController(app, backups), auth)

	// Start server
	addr := ":" + cfg.Port
	log.Info().Msgf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

// setupRouter registers every route. auth is nil when authentication is disabled,
// in which case scope checks are skipped too.
func setupRouter(cfg *config.Config, ctl *controllers.Controller, auth gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	router.MaxMultipartMemory = 8 << 20

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)
	}

	api := v1.Group("")
	if auth != nil {
		api.Use(auth)
	}
	controllers.RegisterRoutes(api, ctl, auth != nil)

	return router
}

// corsConfig allows the configured origins; "*" or an empty list allows all
func corsConfig(origins []string) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
	}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}

	corsCfg.AllowOrigins = origins
	corsCfg.AllowCredentials = true
	return corsCfg
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Laundry POS API is running",
	})
}

// databaseStatus checks database connectivity and lists the store records
func databaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Database is not connected",
			},
		})
		return
	}

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var keys []string
	if err := db.Model(&models.StoreEntry{}).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Pluck("key", &keys).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query store",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"dialect": db.Dialector.Name(),
		"records": keys,
	})
}
