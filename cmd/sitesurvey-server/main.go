package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-sitesurvey/internal/config"
	"github.com/goliatone/go-sitesurvey/internal/handler"
	"github.com/goliatone/go-sitesurvey/internal/provider"
	"github.com/goliatone/go-sitesurvey/pkg/location"
	"github.com/goliatone/go-sitesurvey/pkg/schema"
	"github.com/goliatone/go-sitesurvey/pkg/session"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Site Survey Server")
	log.Printf("Version: %s", Version)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if !cfg.Kakao.Enabled {
		log.Fatalf("KAKAO_REST_KEY is required: reverse geocoding backs every point selection")
	}

	gin.SetMode(cfg.Server.GinMode)

	kakao := provider.NewKakao(cfg.Kakao.RESTKey,
		provider.WithKakaoBaseURL(cfg.Kakao.BaseURL),
		provider.WithKakaoRateLimit(cfg.Kakao.RateLimit),
	)

	aggregatorOptions := []location.AggregatorOption{
		location.WithPlaceSearcher(kakao),
		location.WithLookupTimeout(cfg.Survey.LookupTimeout),
		location.WithCachePrecision(cfg.Survey.CachePrecision),
	}
	if cfg.Elevation.Enabled {
		aggregatorOptions = append(aggregatorOptions, location.WithElevationProvider(
			provider.NewOpenElevation(
				provider.WithElevationBaseURL(cfg.Elevation.BaseURL),
				provider.WithElevationRateLimit(cfg.Elevation.RateLimit),
			)))
		log.Println("Elevation lookups enabled")
	}
	if cfg.VWorld.Enabled {
		aggregatorOptions = append(aggregatorOptions, location.WithBuildingProvider(
			provider.NewVWorld(cfg.VWorld.APIKey,
				provider.WithVWorldBaseURL(cfg.VWorld.BaseURL),
				provider.WithVWorldRateLimit(cfg.VWorld.RateLimit),
			)))
		log.Println("Building-registry lookups enabled")
	}
	aggregator := location.NewAggregator(kakao, aggregatorOptions...)

	fields := schema.Default()
	if cfg.Survey.SchemaPath != "" {
		data, err := os.ReadFile(cfg.Survey.SchemaPath)
		if err != nil {
			log.Fatalf("Failed to read schema file: %v", err)
		}
		fields, err = schema.Parse(data, cfg.Survey.SchemaPath)
		if err != nil {
			log.Fatalf("Failed to parse schema file: %v", err)
		}
		log.Printf("Loaded %d fields from %s", fields.Len(), cfg.Survey.SchemaPath)
	}

	sessionHandler := handler.NewSessionHandler(func() *session.Session {
		return session.New(aggregator,
			session.WithSchema(fields),
			session.WithDefaultPoint(cfg.Survey.DefaultLat, cfg.Survey.DefaultLng),
		)
	})

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "sitesurvey-server",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	apiV1 := router.Group("/api/v1")
	sessionHandler.RegisterRoutes(apiV1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
