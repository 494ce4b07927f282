package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"deepcheck/api"
	"deepcheck/config"
	"deepcheck/detector"
	"deepcheck/history"
)

// @title          DeepCheck Detection API
// @version        1.0
// @description    Demonstration deepfake detection service

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	store, err := history.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("Failed to open history store: %v", err)
	}
	defer store.Close()

	engine := detector.NewEngine(
		detector.WithFrameCounts(cfg.VideoFrameCount, cfg.WebcamFrameCount),
	)
	handler := api.NewHandler(engine, store, cfg.ResultCacheTTL(), cfg.ReportTitle)

	// Create Gin router with default middleware
	router := gin.Default()

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/api/v1/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "detection-api",
		})
	})

	handler.RegisterRoutes(router.Group("/api/v1"))

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Starting Detection API server on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down Detection API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Detection API server exited")
}
