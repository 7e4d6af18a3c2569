package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/assets"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/config"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/logger"
	"github.com/FACorreiaa/go-photoshare/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.ParseLevel(cfg.LogLevel), zap.String("service", cfg.Observability.ServiceName)); err != nil {
		return err
	}
	defer logger.Log.Sync()

	otelShutdown, err := server.InitObservability(cfg.Observability, logger.Log)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg, logger.Log)

	router, err := server.SetupRouter(cfg, logger.Log)
	if err != nil {
		return err
	}
	if err := server.SetupAssets(router, assets.Assets); err != nil {
		logger.Log.Error("Failed to setup assets", zap.Error(err))
		return err
	}
	srv.SetRouter(router)

	server.StartPprofServer(cfg.Observability.PprofAddr, logger.Log)

	httpServer := srv.HTTPServer()

	done := make(chan bool, 1)
	go server.GracefulShutdown(httpServer, logger.Log, done)

	logger.Log.Info("Server starting",
		zap.String("port", cfg.ServerPort),
		zap.String("api", cfg.API.BaseURL))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Error("Server error", zap.Error(err))
		return err
	}

	<-done
	logger.Log.Info("Graceful shutdown complete")

	return nil
}
