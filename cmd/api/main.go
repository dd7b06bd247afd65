package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/finsight/internal/analytics"
	"github.com/Dan9191/finsight/internal/config"
	"github.com/Dan9191/finsight/internal/handler"
	"github.com/Dan9191/finsight/internal/integrations/cbr"
	"github.com/Dan9191/finsight/internal/middleware"
	"github.com/Dan9191/finsight/internal/notify"
	"github.com/Dan9191/finsight/internal/predict"
	"github.com/Dan9191/finsight/internal/repository"
	"github.com/Dan9191/finsight/internal/scheduler"
	"github.com/Dan9191/finsight/internal/service"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const memoryStore = "memory"

func main() {
	// A missing .env file is fine, the environment may already be set
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize storage
	var store service.Store
	if cfg.DBConn == memoryStore {
		logger.Warn("Using in-memory store, data will not survive a restart")
		store = repository.NewMemory()
	} else {
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		store = repository.NewRepository(db)
	}

	// Initialize layers
	predictors := predict.Load(cfg.ModelDir, logger)
	cbrClient, err := cbr.NewCBRClient(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to create CBR client: %v", err)
	}
	defer cbrClient.Close()

	svc := service.NewService(store, analytics.NewEngine(), predictors, cbrClient, logger, cfg)
	h := handler.NewHandler(svc, cbrClient, logger)

	digest, err := scheduler.NewScheduler(cfg.DigestSchedule, svc, notify.NewSender(cfg, logger), logger)
	if err != nil {
		logger.Fatalf("Failed to create scheduler: %v", err)
	}
	digest.Start()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	h.RegisterRoutes(r, middleware.AuthMiddleware(cfg))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	<-digest.Stop().Done()
}
