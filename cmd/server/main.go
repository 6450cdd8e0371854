// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/events"
	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/router"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/store/gormstore"
	"github.com/javajoker/storefront-backend/internal/store/memstore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	setupLogger(cfg.Log)

	st, err := openStore(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize store")
	}
	defer st.Close()

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	bus := events.NewBus(cfg.Events.SubscriberBuffer)

	// Initialize router
	r, err := router.Initialize(cfg, st, bus)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize router")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.WithFields(logrus.Fields{
			"addr":   srv.Addr,
			"driver": cfg.Database.Driver,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if cfg.Kafka.Enabled() {
		writer := events.NewKafkaWriter(events.KafkaRelayConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			// Room for a full-size screenshot plus the rest of the order.
			MaxEventBytes: int64(cfg.Orders.MaxScreenshotBytes) + 1<<20,
		})
		relay := events.NewKafkaRelay(bus, writer, 5*time.Second)
		g.Go(func() error {
			return relay.Run(gctx)
		})
		logrus.WithFields(logrus.Fields{
			"brokers": cfg.Kafka.Brokers,
			"topic":   cfg.Kafka.Topic,
		}).Info("Kafka relay enabled")
	}

	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("Shutting down server...")

		// Disconnect real-time clients first so their handlers return.
		bus.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("Server exited with error")
		st.Close()
		os.Exit(1)
	}

	logrus.Info("Server exited")
}

func openStore(cfg config.DatabaseConfig) (store.Store, error) {
	if cfg.InMemory() {
		logrus.Warn("Using in-memory store; data is lost on restart")
		return memstore.New(), nil
	}

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		return nil, err
	}

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return gormstore.New(db, cfg.QueryTimeout), nil
}

func setupLogger(cfg config.LogConfig) {
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.WithError(err).Warnf("Unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
