package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/michaelgivor/stackshop-app/handlers"
	"github.com/michaelgivor/stackshop-app/internal/cart"
	"github.com/michaelgivor/stackshop-app/internal/consul"
	"github.com/michaelgivor/stackshop-app/internal/products"
	"github.com/michaelgivor/stackshop-app/internal/query"
	"github.com/michaelgivor/stackshop-app/internal/stores/kafka"
	"github.com/michaelgivor/stackshop-app/internal/stores/postgres"
	"github.com/michaelgivor/stackshop-app/pkg/logkey"
)

func main() {
	if err := startApp(); err != nil {
		slog.Error("failed to start service", slog.String(logkey.ERROR, err.Error()))
		os.Exit(1)
	}
}

func startApp() error {
	_ = godotenv.Load()

	slog.Info("connecting to postgres")
	db, err := postgres.OpenDB()
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer db.Close()

	if os.Getenv("DB_MIGRATE") == "true" {
		slog.Info("running migrations")
		if err := postgres.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to migrate db: %w", err)
		}
	}

	productConf, err := products.NewConf(db)
	if err != nil {
		return fmt.Errorf("failed to create products conf: %w", err)
	}
	productSvc := products.NewService(productConf)

	cartConf, err := cart.NewConf(db)
	if err != nil {
		return fmt.Errorf("failed to create cart conf: %w", err)
	}

	tiers := query.NewTiers(os.Getenv("APP_ENV") == "development")
	queryClient := query.NewClient(productSvc, cartConf, tiers)

	// Kafka is optional infrastructure; the service runs without it.
	var kafkaConf *kafka.Conf
	if host := os.Getenv("KAFKA_HOST"); host != "" {
		kafkaConf, err = kafka.NewConf(host, os.Getenv("KAFKA_PORT"))
		if err != nil {
			return fmt.Errorf("failed to connect to kafka: %w", err)
		}
		defer kafkaConf.Close()
		slog.Info("connected to kafka", slog.String("Host", host))
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", port, err)
	}

	// Self-registration, so a gateway can discover this instance.
	if os.Getenv("CONSUL_HTTP_ADDR") != "" {
		client, err := consul.NewClient()
		if err != nil {
			return fmt.Errorf("failed to create consul client: %w", err)
		}
		host := os.Getenv("SERVICE_HOST")
		if host == "" {
			host = "localhost"
		}
		if err := consul.RegisterService(client, "storefront-api", host, portNum); err != nil {
			return fmt.Errorf("failed to register with consul: %w", err)
		}
		slog.Info("registered with consul", slog.String("Service", "storefront-api"))
	}

	prefix := os.Getenv("SERVICE_ENDPOINT_PREFIX")
	if prefix == "" {
		prefix = "/v1"
	}

	api := http.Server{
		Addr:         ":" + port,
		Handler:      handlers.API(prefix, queryClient, productSvc, kafkaConf),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("starting storefront api", slog.String("Port", port))
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		slog.Info("shutting down", slog.String("Signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := api.Shutdown(ctx); err != nil {
			if closeErr := api.Close(); closeErr != nil {
				err = errors.Join(err, closeErr)
			}
			return fmt.Errorf("failed to shut down gracefully: %w", err)
		}
	}

	return nil
}
