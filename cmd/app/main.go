package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvasilenko/flightops/config"
	"github.com/mvasilenko/flightops/internal/bootstrap"
	"github.com/mvasilenko/flightops/internal/cache"
	"github.com/mvasilenko/flightops/internal/kafka"
	"github.com/mvasilenko/flightops/internal/repository"
	"github.com/mvasilenko/flightops/internal/service/flights"
	"github.com/mvasilenko/flightops/internal/service/inventory"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Inventory.FlightCacheTTLSecond)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	ledger := inventory.NewLedger(
		flightRepo,
		inventory.WithCache(redisCache),
		inventory.WithProducer(producer, cfg.Kafka.SeatEventsTopic),
		inventory.WithMaxAttempts(cfg.Inventory.MaxAdjustAttempts),
	)
	flightService := flights.NewFlightService(flightRepo, ledger, redisCache)

	if err := bootstrap.Run(ctx, cfg, flightService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
