package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/flightops/config"
	"github.com/zvrva/flightops/internal/cache"
	"github.com/zvrva/flightops/internal/kafka"
	"github.com/zvrva/flightops/internal/notify"
	"github.com/zvrva/flightops/internal/repository"
	"github.com/zvrva/flightops/internal/service/flights"
	"go.uber.org/zap"
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

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	listTTL := time.Duration(cfg.Cache.ListTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, listTTL)
	defer redisCache.Close()

	flightRepo := repository.NewFlightRepository(pool)
	flightService := flights.NewFlightService(flightRepo, redisCache, nil, cfg.Kafka.EventsTopic)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.EventsTopic)
	defer consumer.Close()

	sender := notify.NewSender()

	go func() {
		if err := consumer.Consume(ctx, sender.Send); err != nil {
			zap.S().Infow("consumer stopped", "error", err)
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.CompletionSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			completed, err := flightService.CompletePastFlights(ctx)
			if err != nil {
				zap.S().Errorw("completion sweep failed", "error", err)
				continue
			}
			if completed > 0 {
				zap.S().Infow("completed past flights", "count", completed)
			}
		case s := <-sig:
			zap.S().Infow("shutting down", "signal", s.String())
			return
		}
	}
}
