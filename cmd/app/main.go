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
	"github.com/zvrva/flightops/internal/bootstrap"
	"github.com/zvrva/flightops/internal/cache"
	"github.com/zvrva/flightops/internal/kafka"
	"github.com/zvrva/flightops/internal/repository"
	"github.com/zvrva/flightops/internal/service/airlines"
	"github.com/zvrva/flightops/internal/service/airports"
	"github.com/zvrva/flightops/internal/service/analytics"
	"github.com/zvrva/flightops/internal/service/bookings"
	"github.com/zvrva/flightops/internal/service/flights"
	"github.com/zvrva/flightops/internal/service/passengers"
	"github.com/zvrva/flightops/internal/service/staff"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	listTTL := time.Duration(cfg.Cache.ListTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, listTTL)
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	airlineRepo := repository.NewAirlineRepository(pool)
	airportRepo := repository.NewAirportRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)

	svc := bootstrap.Services{
		Flights:    flights.NewFlightService(flightRepo, redisCache, producer, cfg.Kafka.EventsTopic),
		Passengers: passengers.NewPassengerService(passengerRepo, flightRepo, redisCache, producer, cfg.Kafka.EventsTopic),
		Bookings:   bookings.NewBookingService(bookingRepo, flightRepo, passengerRepo, redisCache, producer, cfg.Kafka.EventsTopic),
		Airlines:   airlines.NewAirlineService(airlineRepo),
		Airports:   airports.NewAirportService(airportRepo, redisCache),
		Staff:      staff.NewStaffService(staffRepo, airportRepo, redisCache, producer, cfg.Kafka.EventsTopic),
		Analytics:  analytics.NewAnalyticsService(analyticsRepo),
	}

	if err := bootstrap.Run(ctx, cfg, svc); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
