package analytics

import (
	"context"

	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/repository"
)

type AnalyticsUseCase interface {
	AboveAverageFlights(ctx context.Context) ([]domain.AboveAverageFlight, error)
	PassengerBookingDetails(ctx context.Context) ([]domain.PassengerBookingDetail, error)
	UniquePassengersPerAirline(ctx context.Context) ([]domain.AirlinePassengers, error)
	BusiestAirports(ctx context.Context, limit int) ([]domain.BusyAirport, error)
}

type AnalyticsService struct {
	repo repository.AnalyticsRepository
}

func NewAnalyticsService(repo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

func (s *AnalyticsService) AboveAverageFlights(ctx context.Context) ([]domain.AboveAverageFlight, error) {
	return s.repo.AboveAverageFlights(ctx)
}

func (s *AnalyticsService) PassengerBookingDetails(ctx context.Context) ([]domain.PassengerBookingDetail, error) {
	return s.repo.PassengerBookingDetails(ctx)
}

func (s *AnalyticsService) UniquePassengersPerAirline(ctx context.Context) ([]domain.AirlinePassengers, error) {
	return s.repo.UniquePassengersPerAirline(ctx)
}

func (s *AnalyticsService) BusiestAirports(ctx context.Context, limit int) ([]domain.BusyAirport, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	return s.repo.BusiestAirports(ctx, limit)
}

var _ AnalyticsUseCase = (*AnalyticsService)(nil)
