package airports

import (
	"context"
	"strings"

	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/repository"
	"go.uber.org/zap"
)

type AirportUseCase interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Create(ctx context.Context, input CreateAirportInput) (*domain.Airport, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Departures(ctx context.Context, id int64) ([]domain.Flight, error)
	Arrivals(ctx context.Context, id int64) ([]domain.Flight, error)
	Staff(ctx context.Context, id int64) ([]domain.Staff, error)
}

type Cache interface {
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
	InvalidateAirports(ctx context.Context) error
}

type CreateAirportInput struct {
	Name    string
	City    string
	Country string
}

type AirportService struct {
	repo  repository.AirportRepository
	cache Cache
}

func NewAirportService(repo repository.AirportRepository, cache Cache) *AirportService {
	return &AirportService{repo: repo, cache: cache}
}

func (s *AirportService) List(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetAirports(ctx, airports); err != nil {
			zap.S().Warnw("failed to cache airports", "error", err)
		}
	}
	return airports, nil
}

func (s *AirportService) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	airport, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.NotFound("Airport not found")
		}
		return nil, err
	}
	return airport, nil
}

func validateAirportFields(name, city, country string) error {
	if name == "" {
		return domain.Invalid("Airport name cannot be empty")
	}
	if len(name) > 255 {
		return domain.Invalid("Airport name too long (maximum 255 characters)")
	}
	if city == "" {
		return domain.Invalid("City cannot be empty")
	}
	if len(city) > 100 {
		return domain.Invalid("City name too long (maximum 100 characters)")
	}
	if country == "" {
		return domain.Invalid("Country cannot be empty")
	}
	if len(country) > 100 {
		return domain.Invalid("Country name too long (maximum 100 characters)")
	}
	return nil
}

func (s *AirportService) Create(ctx context.Context, input CreateAirportInput) (*domain.Airport, error) {
	name := strings.TrimSpace(input.Name)
	city := strings.TrimSpace(input.City)
	country := strings.TrimSpace(input.Country)
	if err := validateAirportFields(name, city, country); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameCityExists(ctx, name, city, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("Airport with this name already exists in this city")
	}

	airport := &domain.Airport{Name: name, City: city, Country: country}
	if err := s.repo.Create(ctx, airport); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return airport, nil
}

func (s *AirportService) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return domain.Invalid("No fields to update")
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	name := current.Name
	city := current.City
	country := current.Country
	if v, ok := fields["name"].(string); ok {
		name = strings.TrimSpace(v)
		fields["name"] = name
	}
	if v, ok := fields["city"].(string); ok {
		city = strings.TrimSpace(v)
		fields["city"] = city
	}
	if v, ok := fields["country"].(string); ok {
		country = strings.TrimSpace(v)
		fields["country"] = country
	}
	if err := validateAirportFields(name, city, country); err != nil {
		return err
	}

	exists, err := s.repo.NameCityExists(ctx, name, city, id)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("Airport with this name already exists in this city")
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Airport not found")
		}
		return err
	}

	s.invalidate(ctx)
	return nil
}

// Delete refuses while the airport still has active flights, assigned staff
// or an extensive flight history.
func (s *AirportService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	departures, err := s.repo.ActiveDepartureCount(ctx, id)
	if err != nil {
		return err
	}
	if departures > 0 {
		return domain.Conflictf("Cannot delete airport with %d active departure flights. Cancel or reschedule flights first.", departures)
	}

	arrivals, err := s.repo.ActiveArrivalCount(ctx, id)
	if err != nil {
		return err
	}
	if arrivals > 0 {
		return domain.Conflictf("Cannot delete airport with %d active arrival flights. Cancel or reschedule flights first.", arrivals)
	}

	staff, err := s.repo.StaffCount(ctx, id)
	if err != nil {
		return err
	}
	if staff > 0 {
		return domain.Conflictf("Cannot delete airport with %d staff members. Transfer staff to other airports first.", staff)
	}

	historical, err := s.repo.HistoricalFlightCount(ctx, id)
	if err != nil {
		return err
	}
	if historical > 10 {
		return domain.Conflictf("Cannot delete airport with extensive flight history (%d historical flights). Archive the airport instead.", historical)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Airport not found")
		}
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *AirportService) Departures(ctx context.Context, id int64) ([]domain.Flight, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Departures(ctx, id)
}

func (s *AirportService) Arrivals(ctx context.Context, id int64) ([]domain.Flight, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Arrivals(ctx, id)
}

func (s *AirportService) Staff(ctx context.Context, id int64) ([]domain.Staff, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Staff(ctx, id)
}

func (s *AirportService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAirports(ctx); err != nil {
		zap.S().Warnw("failed to invalidate airports cache", "error", err)
	}
}

var _ AirportUseCase = (*AirportService)(nil)
