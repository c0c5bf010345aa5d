package airlines

import (
	"context"
	"regexp"
	"strings"

	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/repository"
)

type AirlineUseCase interface {
	List(ctx context.Context) ([]domain.Airline, error)
	GetByID(ctx context.Context, id int64) (*domain.Airline, error)
	Create(ctx context.Context, input CreateAirlineInput) (*domain.Airline, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Flights(ctx context.Context, id int64) ([]domain.Flight, error)
	Staff(ctx context.Context, id int64) ([]domain.Staff, error)
}

type CreateAirlineInput struct {
	Name        string
	ContactInfo string
}

type AirlineService struct {
	repo repository.AirlineRepository
}

func NewAirlineService(repo repository.AirlineRepository) *AirlineService {
	return &AirlineService{repo: repo}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// validateContactInfo allows an empty contact but insists a provided one is
// an email address.
func validateContactInfo(contact string) error {
	if contact != "" && !emailPattern.MatchString(contact) {
		return domain.Invalid("Invalid email format")
	}
	return nil
}

func (s *AirlineService) List(ctx context.Context) ([]domain.Airline, error) {
	return s.repo.List(ctx)
}

func (s *AirlineService) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	airline, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.NotFound("Airline not found")
		}
		return nil, err
	}
	return airline, nil
}

func (s *AirlineService) Create(ctx context.Context, input CreateAirlineInput) (*domain.Airline, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.Invalid("Airline name cannot be empty")
	}
	contact := strings.TrimSpace(input.ContactInfo)
	if err := validateContactInfo(contact); err != nil {
		return nil, err
	}

	taken, err := s.repo.NameExists(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflict("Airline name already exists")
	}

	airline := &domain.Airline{Name: name, ContactInfo: contact}
	if err := s.repo.Create(ctx, airline); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, domain.Conflict("Airline name already exists")
		}
		return nil, err
	}
	return airline, nil
}

func (s *AirlineService) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return domain.Invalid("No fields to update")
	}

	if name, ok := fields["name"].(string); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return domain.Invalid("Airline name cannot be empty")
		}
		taken, err := s.repo.NameExists(ctx, name, id)
		if err != nil {
			return err
		}
		if taken {
			return domain.Conflict("Airline name already exists")
		}
		fields["name"] = name
	}

	if contact, ok := fields["contact_info"].(string); ok {
		contact = strings.TrimSpace(contact)
		if err := validateContactInfo(contact); err != nil {
			return err
		}
		fields["contact_info"] = contact
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Airline not found")
		}
		return err
	}
	return nil
}

func (s *AirlineService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	flights, err := s.repo.FlightCount(ctx, id)
	if err != nil {
		return err
	}
	if flights > 0 {
		return domain.Conflictf("Cannot delete airline with %d existing flights. Delete or reassign flights first.", flights)
	}

	staff, err := s.repo.StaffCount(ctx, id)
	if err != nil {
		return err
	}
	if staff > 0 {
		return domain.Conflictf("Cannot delete airline with %d existing staff members. Reassign staff first.", staff)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Airline not found")
		}
		return err
	}
	return nil
}

func (s *AirlineService) Flights(ctx context.Context, id int64) ([]domain.Flight, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Flights(ctx, id)
}

func (s *AirlineService) Staff(ctx context.Context, id int64) ([]domain.Staff, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Staff(ctx, id)
}

var _ AirlineUseCase = (*AirlineService)(nil)
