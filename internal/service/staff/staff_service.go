package staff

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/kafka"
	"github.com/zvrva/flightops/internal/repository"
	"go.uber.org/zap"
)

type StaffUseCase interface {
	List(ctx context.Context) ([]domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	Create(ctx context.Context, input CreateStaffInput) (*domain.Staff, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Transfer(ctx context.Context, input TransferInput) error
	History(ctx context.Context, staffID int64) ([]domain.TransferRecord, error)
}

type Cache interface {
	InvalidateAirports(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

type CreateStaffInput struct {
	FirstName string
	LastName  string
	Role      string
	AirlineID int64
	AirportID int64
}

type TransferInput struct {
	StaffID      int64
	NewAirportID int64
	Notes        string
}

type StaffService struct {
	repo        repository.StaffRepository
	airports    repository.AirportRepository
	cache       Cache
	producer    Producer
	eventsTopic string
}

func NewStaffService(repo repository.StaffRepository, airports repository.AirportRepository, cache Cache, producer Producer, eventsTopic string) *StaffService {
	return &StaffService{repo: repo, airports: airports, cache: cache, producer: producer, eventsTopic: eventsTopic}
}

func (s *StaffService) List(ctx context.Context) ([]domain.Staff, error) {
	return s.repo.List(ctx)
}

func (s *StaffService) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.NotFound("Staff member not found")
		}
		return nil, err
	}
	return member, nil
}

func validateStaffNames(first, last, role string) error {
	if first == "" {
		return domain.Invalid("First name cannot be empty")
	}
	if len(first) > 100 {
		return domain.Invalid("First name too long (maximum 100 characters)")
	}
	if last == "" {
		return domain.Invalid("Last name cannot be empty")
	}
	if len(last) > 100 {
		return domain.Invalid("Last name too long (maximum 100 characters)")
	}
	if len(role) > 100 {
		return domain.Invalid("Role too long (maximum 100 characters)")
	}
	return nil
}

func (s *StaffService) Create(ctx context.Context, input CreateStaffInput) (*domain.Staff, error) {
	first := strings.TrimSpace(input.FirstName)
	last := strings.TrimSpace(input.LastName)
	role := strings.TrimSpace(input.Role)
	if err := validateStaffNames(first, last, role); err != nil {
		return nil, err
	}
	if input.AirlineID == 0 || input.AirportID == 0 {
		return nil, domain.Invalid("Invalid airline or airport ID format")
	}

	member := &domain.Staff{
		FirstName: first,
		LastName:  last,
		Role:      role,
		AirlineID: input.AirlineID,
		AirportID: input.AirportID,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		if repository.IsForeignKeyViolation(err, "airline") {
			return nil, domain.Invalid("Invalid airline selected")
		}
		if repository.IsForeignKeyViolation(err, "airport") {
			return nil, domain.Invalid("Invalid airport selected")
		}
		return nil, err
	}

	s.invalidate(ctx)
	return member, nil
}

func (s *StaffService) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return domain.Invalid("No fields to update")
	}

	if first, ok := fields["first_name"].(string); ok {
		first = strings.TrimSpace(first)
		if first == "" {
			return domain.Invalid("First name cannot be empty")
		}
		fields["first_name"] = first
	}
	if last, ok := fields["last_name"].(string); ok {
		last = strings.TrimSpace(last)
		if last == "" {
			return domain.Invalid("Last name cannot be empty")
		}
		fields["last_name"] = last
	}
	if role, ok := fields["role"].(string); ok && len(role) > 100 {
		return domain.Invalid("Role too long (maximum 100 characters)")
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Staff member not found")
		}
		if repository.IsForeignKeyViolation(err, "airline") {
			return domain.Invalid("Invalid airline selected")
		}
		return err
	}
	return nil
}

func (s *StaffService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Staff member not found")
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Transfer moves a staff member to another airport, recording the move in
// their history and publishing a staff_transferred event.
func (s *StaffService) Transfer(ctx context.Context, input TransferInput) error {
	if input.StaffID == 0 || input.NewAirportID == 0 {
		return domain.Invalid("Invalid staff ID or airport ID format")
	}
	if len(input.Notes) > 500 {
		return domain.Invalid("Notes too long (maximum 500 characters)")
	}

	member, err := s.GetByID(ctx, input.StaffID)
	if err != nil {
		return err
	}
	if member.AirportID == input.NewAirportID {
		return domain.Conflictf("Staff member is already assigned to this airport (%s)", member.Airport)
	}

	if _, err := s.airports.GetByID(ctx, input.NewAirportID); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Airport not found")
		}
		return err
	}

	if err := s.repo.Transfer(ctx, input.StaffID, input.NewAirportID, input.Notes); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Staff member not found")
		}
		return err
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.Event{
		ID:         uuid.NewString(),
		Type:       kafka.EventStaffTransferred,
		StaffID:    input.StaffID,
		Details:    input.Notes,
		OccurredAt: time.Now(),
	})
	return nil
}

func (s *StaffService) History(ctx context.Context, staffID int64) ([]domain.TransferRecord, error) {
	if _, err := s.GetByID(ctx, staffID); err != nil {
		return nil, err
	}
	return s.repo.History(ctx, staffID)
}

func (s *StaffService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAirports(ctx); err != nil {
		zap.S().Warnw("failed to invalidate airports cache", "error", err)
	}
}

func (s *StaffService) publish(ctx context.Context, event kafka.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, event.ID, event); err != nil {
		zap.S().Warnw("failed to publish event", "type", event.Type, "error", err)
	}
}

var _ StaffUseCase = (*StaffService)(nil)
