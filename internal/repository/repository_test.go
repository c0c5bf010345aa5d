package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewFlightRepository(pool))
	assert.NotNil(t, NewPassengerRepository(pool))
	assert.NotNil(t, NewBookingRepository(pool))
	assert.NotNil(t, NewAirlineRepository(pool))
	assert.NotNil(t, NewAirportRepository(pool))
	assert.NotNil(t, NewStaffRepository(pool))
	assert.NotNil(t, NewAnalyticsRepository(pool))
}

func TestIsUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "ux_booking_flight_seat"}

	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "ux_booking_flight_seat"))
	assert.False(t, IsUniqueViolation(err, "ux_passenger_email"))
	assert.False(t, IsUniqueViolation(errors.New("plain error"), ""))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "flights_airline_id_fkey"}

	assert.True(t, IsForeignKeyViolation(err, ""))
	assert.True(t, IsForeignKeyViolation(err, "airline"))
	assert.False(t, IsForeignKeyViolation(err, "airport"))
	assert.False(t, IsForeignKeyViolation(errors.New("plain error"), "airline"))
}

func TestSetClause(t *testing.T) {
	allowed := map[string]string{"name": "name", "city": "city", "country": "country"}
	order := []string{"name", "city", "country"}

	t.Run("only requested fields in fixed order", func(t *testing.T) {
		clause, args := setClause(map[string]any{"country": "NL", "name": "Schiphol"}, allowed, order)
		assert.Equal(t, "name=$1, country=$2", clause)
		assert.Equal(t, []any{"Schiphol", "NL"}, args)
	})

	t.Run("unknown keys are skipped", func(t *testing.T) {
		clause, args := setClause(map[string]any{"id": 7, "city": "Oslo"}, allowed, order)
		assert.Equal(t, "city=$1", clause)
		assert.Equal(t, []any{"Oslo"}, args)
	})

	t.Run("empty input yields empty clause", func(t *testing.T) {
		clause, args := setClause(map[string]any{}, allowed, order)
		assert.Empty(t, clause)
		assert.Empty(t, args)
	})
}
