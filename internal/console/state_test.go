package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// heldSchedule captures the clear callback so the test controls when it
// fires instead of waiting on a real timer.
type heldSchedule struct {
	fn        func()
	cancelled bool
}

func (h *heldSchedule) schedule(d time.Duration, fn func()) func() {
	h.fn = fn
	return func() { h.cancelled = true }
}

func TestPage_Refresh(t *testing.T) {
	calls := 0
	page := NewPage("flights", []Fetcher{
		func(ctx context.Context) error { calls++; return nil },
		func(ctx context.Context) error { calls++; return nil },
	})

	assert.Equal(t, StateIdle, page.State())

	err := page.Refresh(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, StateLoaded, page.State())
	assert.Equal(t, 2, calls)
	assert.Empty(t, page.LoadError())
}

func TestPage_Refresh_StrictFailure(t *testing.T) {
	page := NewPage("flights", []Fetcher{
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return errors.New("network error: connection refused") },
	})

	err := page.Refresh(context.Background())

	assert.Error(t, err)
	assert.Equal(t, StateFailed, page.State())
	assert.Equal(t, "network error: connection refused", page.LoadError())
}

func TestPage_Refresh_LenientFailure(t *testing.T) {
	page := NewPage("analytics", []Fetcher{
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return errors.New("boom") },
	}, Lenient())

	err := page.Refresh(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, StateLoaded, page.State())
}

func TestPage_RunMutation_FailureKeepsDataAndScopesError(t *testing.T) {
	refreshes := 0
	page := NewPage("airlines", []Fetcher{
		func(ctx context.Context) error { refreshes++; return nil },
	})
	assert.NoError(t, page.Refresh(context.Background()))
	refreshes = 0

	err := page.RunMutation(context.Background(), "edit", func(ctx context.Context) (string, error) {
		return "", errors.New("Airline not found")
	})

	assert.Error(t, err)
	assert.Equal(t, StateLoaded, page.State())
	assert.Equal(t, "Airline not found", page.MutationError("edit"))
	assert.Empty(t, page.MutationError("delete"))
	assert.Empty(t, page.Success())
	assert.Zero(t, refreshes)
}

func TestPage_RunMutation_SuccessRefreshesAndClearsError(t *testing.T) {
	refreshes := 0
	held := &heldSchedule{}
	page := NewPage("airlines", []Fetcher{
		func(ctx context.Context) error { refreshes++; return nil },
	}, withSchedule(held.schedule))

	assert.Error(t, page.RunMutation(context.Background(), "edit", func(ctx context.Context) (string, error) {
		return "", errors.New("Airline not found")
	}))

	err := page.RunMutation(context.Background(), "edit", func(ctx context.Context) (string, error) {
		return "Airline updated successfully", nil
	})

	assert.NoError(t, err)
	assert.Empty(t, page.MutationError("edit"))
	assert.Equal(t, "Airline updated successfully", page.Success())
	assert.Equal(t, 1, refreshes)

	held.fn()
	assert.Empty(t, page.Success())
}

func TestPage_RunMutation_DefaultMessage(t *testing.T) {
	held := &heldSchedule{}
	page := NewPage("airlines", nil, withSchedule(held.schedule))

	err := page.RunMutation(context.Background(), "delete", func(ctx context.Context) (string, error) {
		return "", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "Operation completed successfully", page.Success())
}

func TestPage_RunMutation_ReplacesPendingClear(t *testing.T) {
	first := &heldSchedule{}
	page := NewPage("airlines", nil, withSchedule(first.schedule))

	assert.NoError(t, page.RunMutation(context.Background(), "create", func(ctx context.Context) (string, error) {
		return "first", nil
	}))
	assert.NoError(t, page.RunMutation(context.Background(), "create", func(ctx context.Context) (string, error) {
		return "second", nil
	}))

	assert.True(t, first.cancelled)
	assert.Equal(t, "second", page.Success())
}

func TestPage_ClearMutationError(t *testing.T) {
	page := NewPage("airlines", nil)

	assert.Error(t, page.RunMutation(context.Background(), "delete", func(ctx context.Context) (string, error) {
		return "", errors.New("boom")
	}))
	page.ClearMutationError("delete")

	assert.Empty(t, page.MutationError("delete"))
}

func TestPageState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "loaded", StateLoaded.String())
	assert.Equal(t, "failed", StateFailed.String())
}
