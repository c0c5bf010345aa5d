package console

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PageState int

const (
	StateIdle PageState = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s PageState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Fetcher loads one collection the page depends on.
type Fetcher func(ctx context.Context) error

// scheduleFunc runs fn after d and returns a cancel function. Production
// uses time.AfterFunc; tests inject a synchronous variant.
type scheduleFunc func(d time.Duration, fn func()) (cancel func())

func afterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Page drives the refresh-after-mutation protocol for one console page.
// Mutations never patch local state; any successful write re-runs every
// fetcher so displayed data always matches server truth.
type Page struct {
	mu sync.Mutex

	name     string
	fetchers []Fetcher
	lenient  bool

	state        PageState
	loadErr      string
	mutationErrs map[string]string
	success      string

	successTTL  time.Duration
	schedule    scheduleFunc
	cancelClear func()
}

type PageOption func(*Page)

// Lenient makes a failed sub-fetch non-fatal: the collection stays empty
// and the cycle still completes.
func Lenient() PageOption {
	return func(p *Page) { p.lenient = true }
}

func WithSuccessTTL(d time.Duration) PageOption {
	return func(p *Page) { p.successTTL = d }
}

func withSchedule(s scheduleFunc) PageOption {
	return func(p *Page) { p.schedule = s }
}

func NewPage(name string, fetchers []Fetcher, opts ...PageOption) *Page {
	p := &Page{
		name:         name,
		fetchers:     fetchers,
		state:        StateIdle,
		mutationErrs: make(map[string]string),
		successTTL:   5 * time.Second,
		schedule:     afterFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Page) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Page) LoadError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

// MutationError returns the error scoped to one operation key, so a failed
// edit does not blank out a separately-displayed delete error.
func (p *Page) MutationError(key string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mutationErrs[key]
}

func (p *Page) Success() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.success
}

// Refresh runs every fetcher concurrently. In strict mode any failure
// fails the whole cycle; in lenient mode failed sub-fetches are logged and
// the page still reaches Loaded.
func (p *Page) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.state = StateLoading
	p.loadErr = ""
	p.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, fetch := range p.fetchers {
		fetch := fetch
		g.Go(func() error {
			err := fetch(gctx)
			if err != nil && p.lenient {
				zap.S().Warnw("sub-fetch failed", "page", p.name, "error", err)
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		p.mu.Lock()
		p.state = StateFailed
		p.loadErr = err.Error()
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.state = StateLoaded
	p.mu.Unlock()
	return nil
}

// RunMutation executes one write operation scoped to key. On failure the
// page keeps its current data and stores the error under key; on success
// the error is cleared, the success message is set with its auto-clear
// timer, and every collection is re-fetched.
func (p *Page) RunMutation(ctx context.Context, key string, op func(ctx context.Context) (string, error)) error {
	message, err := op(ctx)
	if err != nil {
		p.mu.Lock()
		p.mutationErrs[key] = err.Error()
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	delete(p.mutationErrs, key)
	if message == "" {
		message = "Operation completed successfully"
	}
	p.success = message
	if p.cancelClear != nil {
		p.cancelClear()
	}
	p.cancelClear = p.schedule(p.successTTL, func() {
		p.mu.Lock()
		p.success = ""
		p.mu.Unlock()
	})
	p.mu.Unlock()

	return p.Refresh(ctx)
}

// ClearMutationError dismisses the error shown for one operation key.
func (p *Page) ClearMutationError(key string) {
	p.mu.Lock()
	delete(p.mutationErrs, key)
	p.mu.Unlock()
}
