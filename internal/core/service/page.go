package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/matchme/matchme-web/internal/api/metrics"
	"github.com/matchme/matchme-web/internal/core/domain"
)

// Status is what every page shows besides its data.
type Status struct {
	State domain.PageState
	// Message is the inline error of the last failed action.
	Message string
	// Field names the input a validation message belongs to.
	Field string
	// Notice confirms the last successful save.
	Notice string
}

// Failed reports whether an error message is shown.
func (s Status) Failed() bool { return s.Message != "" }

// page carries the state machine shared by all page controllers. Every
// exported controller method holds mu for its whole duration, so a page
// never runs two actions at once.
type page struct {
	mu     sync.Mutex
	name   string
	status Status
	logger zerolog.Logger
}

func (p *page) init(name string, logger zerolog.Logger) {
	p.name = name
	p.status = Status{State: domain.PageIdle}
	p.logger = logger.With().Str("page", name).Logger()
}

func (p *page) moveTo(next domain.PageState) error {
	if !p.status.State.CanTransitionTo(next) {
		return fmt.Errorf("%s page: %w: %s -> %s", p.name, domain.ErrInvalidTransition, p.status.State, next)
	}
	p.status.State = next
	return nil
}

func (p *page) fail(err error) {
	p.status.Message = domain.UserMessage(err)
	p.status.Notice = ""
	p.status.Field = ""
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		p.status.Field = ve.Field
	}
}

func (p *page) succeed(notice string) {
	p.status.Message = ""
	p.status.Field = ""
	p.status.Notice = notice
}

// mount runs fetch between Fetching and Loaded or FetchFailed.
func (p *page) mount(ctx context.Context, fetch func(context.Context) error) error {
	if err := p.moveTo(domain.PageFetching); err != nil {
		return err
	}
	if err := fetch(ctx); err != nil {
		_ = p.moveTo(domain.PageFetchFailed)
		p.fail(err)
		p.logger.Warn().Err(err).Msg("page fetch failed")
		return err
	}
	_ = p.moveTo(domain.PageLoaded)
	p.succeed("")
	return nil
}

// edit records that a draft changed.
func (p *page) edit() error {
	if p.status.State == domain.PageDirty {
		return nil
	}
	return p.moveTo(domain.PageDirty)
}

// save runs check, then write between Saving and Loaded or SaveFailed.
// A failed check leaves the state untouched and write is never called.
// adopt runs only after a successful write.
func (p *page) save(ctx context.Context, field string, check func() error, write func(context.Context) error, adopt func(), notice string) error {
	if err := check(); err != nil {
		p.fail(err)
		metrics.PageSavesTotal.WithLabelValues(p.name, field, "invalid").Inc()
		return err
	}
	if err := p.moveTo(domain.PageSaving); err != nil {
		return err
	}
	if err := write(ctx); err != nil {
		_ = p.moveTo(domain.PageSaveFailed)
		p.fail(err)
		metrics.PageSavesTotal.WithLabelValues(p.name, field, "error").Inc()
		p.logger.Warn().Err(err).Str("field", field).Msg("page save failed")
		return err
	}
	_ = p.moveTo(domain.PageLoaded)
	adopt()
	p.succeed(notice)
	metrics.PageSavesTotal.WithLabelValues(p.name, field, "ok").Inc()
	return nil
}

// State returns the current state of the page.
func (p *page) State() domain.PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status.State
}

// NeedsMount reports whether the page has no usable data yet.
func (p *page) NeedsMount() bool {
	s := p.State()
	return s == domain.PageIdle || s == domain.PageFetchFailed
}
