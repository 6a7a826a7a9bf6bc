package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/matchme/matchme-web/internal/api/metrics"
	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/ports"
	"github.com/matchme/matchme-web/internal/pkg/validate"
)

// ProfileInput is one text input of the profile page.
type ProfileInput struct {
	Field domain.ProfileField
	Value string
	Dirty bool
	Error string
}

// ProfileView is the profile page as rendered. Passwords are never echoed.
type ProfileView struct {
	Status
	Inputs          []ProfileInput
	City            domain.City
	CityDirty       bool
	PasswordPending bool
	FieldErrors     map[domain.ProfileField]string
}

// ProfilePage edits the profile one field at a time. SaveAll writes every
// dirty field concurrently.
type ProfilePage struct {
	page
	api   ports.MatchMeAPI
	saved domain.UserProfile

	drafts   map[domain.ProfileField]string
	password *domain.PasswordChange
	city     *domain.City

	fieldErrors map[domain.ProfileField]string
}

func NewProfilePage(api ports.MatchMeAPI, logger zerolog.Logger) *ProfilePage {
	p := &ProfilePage{
		api:         api,
		drafts:      make(map[domain.ProfileField]string),
		fieldErrors: make(map[domain.ProfileField]string),
	}
	p.init("profile", logger)
	return p
}

func (p *ProfilePage) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mount(ctx, func(ctx context.Context) error {
		u, err := p.api.User(ctx)
		if err != nil {
			return err
		}
		p.saved = u
		p.drafts = make(map[domain.ProfileField]string)
		p.password, p.city = nil, nil
		p.fieldErrors = make(map[domain.ProfileField]string)
		return nil
	})
}

// Edit changes the draft of a text field. Password and city have their own
// editors.
func (p *ProfilePage) Edit(field domain.ProfileField, value string) error {
	if field == domain.FieldPassword || field == domain.FieldCity {
		return domain.ErrUnknownField
	}
	if _, ok := domain.ParseProfileField(string(field)); !ok {
		return domain.ErrUnknownField
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.edit(); err != nil {
		return err
	}
	p.drafts[field] = value
	return nil
}

func (p *ProfilePage) EditPassword(password, confirm string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.edit(); err != nil {
		return err
	}
	p.password = &domain.PasswordChange{Password: password, ConfirmPassword: confirm}
	return nil
}

func (p *ProfilePage) EditCity(city domain.City) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.edit(); err != nil {
		return err
	}
	p.city = &city
	return nil
}

// Save writes a single field. Fields without a draft are left alone.
func (p *ProfilePage) Save(ctx context.Context, field domain.ProfileField) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.hasDraft(field) {
		return nil
	}
	check, write, adopt := p.plan(field)
	err := p.save(ctx, string(field), check, write, adopt, "Profile updated successfully!")
	if err != nil {
		p.fieldErrors[field] = domain.UserMessage(err)
	} else {
		delete(p.fieldErrors, field)
	}
	return err
}

// SaveAll validates every dirty field, then writes them concurrently. A
// single validation failure blocks all writes. Failed fields keep their
// drafts; the returned map holds one error per failed field.
func (p *ProfilePage) SaveAll(ctx context.Context) (map[domain.ProfileField]error, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	type step struct {
		field domain.ProfileField
		write func(context.Context) error
		adopt func()
	}

	var steps []step
	for _, f := range p.dirtyFields() {
		check, write, adopt := p.plan(f)
		if err := check(); err != nil {
			p.fail(err)
			p.fieldErrors[f] = domain.UserMessage(err)
			metrics.PageSavesTotal.WithLabelValues(p.name, string(f), "invalid").Inc()
			return map[domain.ProfileField]error{f: err}, err
		}
		steps = append(steps, step{field: f, write: write, adopt: adopt})
	}
	if len(steps) == 0 {
		return nil, nil
	}

	if err := p.moveTo(domain.PageSaving); err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		failed = make(map[domain.ProfileField]error)
	)
	var g errgroup.Group
	for _, s := range steps {
		s := s
		g.Go(func() error {
			if err := s.write(ctx); err != nil {
				mu.Lock()
				failed[s.field] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, s := range steps {
		if err, ok := failed[s.field]; ok {
			p.fieldErrors[s.field] = domain.UserMessage(err)
			metrics.PageSavesTotal.WithLabelValues(p.name, string(s.field), "error").Inc()
			errs = append(errs, err)
			continue
		}
		s.adopt()
		delete(p.fieldErrors, s.field)
		metrics.PageSavesTotal.WithLabelValues(p.name, string(s.field), "ok").Inc()
	}

	if len(errs) > 0 {
		_ = p.moveTo(domain.PageSaveFailed)
		err := errors.Join(errs...)
		p.fail(errs[0])
		p.logger.Warn().Err(err).Int("failed", len(errs)).Msg("profile save all failed")
		return failed, err
	}
	_ = p.moveTo(domain.PageLoaded)
	p.succeed("All changes saved!")
	return nil, nil
}

func (p *ProfilePage) hasDraft(field domain.ProfileField) bool {
	switch field {
	case domain.FieldPassword:
		return p.password != nil
	case domain.FieldCity:
		return p.city != nil
	}
	_, ok := p.drafts[field]
	return ok
}

func (p *ProfilePage) dirtyFields() []domain.ProfileField {
	var out []domain.ProfileField
	for _, f := range domain.TextFields {
		if p.hasDraft(f) {
			out = append(out, f)
		}
	}
	if p.hasDraft(domain.FieldCity) {
		out = append(out, domain.FieldCity)
	}
	return out
}

// plan returns the check, write and adopt steps of field. The caller holds mu.
func (p *ProfilePage) plan(field domain.ProfileField) (func() error, func(context.Context) error, func()) {
	switch field {
	case domain.FieldPassword:
		change := *p.password
		return func() error { return validate.Struct(change) },
			func(ctx context.Context) error { return p.api.EditField(ctx, domain.FieldPassword, change.Password) },
			func() { p.password = nil }

	case domain.FieldCity:
		city := *p.city
		return func() error {
				return validate.Struct(domain.CityDraft{Name: city.Name, Latitude: city.Latitude, Longitude: city.Longitude})
			},
			func(ctx context.Context) error { return p.api.EditCity(ctx, city) },
			func() {
				p.saved.City, p.saved.Latitude, p.saved.Longitude = city.Name, city.Latitude, city.Longitude
				p.city = nil
			}
	}

	value := p.drafts[field]
	return func() error { return validate.Var(string(field), value, domain.FieldRules[field]) },
		func(ctx context.Context) error { return p.api.EditField(ctx, field, value) },
		func() {
			p.saved = p.saved.WithText(field, value)
			delete(p.drafts, field)
		}
}

func (p *ProfilePage) View() ProfileView {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := ProfileView{
		Status:          p.status,
		City:            domain.City{Name: p.saved.City, Latitude: p.saved.Latitude, Longitude: p.saved.Longitude},
		PasswordPending: p.password != nil,
		FieldErrors:     make(map[domain.ProfileField]string, len(p.fieldErrors)),
	}
	for _, f := range domain.TextFields {
		if f == domain.FieldPassword {
			continue
		}
		in := ProfileInput{Field: f, Value: p.saved.Text(f), Error: p.fieldErrors[f]}
		if d, ok := p.drafts[f]; ok {
			in.Value, in.Dirty = d, true
		}
		v.Inputs = append(v.Inputs, in)
	}
	if p.city != nil {
		v.City, v.CityDirty = *p.city, true
	}
	for f, msg := range p.fieldErrors {
		v.FieldErrors[f] = msg
	}
	return v
}
