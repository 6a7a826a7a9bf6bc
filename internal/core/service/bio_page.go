package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/ports"
	"github.com/matchme/matchme-web/internal/pkg/validate"
)

// BioView is the biography page as rendered.
type BioView struct {
	Status
	About    string
	Birthday string
	// Age is derived from the saved birthday; -1 when unknown.
	Age       int
	MaxLength int
}

// BioPage edits the about text and the birthday. The two are saved
// separately.
type BioPage struct {
	page
	api ports.MatchMeAPI
	now func() time.Time

	saved         domain.Biography
	aboutDraft    *string
	birthdayDraft *string
}

func NewBioPage(api ports.MatchMeAPI, logger zerolog.Logger) *BioPage {
	p := &BioPage{api: api, now: time.Now}
	p.init("bio", logger)
	return p
}

// Mount fetches the about text and the birthday concurrently.
func (p *BioPage) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mount(ctx, func(ctx context.Context) error {
		var bio domain.Biography
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			about, err := p.api.About(gctx)
			bio.About = about
			return err
		})
		g.Go(func() error {
			birthday, err := p.api.Birthday(gctx)
			bio.Birthday = birthday
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}
		p.saved = bio
		p.aboutDraft, p.birthdayDraft = nil, nil
		return nil
	})
}

func (p *BioPage) EditAbout(about string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.edit(); err != nil {
		return err
	}
	p.aboutDraft = &about
	return nil
}

func (p *BioPage) EditBirthday(birthday string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.edit(); err != nil {
		return err
	}
	p.birthdayDraft = &birthday
	return nil
}

// SaveAbout sends the about draft. Nothing is sent when there is no draft.
func (p *BioPage) SaveAbout(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.aboutDraft == nil {
		return nil
	}
	about := *p.aboutDraft
	return p.save(ctx, "about",
		func() error { return validate.Struct(domain.AboutDraft{About: about}) },
		func(ctx context.Context) error { return p.api.SetAbout(ctx, about) },
		func() {
			p.saved.About = about
			p.aboutDraft = nil
		},
		"Biography updated successfully!",
	)
}

// SaveBirthday sends the birthday draft. An empty birthday is rejected.
func (p *BioPage) SaveBirthday(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	birthday := ""
	if p.birthdayDraft != nil {
		birthday = *p.birthdayDraft
	}
	return p.save(ctx, "birthday",
		func() error { return validate.Struct(domain.BirthdayDraft{Birthday: birthday}) },
		func(ctx context.Context) error { return p.api.SetBirthday(ctx, birthday) },
		func() {
			p.saved.Birthday = birthday
			p.birthdayDraft = nil
		},
		"Birthday updated successfully!",
	)
}

func (p *BioPage) View() BioView {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := BioView{
		Status:    p.status,
		About:     p.saved.About,
		Birthday:  p.saved.Birthday,
		Age:       domain.AgeOn(p.saved.Birthday, p.now()),
		MaxLength: domain.MaxAboutLength,
	}
	if p.aboutDraft != nil {
		v.About = *p.aboutDraft
	}
	if p.birthdayDraft != nil {
		v.Birthday = *p.birthdayDraft
	}
	return v
}
