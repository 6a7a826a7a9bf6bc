package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/ports"
)

// PreferenceOption is one checkbox.
type PreferenceOption struct {
	domain.Option
	Checked bool
}

// PreferenceGroup is the checkbox list of one category.
type PreferenceGroup struct {
	Category domain.Category
	Options  []PreferenceOption
}

// PreferenceView is the preferences page as rendered.
type PreferenceView struct {
	Status
	Groups []PreferenceGroup
}

// PreferencePage toggles preference codes. Every toggle is written at once;
// there is no separate save step.
type PreferencePage struct {
	page
	api       ports.MatchMeAPI
	catalog   domain.Catalog
	selection domain.Selection
}

func NewPreferencePage(api ports.MatchMeAPI, logger zerolog.Logger) *PreferencePage {
	p := &PreferencePage{api: api}
	p.init("preference", logger)
	return p
}

// Mount fetches the catalog and the current selection concurrently.
func (p *PreferencePage) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mount(ctx, func(ctx context.Context) error {
		var (
			catalog   domain.Catalog
			selection domain.Selection
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			catalog, err = p.api.PreferenceCatalog(gctx)
			return err
		})
		g.Go(func() (err error) {
			selection, err = p.api.PreferenceSelection(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}
		p.catalog, p.selection = catalog, selection
		return nil
	})
}

// Toggle flips code in cat. The write carries isUnchecked, the inverse of
// the new checkbox state. The selection changes only once the write succeeds.
func (p *PreferencePage) Toggle(ctx context.Context, cat domain.Category, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	checked := !p.selection.Has(cat, code)
	return p.save(ctx, string(cat),
		func() error {
			if !p.catalog.Has(cat, code) {
				return domain.NewValidationError(string(cat), fmt.Sprintf("Unknown %s preference %q", cat, code))
			}
			return nil
		},
		func(ctx context.Context) error {
			return p.api.SetPreference(ctx, cat, domain.PreferenceToggle{Code: code, IsUnchecked: !checked})
		},
		func() { p.selection = p.selection.With(cat, code, checked) },
		"",
	)
}

func (p *PreferencePage) View() PreferenceView {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := PreferenceView{Status: p.status}
	for _, cat := range domain.Categories {
		g := PreferenceGroup{Category: cat}
		for _, o := range p.catalog.Options(cat) {
			g.Options = append(g.Options, PreferenceOption{Option: o, Checked: p.selection.Has(cat, o.Code)})
		}
		v.Groups = append(v.Groups, g)
	}
	return v
}
