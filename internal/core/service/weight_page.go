package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/ports"
	"github.com/matchme/matchme-web/internal/pkg/validate"
)

// WeightSlider is one weight input.
type WeightSlider struct {
	Kind  domain.WeightKind
	Saved int
	// Value is the draft when there is one, otherwise the saved value.
	Value int
	Dirty bool
}

// WeightView is the weights page as rendered.
type WeightView struct {
	Status
	Sliders []WeightSlider
	Min     int
	Max     int
}

// WeightPage edits the five matching weights, each saved on its own.
type WeightPage struct {
	page
	api    ports.MatchMeAPI
	saved  domain.Weights
	drafts domain.Weights
}

func NewWeightPage(api ports.MatchMeAPI, logger zerolog.Logger) *WeightPage {
	p := &WeightPage{api: api, saved: domain.Weights{}, drafts: domain.Weights{}}
	p.init("weight", logger)
	return p
}

func (p *WeightPage) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mount(ctx, func(ctx context.Context) error {
		w, err := p.api.Weights(ctx)
		if err != nil {
			return err
		}
		p.saved = w
		p.drafts = domain.Weights{}
		return nil
	})
}

// Edit stores raw as the draft of kind. Input is clamped to [0,10] and
// anything non-numeric counts as 0.
func (p *WeightPage) Edit(kind domain.WeightKind, raw string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.edit(); err != nil {
		return err
	}
	p.drafts[kind] = domain.ParseWeight(raw)
	return nil
}

// Save sends the draft of kind. The saved value only changes on success.
func (p *WeightPage) Save(ctx context.Context, kind domain.WeightKind) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	value, ok := p.drafts[kind]
	if !ok {
		return nil
	}
	return p.save(ctx, string(kind),
		func() error { return validate.Struct(domain.WeightDraft{Number: value}) },
		func(ctx context.Context) error { return p.api.SetWeight(ctx, kind, value) },
		func() {
			p.saved[kind] = value
			delete(p.drafts, kind)
		},
		"Weight updated successfully!",
	)
}

func (p *WeightPage) View() WeightView {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := WeightView{Status: p.status, Min: domain.MinWeight, Max: domain.MaxWeight}
	for _, k := range domain.WeightKinds {
		s := WeightSlider{Kind: k, Saved: p.saved[k], Value: p.saved[k]}
		if d, ok := p.drafts[k]; ok {
			s.Value, s.Dirty = d, true
		}
		v.Sliders = append(v.Sliders, s)
	}
	return v
}
