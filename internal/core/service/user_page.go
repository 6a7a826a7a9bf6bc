package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/ports"
)

// UserView is the read-only landing page after login.
type UserView struct {
	Status
	User domain.UserProfile
}

// UserPage shows the logged-in user.
type UserPage struct {
	page
	api  ports.MatchMeAPI
	user domain.UserProfile
}

func NewUserPage(api ports.MatchMeAPI, logger zerolog.Logger) *UserPage {
	p := &UserPage{api: api}
	p.init("user", logger)
	return p
}

// Mount fetches the user.
func (p *UserPage) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mount(ctx, func(ctx context.Context) error {
		u, err := p.api.User(ctx)
		if err != nil {
			return err
		}
		p.user = u
		return nil
	})
}

func (p *UserPage) View() UserView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return UserView{Status: p.status, User: p.user}
}
