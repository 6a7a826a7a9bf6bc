package ports

import (
	"context"

	"github.com/matchme/matchme-web/internal/core/domain"
)

// AuthService obtains tokens from the backend and keeps them in a SessionStore.
type AuthService interface {
	Login(ctx context.Context, api MatchMeAPI, store SessionStore, creds domain.Credentials) error
	Register(ctx context.Context, api MatchMeAPI, store SessionStore, reg domain.Registration) (loggedIn bool, err error)
	IsAuthenticated(ctx context.Context, store SessionStore) (bool, error)
}
