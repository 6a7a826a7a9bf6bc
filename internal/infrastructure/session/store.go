// Package session keeps the bearer token of each client context.
package session

import (
	"context"
	"fmt"

	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/ports"
)

// TokenKey is the fixed key the token lives under inside a client context.
const TokenKey = "jwt"

// Store is the SessionStore of a single client context.
type Store struct {
	backend  ports.SessionBackend
	clientID string
}

var _ ports.SessionStore = (*Store)(nil)

// NewStore binds backend to the client context clientID.
func NewStore(backend ports.SessionBackend, clientID string) *Store {
	return &Store{backend: backend, clientID: clientID}
}

// ClientID returns the client context this store belongs to.
func (s *Store) ClientID() string { return s.clientID }

// Get returns the stored token. An empty stored value counts as absent.
func (s *Store) Get(ctx context.Context) (string, bool, error) {
	token, found, err := s.backend.Load(ctx, s.key())
	if err != nil {
		return "", false, fmt.Errorf("session get: %w", err)
	}
	if !found || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Set persists token, replacing any previous one.
func (s *Store) Set(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrEmptyToken
	}
	if err := s.backend.Save(ctx, s.key(), token); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (s *Store) key() string {
	return s.clientID + ":" + TokenKey
}
