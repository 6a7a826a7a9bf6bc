package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/matchme/matchme-web/internal/api/metrics"
	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/ports"
	"github.com/matchme/matchme-web/internal/pkg/validate"
)

// AuthService obtains tokens from the backend and keeps them in the caller's
// session store.
type AuthService struct {
	logger zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(logger zerolog.Logger) *AuthService {
	return &AuthService{logger: logger}
}

// Login validates creds, exchanges them for a token and stores it.
func (s *AuthService) Login(ctx context.Context, api ports.MatchMeAPI, store ports.SessionStore, creds domain.Credentials) error {
	if err := validate.Struct(creds); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return err
	}

	token, err := api.Login(ctx, creds)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		s.logger.Info().Err(err).Str("username", creds.Username).Msg("login rejected")
		return err
	}

	if err := store.Set(ctx, token); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return fmt.Errorf("login: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
	s.logger.Info().Str("username", creds.Username).Msg("login succeeded")
	return nil
}

// Register creates the account. When the backend answers with a token the
// new user is logged in and loggedIn is true; otherwise the user has to log
// in explicitly.
func (s *AuthService) Register(ctx context.Context, api ports.MatchMeAPI, store ports.SessionStore, reg domain.Registration) (bool, error) {
	if err := validate.Struct(reg); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return false, err
	}

	token, err := api.Register(ctx, reg)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		s.logger.Info().Err(err).Str("username", reg.Username).Msg("registration rejected")
		return false, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()
	if token == "" {
		s.logger.Info().Str("username", reg.Username).Msg("registered without token")
		return false, nil
	}

	if err := store.Set(ctx, token); err != nil {
		return false, fmt.Errorf("register: %w", err)
	}
	s.logger.Info().Str("username", reg.Username).Msg("registered and logged in")
	return true, nil
}

// IsAuthenticated reports whether store holds a token. Presence alone counts;
// expiry is not checked.
func (s *AuthService) IsAuthenticated(ctx context.Context, store ports.SessionStore) (bool, error) {
	_, ok, err := store.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("is authenticated: %w", err)
	}
	return ok, nil
}

// IsValidation reports whether err was raised client side before any request.
func IsValidation(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}
