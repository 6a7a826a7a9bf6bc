package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/matchme/matchme-web/internal/apitest"
	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/infrastructure/backend"
	"github.com/matchme/matchme-web/internal/infrastructure/session"
)

// newLoggedInAPI returns an API bound to a session that already holds the
// fake backend's token.
func newLoggedInAPI(t *testing.T) (*backend.API, *apitest.Backend) {
	t.Helper()
	fake := apitest.New(t)
	store := session.NewStore(session.NewMemoryBackend(), "test-client")
	if err := store.Set(context.Background(), fake.Token); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return newAPI(fake, store), fake
}

func newAPI(fake *apitest.Backend, store *session.Store) *backend.API {
	client := backend.NewClient(backend.Config{BaseURL: fake.URL(), Timeout: 2 * time.Second}, zerolog.Nop())
	return backend.NewAPI(client, store)
}

func mustMount(t *testing.T, mount func(context.Context) error) {
	t.Helper()
	if err := mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}
}

func assertState(t *testing.T, got, want domain.PageState) {
	t.Helper()
	if got != want {
		t.Fatalf("expected state %s, got %s", want, got)
	}
}
