package ports

import (
	"context"

	"github.com/matchme/matchme-web/internal/core/domain"
)

// MatchMeAPI is the backend REST API as seen by one client context.
// Everything but Login and Register carries the session's bearer token.
type MatchMeAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Register(ctx context.Context, reg domain.Registration) (string, error)

	User(ctx context.Context) (domain.UserProfile, error)
	EditField(ctx context.Context, field domain.ProfileField, value string) error
	EditCity(ctx context.Context, city domain.City) error

	About(ctx context.Context) (string, error)
	SetAbout(ctx context.Context, about string) error
	Birthday(ctx context.Context) (string, error)
	SetBirthday(ctx context.Context, birthday string) error

	PreferenceCatalog(ctx context.Context) (domain.Catalog, error)
	PreferenceSelection(ctx context.Context) (domain.Selection, error)
	SetPreference(ctx context.Context, cat domain.Category, toggle domain.PreferenceToggle) error

	Weights(ctx context.Context) (domain.Weights, error)
	SetWeight(ctx context.Context, kind domain.WeightKind, value int) error
}
