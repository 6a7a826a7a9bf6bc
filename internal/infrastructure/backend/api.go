package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/ports"
	"github.com/matchme/matchme-web/internal/pkg/validate"
)

// API is the backend as seen from one client context. Authenticated calls
// read the bearer token from the session store on every call.
type API struct {
	client *Client
	store  ports.SessionStore
}

var _ ports.MatchMeAPI = (*API)(nil)

func NewAPI(client *Client, store ports.SessionStore) *API {
	return &API{client: client, store: store}
}

func (a *API) authed(ctx context.Context, method, path string, body, out any) error {
	token, ok, err := a.store.Get(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNoSession
	}
	return a.client.Do(ctx, Call{Method: method, Path: path, Token: token, Body: body, Out: out})
}

// Login exchanges credentials for a token. A 2xx answer without a token is a
// DecodeError.
func (a *API) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var resp tokenResponse
	err := a.client.Do(ctx, Call{Method: http.MethodPost, Path: PathLogin, Body: creds, Out: &resp})
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &domain.DecodeError{Op: "POST " + PathLogin, Err: domain.ErrMissingToken}
	}
	return resp.Token, nil
}

// Register creates the account. The returned token is empty when the backend
// did not log the new user in.
func (a *API) Register(ctx context.Context, reg domain.Registration) (string, error) {
	var resp tokenResponse
	err := a.client.Do(ctx, Call{Method: http.MethodPost, Path: PathRegister, Body: reg, Out: &resp})
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (a *API) User(ctx context.Context) (domain.UserProfile, error) {
	var u domain.UserProfile
	if err := a.authed(ctx, http.MethodGet, PathUser, nil, &u); err != nil {
		return domain.UserProfile{}, err
	}
	return normalizeUser(u), nil
}

func (a *API) EditField(ctx context.Context, field domain.ProfileField, value string) error {
	path, ok := EditPath(field)
	if !ok || field == domain.FieldCity {
		return fmt.Errorf("edit %q: %w", field, domain.ErrUnknownField)
	}
	return a.authed(ctx, http.MethodPost, path, valueBody{Value: value}, nil)
}

func (a *API) EditCity(ctx context.Context, city domain.City) error {
	path, _ := EditPath(domain.FieldCity)
	return a.authed(ctx, http.MethodPost, path, city, nil)
}

func (a *API) About(ctx context.Context) (string, error) {
	var resp aboutResponse
	if err := a.authed(ctx, http.MethodGet, PathAboutGet, nil, &resp); err != nil {
		return "", err
	}
	return resp.About, nil
}

func (a *API) SetAbout(ctx context.Context, about string) error {
	if err := validate.Struct(domain.AboutDraft{About: about}); err != nil {
		return err
	}
	return a.authed(ctx, http.MethodPost, PathAbout, aboutBody{NewAbout: about}, nil)
}

func (a *API) Birthday(ctx context.Context) (string, error) {
	var resp birthdayResponse
	if err := a.authed(ctx, http.MethodGet, PathBirthdayGet, nil, &resp); err != nil {
		return "", err
	}
	return domain.NormalizeBirthday(resp.Birthday), nil
}

func (a *API) SetBirthday(ctx context.Context, birthday string) error {
	if err := validate.Struct(domain.BirthdayDraft{Birthday: birthday}); err != nil {
		return err
	}
	return a.authed(ctx, http.MethodPost, PathBirthday, birthdayBody{Birthday: birthday}, nil)
}

func (a *API) PreferenceCatalog(ctx context.Context) (domain.Catalog, error) {
	var c domain.Catalog
	if err := a.authed(ctx, http.MethodGet, PathPreferenceCatalog, nil, &c); err != nil {
		return domain.Catalog{}, err
	}
	return c, nil
}

func (a *API) PreferenceSelection(ctx context.Context) (domain.Selection, error) {
	var resp selectionResponse
	if err := a.authed(ctx, http.MethodGet, PathPreferenceSelection, nil, &resp); err != nil {
		return domain.Selection{}, err
	}
	return resp.toDomain(), nil
}

func (a *API) SetPreference(ctx context.Context, cat domain.Category, toggle domain.PreferenceToggle) error {
	path, ok := PreferencePath(cat)
	if !ok {
		return fmt.Errorf("preference %q: %w", cat, domain.ErrUnknownField)
	}
	if toggle.Code == "" {
		return domain.NewValidationError("code", "Code is required")
	}
	return a.authed(ctx, http.MethodPost, path, toggle, nil)
}

func (a *API) Weights(ctx context.Context) (domain.Weights, error) {
	var resp weightsResponse
	if err := a.authed(ctx, http.MethodGet, PathWeights, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// SetWeight sends value as is; values outside [0,10] are rejected before any
// request. Callers clamp user input first.
func (a *API) SetWeight(ctx context.Context, kind domain.WeightKind, value int) error {
	path, ok := WeightPath(kind)
	if !ok {
		return fmt.Errorf("weight %q: %w", kind, domain.ErrUnknownField)
	}
	draft := domain.WeightDraft{Number: value}
	if err := validate.Struct(draft); err != nil {
		return err
	}
	return a.authed(ctx, http.MethodPost, path, draft, nil)
}
