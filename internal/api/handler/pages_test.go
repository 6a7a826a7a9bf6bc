package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/core/domain"
)

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != code {
		t.Fatalf("expected %d HTTPError, got %v", code, err)
	}
}

func TestUserHandler_Show(t *testing.T) {
	h := newHarness(t).loggedIn(t)

	rec := h.serve(t, http.MethodGet, "/user", nil, NewUserHandler(h.env).Show)

	assertCode(t, rec, http.StatusOK)
	assertBody(t, rec, "Ada Lovelace", "London")
	if strings.Contains(rec.Body.String(), "(N/A)") {
		t.Fatalf("placeholder middle name must not be shown")
	}
}

func TestUserHandler_Show_BackendFailure(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	h.fake.Respond(http.MethodGet, "/api/user", http.StatusInternalServerError, "database unavailable")

	rec := h.serve(t, http.MethodGet, "/user", nil, NewUserHandler(h.env).Show)

	assertCode(t, rec, http.StatusBadGateway)
	assertBody(t, rec, "database unavailable")
}

func TestUserHandler_Show_SessionLost(t *testing.T) {
	h := newHarness(t)

	rec := h.serve(t, http.MethodGet, "/user", nil, NewUserHandler(h.env).Show)

	assertCode(t, rec, http.StatusUnauthorized)
	assertBody(t, rec, "Your session has ended. Please log in again.")
	if n := len(h.fake.Requests()); n != 0 {
		t.Fatalf("expected no backend call, got %d", n)
	}
}

func TestBioHandler_SaveAbout(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewBioHandler(h.env)

	rec := h.serve(t, http.MethodPost, "/bioedit/about", url.Values{"about": {"Poetical science."}}, handler.SaveAbout)

	assertCode(t, rec, http.StatusOK)
	assertBody(t, rec, "Biography updated successfully!", "Poetical science.")
	if got := h.fake.About(); got != "Poetical science." {
		t.Fatalf("backend about not updated: %q", got)
	}
}

func TestBioHandler_SaveAbout_TooLong(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewBioHandler(h.env)

	long := strings.Repeat("a", domain.MaxAboutLength+1)
	rec := h.serve(t, http.MethodPost, "/bioedit/about", url.Values{"about": {long}}, handler.SaveAbout)

	assertCode(t, rec, http.StatusUnprocessableEntity)
	assertBody(t, rec, "exceeds the 10000 character limit")
	if n := h.fake.Writes(); n != 0 {
		t.Fatalf("expected no write, got %d", n)
	}
}

func TestBioHandler_SaveBirthday(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewBioHandler(h.env)

	rec := h.serve(t, http.MethodPost, "/bioedit/birthday", url.Values{"birthday": {"1815-12-10"}}, handler.SaveBirthday)

	assertCode(t, rec, http.StatusOK)
	assertBody(t, rec, "Birthday updated successfully!", `value="1815-12-10"`)
	if got := h.fake.Birthday(); got != "1815-12-10" {
		t.Fatalf("backend birthday not updated: %q", got)
	}
}

func TestBioHandler_SaveBirthday_Empty(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewBioHandler(h.env)

	rec := h.serve(t, http.MethodPost, "/bioedit/birthday", url.Values{"birthday": {""}}, handler.SaveBirthday)

	assertCode(t, rec, http.StatusUnprocessableEntity)
	if n := h.fake.Writes(); n != 0 {
		t.Fatalf("expected no write, got %d", n)
	}
}

func TestPreferenceHandler_Toggle(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewPreferenceHandler(h.env)

	rec := h.serve(t, http.MethodPost, "/preferenceedit/food/f2", url.Values{}, handler.Toggle, "category", "food", "code", "f2")

	assertCode(t, rec, http.StatusOK)
	assertBody(t, rec, `aria-pressed="true">☑ Sushi`)
	if !h.fake.Selection().Has(domain.CategoryFood, "f2") {
		t.Fatalf("expected f2 to be selected")
	}

	calls := h.fake.Calls(http.MethodPost, "/pref/food")
	if len(calls) != 1 {
		t.Fatalf("expected one toggle, got %d", len(calls))
	}
	var body domain.PreferenceToggle
	if err := calls[0].Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "f2" || body.IsUnchecked {
		t.Fatalf("unexpected toggle body %+v", body)
	}
}

func TestPreferenceHandler_Toggle_Uncheck(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewPreferenceHandler(h.env)

	rec := h.serve(t, http.MethodPost, "/preferenceedit/music/m2", url.Values{}, handler.Toggle, "category", "music", "code", "m2")

	assertCode(t, rec, http.StatusOK)
	if h.fake.Selection().Has(domain.CategoryMusic, "m2") {
		t.Fatalf("expected m2 to be removed")
	}
}

func TestPreferenceHandler_Toggle_Invalid(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewPreferenceHandler(h.env)

	_, err := h.try(t, http.MethodPost, "/preferenceedit/films/x", url.Values{}, handler.Toggle, "category", "films", "code", "x")
	assertHTTPError(t, err, http.StatusNotFound)

	rec := h.serve(t, http.MethodPost, "/preferenceedit/food/zz", url.Values{}, handler.Toggle, "category", "food", "code", "zz")
	assertCode(t, rec, http.StatusUnprocessableEntity)
	if n := h.fake.Writes(); n != 0 {
		t.Fatalf("expected no write, got %d", n)
	}
}

func TestWeightHandler_Save_ReusesMountedPage(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewWeightHandler(h.env)

	assertCode(t, h.serve(t, http.MethodGet, "/weightedit", nil, handler.Show), http.StatusOK)
	rec := h.serve(t, http.MethodPost, "/weightedit/age", url.Values{"value": {"7"}}, handler.Save, "kind", "age")

	assertCode(t, rec, http.StatusOK)
	if got := h.fake.Weight("age"); got != 7 {
		t.Fatalf("expected age weight 7, got %v", got)
	}
	if n := len(h.fake.Calls(http.MethodGet, "/api/wigh/get")); n != 1 {
		t.Fatalf("expected the cached page to be reused, got %d fetches", n)
	}
	if h.env.Pages.Len() != 1 {
		t.Fatalf("expected one cached page, got %d", h.env.Pages.Len())
	}
}

func TestWeightHandler_Save_Clamps(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewWeightHandler(h.env)

	rec := h.serve(t, http.MethodPost, "/weightedit/food", url.Values{"value": {"42"}}, handler.Save, "kind", "food")

	assertCode(t, rec, http.StatusOK)
	if got := h.fake.Weight("food"); got != 10 {
		t.Fatalf("expected clamped weight 10, got %v", got)
	}
}

func TestWeightHandler_Save_Failure(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewWeightHandler(h.env)
	h.fake.Respond(http.MethodPost, "/api/wigh/age", http.StatusInternalServerError, "weights locked")

	rec := h.serve(t, http.MethodPost, "/weightedit/age", url.Values{"value": {"7"}}, handler.Save, "kind", "age")

	assertCode(t, rec, http.StatusBadGateway)
	assertBody(t, rec, "weights locked", `value="7"`)
	if got := h.fake.Weight("age"); got != 3 {
		t.Fatalf("backend weight must be unchanged, got %v", got)
	}
}

func TestWeightHandler_UnknownKind(t *testing.T) {
	h := newHarness(t).loggedIn(t)

	_, err := h.try(t, http.MethodPost, "/weightedit/height", url.Values{"value": {"1"}}, NewWeightHandler(h.env).Save, "kind", "height")
	assertHTTPError(t, err, http.StatusNotFound)
}

func TestProfileHandler_SaveField(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewProfileHandler(h.env)

	rec := h.serve(t, http.MethodPost, "/profileedit/email", url.Values{"email": {"ada@analytical.org"}}, handler.SaveField, "field", "email")
	assertCode(t, rec, http.StatusOK)
	if got := h.fake.User().Email; got != "ada@analytical.org" {
		t.Fatalf("email not updated: %q", got)
	}

	rec = h.serve(t, http.MethodPost, "/profileedit/lastName", url.Values{"value": {"King"}}, handler.SaveField, "field", "lastName")
	assertCode(t, rec, http.StatusOK)
	if got := h.fake.User().LastName; got != "King" {
		t.Fatalf("last name not updated: %q", got)
	}
}

func TestProfileHandler_SaveField_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		field string
		form  url.Values
		want  string
	}{
		{"email", "email", url.Values{"email": {"nope"}}, "Email must be a valid email"},
		{"password mismatch", "password", url.Values{"password": {"a"}, "confirmPassword": {"b"}}, "Passwords do not match"},
		{"city latitude", "city", url.Values{"name": {"Paris"}, "latitude": {"abc"}}, "Latitude must be a number"},
		{"city name", "city", url.Values{"name": {""}, "latitude": {"48.85"}}, "Name is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t).loggedIn(t)
			handler := NewProfileHandler(h.env)

			rec := h.serve(t, http.MethodPost, "/profileedit/"+tc.field, tc.form, handler.SaveField, "field", tc.field)

			assertCode(t, rec, http.StatusUnprocessableEntity)
			assertBody(t, rec, tc.want)
			if n := h.fake.Writes(); n != 0 {
				t.Fatalf("expected no write, got %d", n)
			}
		})
	}
}

func TestProfileHandler_SaveCity(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewProfileHandler(h.env)

	form := url.Values{"name": {"Paris"}, "latitude": {"48.85"}, "longitude": {"2.35"}}
	rec := h.serve(t, http.MethodPost, "/profileedit/city", form, handler.SaveField, "field", "city")

	assertCode(t, rec, http.StatusOK)
	u := h.fake.User()
	if u.City != "Paris" || u.Latitude != 48.85 || u.Longitude != 2.35 {
		t.Fatalf("city not updated: %+v", u)
	}
}

func TestProfileHandler_SaveAll(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewProfileHandler(h.env)

	assertCode(t, h.serve(t, http.MethodGet, "/profileedit", nil, handler.Show), http.StatusOK)

	form := url.Values{
		"username":   {"ada"},
		"email":      {"ada@example.com"},
		"firstName":  {"Augusta"},
		"middleName": {""},
		"lastName":   {"King"},
	}
	rec := h.serve(t, http.MethodPost, "/profileedit", form, handler.SaveAll)

	assertCode(t, rec, http.StatusOK)
	assertBody(t, rec, "All changes saved!")
	u := h.fake.User()
	if u.FirstName != "Augusta" || u.LastName != "King" {
		t.Fatalf("profile not updated: %+v", u)
	}
	if n := h.fake.Writes(); n != 2 {
		t.Fatalf("expected 2 writes for 2 changed fields, got %d", n)
	}
}

func TestProfileHandler_SaveAll_PartialFailure(t *testing.T) {
	h := newHarness(t).loggedIn(t)
	handler := NewProfileHandler(h.env)
	h.fake.Respond(http.MethodPost, "/edit/last", http.StatusConflict, "Last name locked")

	form := url.Values{"firstName": {"Augusta"}, "lastName": {"King"}}
	rec := h.serve(t, http.MethodPost, "/profileedit", form, handler.SaveAll)

	assertCode(t, rec, http.StatusUnprocessableEntity)
	assertBody(t, rec, "Last name locked", `value="King"`)
	u := h.fake.User()
	if u.FirstName != "Augusta" || u.LastName != "Lovelace" {
		t.Fatalf("unexpected backend state: %+v", u)
	}
}

func TestProfileHandler_UnknownField(t *testing.T) {
	h := newHarness(t).loggedIn(t)

	_, err := h.try(t, http.MethodPost, "/profileedit/shoeSize", url.Values{"value": {"9"}}, NewProfileHandler(h.env).SaveField, "field", "shoeSize")
	assertHTTPError(t, err, http.StatusNotFound)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{domain.NewValidationError("about", "too long"), http.StatusUnprocessableEntity},
		{&domain.RequestError{Status: http.StatusBadRequest}, http.StatusUnprocessableEntity},
		{&domain.RequestError{Status: http.StatusServiceUnavailable}, http.StatusBadGateway},
		{&domain.NetworkError{Op: "GET /api/user", Err: errors.New("refused")}, http.StatusBadGateway},
		{domain.ErrNoSession, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		got, err := statusFor(tc.err)
		if err != nil || got != tc.want {
			t.Fatalf("statusFor(%v) = %d, %v; want %d", tc.err, got, err, tc.want)
		}
	}

	if _, err := statusFor(errors.New("session get: redis down")); err == nil {
		t.Fatalf("infrastructure errors must reach the error handler")
	}
}

func TestPageCache_Forget(t *testing.T) {
	pc := NewPageCache(8, 0)
	pc.entries.Add(pageKey("a", weightPage), 1)
	pc.entries.Add(pageKey("a", profilePage), 2)
	pc.entries.Add(pageKey("ab", weightPage), 3)

	pc.Forget("a")

	if pc.Len() != 1 {
		t.Fatalf("expected one page left, got %d", pc.Len())
	}
	if _, ok := pc.entries.Get(pageKey("ab", weightPage)); !ok {
		t.Fatalf("another client's page must be kept")
	}
}
