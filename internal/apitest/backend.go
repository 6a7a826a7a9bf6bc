// Package apitest runs an in-process fake of the match-me REST API for tests.
// It keeps per-user state in memory, records every request it receives and
// lets a test replace the answer of any route.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/matchme/matchme-web/internal/core/domain"
)

const (
	Username = "ada"
	Password = "s3cret"
	UserID   = "7b0c3d4e-0000-4000-8000-000000000001"
)

// Request is one request as the fake backend received it.
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          []byte
}

// Decode unmarshals the request body into v.
func (r Request) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Response replaces the answer of a route.
type Response struct {
	Status int
	Body   string
	// Hangup closes the connection without answering.
	Hangup bool
}

// Backend is the fake API server.
type Backend struct {
	Server *httptest.Server
	// Token is the bearer token the fake issues and accepts.
	Token string

	mu        sync.Mutex
	requests  []Request
	overrides map[string]Response

	user      domain.UserProfile
	about     string
	birthday  string
	catalog   domain.Catalog
	selection domain.Selection
	weights   map[string]float64
}

// New starts a fake backend seeded with one user and closes it when the test
// ends.
func New(t testing.TB) *Backend {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": UserID}).
		SignedString([]byte("apitest"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	b := &Backend{
		Token:     token,
		overrides: make(map[string]Response),
		user: domain.UserProfile{
			UserID:     UserID,
			Username:   Username,
			Email:      "ada@example.com",
			FirstName:  "Ada",
			MiddleName: "(N/A)",
			LastName:   "Lovelace",
			City:       "London",
		},
		about:    "Analytical engines.",
		birthday: "1990-12-10T00:00:00Z",
		catalog: domain.Catalog{
			Food:  []domain.Option{{Code: "f1", Description: "Pizza"}, {Code: "f2", Description: "Sushi"}},
			Hobby: []domain.Option{{Code: "h1", Description: "Chess"}, {Code: "h2", Description: "Hiking"}},
			Music: []domain.Option{{Code: "m1", Description: "Jazz"}, {Code: "m2", Description: "Techno"}},
		},
		selection: domain.Selection{Food: []string{"f1"}, Hobby: []string{}, Music: []string{"m2"}},
		weights: map[string]float64{
			"distance": 1, "age": 3, "food": 5, "hobbies": 2, "music": 4,
		},
	}

	b.Server = httptest.NewServer(b.router())
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the base URL of the fake.
func (b *Backend) URL() string { return b.Server.URL }

// Respond makes every later call to method+path answer with status and body.
func (b *Backend) Respond(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[method+" "+path] = Response{Status: status, Body: body}
}

// Hangup makes every later call to method+path fail at the transport level.
func (b *Backend) Hangup(method, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[method+" "+path] = Response{Hangup: true}
}

// Reset drops all overrides.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides = make(map[string]Response)
}

// Requests returns a copy of every request received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// Calls returns the requests received for method+path.
func (b *Backend) Calls(method, path string) []Request {
	var out []Request
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Writes counts the POST requests received.
func (b *Backend) Writes() int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == http.MethodPost {
			n++
		}
	}
	return n
}

// SetSelectionColumns switches /pref/get to the comma-joined column form.
func (b *Backend) SetSelectionColumns(food, hobbies, music string) {
	body, _ := json.Marshal(map[string]string{
		"food_myvariabledata":    food,
		"hobbies_myvariabledata": hobbies,
		"music_myvariabledata":   music,
	})
	b.Respond(http.MethodGet, "/pref/get", http.StatusOK, string(body))
}

// User returns the stored user.
func (b *Backend) User() domain.UserProfile {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.user
}

// Weight returns the stored weight of kind.
func (b *Backend) Weight(kind string) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.weights[kind]
}

// Selection returns the stored preference selection.
func (b *Backend) Selection() domain.Selection {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selection
}

// About returns the stored biography text.
func (b *Backend) About() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.about
}

// Birthday returns the stored birthday.
func (b *Backend) Birthday() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.birthday
}

func (b *Backend) router() http.Handler {
	r := mux.NewRouter()
	r.Use(b.record, b.override)

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.HandleFunc("/api/login", b.login).Methods(http.MethodPost)
	r.HandleFunc("/api/register", b.register).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(b.requireToken)
	authed.HandleFunc("/api/user", b.getUser).Methods(http.MethodGet)
	authed.HandleFunc("/edit/{field}", b.editField).Methods(http.MethodPost)
	authed.HandleFunc("/api/biog/aboutget", b.getAbout).Methods(http.MethodGet)
	authed.HandleFunc("/api/biog/about", b.setAbout).Methods(http.MethodPost)
	authed.HandleFunc("/api/biog/birthdayget", b.getBirthday).Methods(http.MethodGet)
	authed.HandleFunc("/api/biog/birthday", b.setBirthday).Methods(http.MethodPost)
	authed.HandleFunc("/pref/mapget", b.getCatalog).Methods(http.MethodGet)
	authed.HandleFunc("/pref/get", b.getSelection).Methods(http.MethodGet)
	authed.HandleFunc("/pref/{category}", b.togglePreference).Methods(http.MethodPost)
	authed.HandleFunc("/api/wigh/get", b.getWeights).Methods(http.MethodGet)
	authed.HandleFunc("/api/wigh/{kind}", b.setWeight).Methods(http.MethodPost)

	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (b *Backend) override(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		resp, ok := b.overrides[r.Method+" "+r.URL.Path]
		b.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if resp.Hangup {
			hijackAndClose(w)
			return
		}
		if strings.HasPrefix(strings.TrimSpace(resp.Body), "{") {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(resp.Status)
		_, _ = io.WriteString(w, resp.Body)
	})
}

func hijackAndClose(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		panic("apitest: response writer does not support hijacking")
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		panic(err)
	}
	_ = conn.Close()
}

func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.Token {
			http.Error(w, "Unauthorized: token is missing or invalid", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	username := b.user.Username
	b.mu.Unlock()
	if req.Username != username || req.Password != Password {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Invalid username or password"}`)
		return
	}
	writeJSON(w, map[string]string{"status": "success", "message": "Login successful", "token": b.Token})
}

// register answers without a token, like the real backend.
func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"message": "User registered successfully"})
}

func (b *Backend) getUser(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, b.User())
}

func (b *Backend) editField(w http.ResponseWriter, r *http.Request) {
	field := mux.Vars(r)["field"]

	if field == "city" {
		var city domain.City
		if err := json.NewDecoder(r.Body).Decode(&city); err != nil || city.Name == "" {
			http.Error(w, "Invalid city", http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.user.City, b.user.Latitude, b.user.Longitude = city.Name, city.Latitude, city.Longitude
		b.mu.Unlock()
		_, _ = io.WriteString(w, "City updated successfully")
		return
	}

	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	switch field {
	case "user":
		b.user.Username = body.Value
	case "email":
		b.user.Email = body.Value
	case "first":
		b.user.FirstName = body.Value
	case "middle":
		b.user.MiddleName = body.Value
	case "last":
		b.user.LastName = body.Value
	case "pass":
	default:
		http.NotFound(w, r)
		return
	}
	_, _ = io.WriteString(w, field+" updated successfully")
}

func (b *Backend) getAbout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"about": b.About()})
}

func (b *Backend) setAbout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NewAbout string `json:"newAbout"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if body.NewAbout == "" {
		http.Error(w, "About You field cannot be empty", http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	b.about = body.NewAbout
	b.mu.Unlock()
	writeJSON(w, map[string]string{"message": "About You updated successfully"})
}

func (b *Backend) getBirthday(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"birthday": b.Birthday(), "age": 35})
}

func (b *Backend) setBirthday(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Birthday string `json:"birthday"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Birthday == "" {
		http.Error(w, "Invalid birthday", http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	b.birthday = body.Birthday
	b.mu.Unlock()
	writeJSON(w, map[string]string{"message": "Birthday updated successfully"})
}

func (b *Backend) getCatalog(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	c := b.catalog
	b.mu.Unlock()
	writeJSON(w, c)
}

func (b *Backend) getSelection(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, b.Selection())
}

func (b *Backend) togglePreference(w http.ResponseWriter, r *http.Request) {
	cat, ok := domain.ParseCategory(mux.Vars(r)["category"])
	if !ok {
		http.NotFound(w, r)
		return
	}
	var body domain.PreferenceToggle
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.Code == "" {
		http.Error(w, "Code is required", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	selected := b.selection.Has(cat, body.Code)
	switch {
	case body.IsUnchecked && !selected:
		http.Error(w, "Code not found, nothing to remove", http.StatusNotFound)
		return
	case !body.IsUnchecked && selected:
		http.Error(w, "Code already exists", http.StatusBadRequest)
		return
	}
	b.selection = b.selection.With(cat, body.Code, !body.IsUnchecked)
	if body.IsUnchecked {
		_, _ = io.WriteString(w, "Code removed successfully")
	} else {
		_, _ = io.WriteString(w, "Code added successfully")
	}
}

func (b *Backend) getWeights(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, map[string]float64{
		"weigh_distance": b.weights["distance"],
		"weigh_age":      b.weights["age"],
		"weigh_food":     b.weights["food"],
		"weigh_hobbies":  b.weights["hobbies"],
		"weigh_music":    b.weights["music"],
	})
}

var weightRoutes = map[string]string{
	"dist":  "distance",
	"age":   "age",
	"food":  "food",
	"hobby": "hobbies",
	"music": "music",
}

func (b *Backend) setWeight(w http.ResponseWriter, r *http.Request) {
	kind, ok := weightRoutes[mux.Vars(r)["kind"]]
	if !ok {
		http.NotFound(w, r)
		return
	}
	var body struct {
		Number float64 `json:"number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	b.weights[kind] = body.Number
	b.mu.Unlock()
	_, _ = io.WriteString(w, "weigh_"+kind+" updated successfully")
}
