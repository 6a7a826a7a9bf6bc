package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/ports"
	"github.com/matchme/matchme-web/internal/infrastructure/backend"
)

const (
	homePath       = "/user"
	registeredFlag = "registered"
	registeredNote = "Registration successful! Please log in."
)

type AuthHandler struct {
	env         *Env
	authService ports.AuthService
}

func NewAuthHandler(env *Env, authService ports.AuthService) *AuthHandler {
	return &AuthHandler{env: env, authService: authService}
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type registerForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	FirstName       string `form:"firstName"`
	MiddleName      string `form:"middleName"`
	LastName        string `form:"lastName"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
	City            string `form:"city"`
	Latitude        string `form:"latitude"  validate:"omitempty,numeric"`
	Longitude       string `form:"longitude" validate:"omitempty,numeric"`
}

// LoginView is the login page. Only the username is echoed back.
type LoginView struct {
	Username string
	Message  string
	Field    string
	Notice   string
}

// RegisterView is the registration page. Passwords are never echoed back.
type RegisterView struct {
	Form    registerForm
	Message string
	Field   string
	Notice  string
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	view := LoginView{}
	if c.QueryParam(registeredFlag) != "" {
		view.Notice = registeredNote
	}
	return c.Render(http.StatusOK, "login", view)
}

// Login exchanges the credentials for a token, stores it in the client
// context and continues to the user page.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return errInvalidForm
	}

	clientID, store, err := ctxSession(c)
	if err != nil {
		return err
	}
	api := backend.NewAPI(h.env.Backend, store)

	err = h.authService.Login(c.Request().Context(), api, store, domain.Credentials{
		Username: strings.TrimSpace(form.Username),
		Password: form.Password,
	})
	if err != nil {
		return render(c, "login", LoginView{
			Username: form.Username,
			Message:  domain.UserMessage(err),
			Field:    fieldOf(err),
		}, err)
	}
	h.env.Pages.Forget(clientID)
	return c.Redirect(http.StatusSeeOther, homePath)
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register", RegisterView{})
}

// Register creates the account. When the backend answers with a token the
// visitor is logged in, otherwise they are sent to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return errInvalidForm
	}

	fail := func(err error) error {
		form.Password, form.ConfirmPassword = "", ""
		return render(c, "register", RegisterView{
			Form:    form,
			Message: domain.UserMessage(err),
			Field:   fieldOf(err),
		}, err)
	}

	if err := c.Validate(&form); err != nil {
		return fail(err)
	}

	clientID, store, err := ctxSession(c)
	if err != nil {
		return err
	}
	api := backend.NewAPI(h.env.Backend, store)

	loggedIn, err := h.authService.Register(c.Request().Context(), api, store, form.registration())
	if err != nil {
		return fail(err)
	}
	if !loggedIn {
		return c.Redirect(http.StatusSeeOther, "/?"+registeredFlag+"=1")
	}
	h.env.Pages.Forget(clientID)
	return c.Redirect(http.StatusSeeOther, homePath)
}

func (f registerForm) registration() domain.Registration {
	return domain.Registration{
		Username:        strings.TrimSpace(f.Username),
		Email:           strings.TrimSpace(f.Email),
		FirstName:       strings.TrimSpace(f.FirstName),
		MiddleName:      strings.TrimSpace(f.MiddleName),
		LastName:        strings.TrimSpace(f.LastName),
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
		City:            strings.TrimSpace(f.City),
		Latitude:        parseCoordinate(f.Latitude),
		Longitude:       parseCoordinate(f.Longitude),
	}
}

// parseCoordinate reads a coordinate that already passed the numeric check.
// An empty value is 0.
func parseCoordinate(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func fieldOf(err error) string {
	if ve, ok := asValidation(err); ok {
		return ve.Field
	}
	return ""
}
