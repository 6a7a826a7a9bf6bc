package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/service"
)

const profilePage = "profile"

type ProfileHandler struct {
	env *Env
}

func NewProfileHandler(env *Env) *ProfileHandler {
	return &ProfileHandler{env: env}
}

type passwordForm struct {
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

type cityForm struct {
	Name      string `form:"name"`
	Latitude  string `form:"latitude"  validate:"omitempty,numeric"`
	Longitude string `form:"longitude" validate:"omitempty,numeric"`
}

// Show fetches the profile.
func (h *ProfileHandler) Show(c echo.Context) error {
	p, err := openPage(c, h.env, profilePage, service.NewProfilePage)
	if p == nil {
		return err
	}
	return render(c, "profile", p.View(), err)
}

// SaveField writes a single field. Text fields are read from the input named
// after the field, or from "value".
func (h *ProfileHandler) SaveField(c echo.Context) error {
	field, ok := domain.ParseProfileField(c.Param("field"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown field")
	}

	p, err := resumePage(c, h.env, profilePage, service.NewProfilePage)
	if p == nil {
		return err
	}
	if err != nil {
		return render(c, "profile", p.View(), err)
	}

	switch field {
	case domain.FieldPassword:
		var form passwordForm
		if err := c.Bind(&form); err != nil {
			return errInvalidForm
		}
		if err := p.EditPassword(form.Password, form.ConfirmPassword); err != nil {
			return err
		}

	case domain.FieldCity:
		var form cityForm
		if err := c.Bind(&form); err != nil {
			return errInvalidForm
		}
		if err := c.Validate(&form); err != nil {
			return render(c, "profile", withError(p.View(), err), err)
		}
		city := domain.City{
			Name:      form.Name,
			Latitude:  parseCoordinate(form.Latitude),
			Longitude: parseCoordinate(form.Longitude),
		}
		if err := p.EditCity(city); err != nil {
			return err
		}

	default:
		value := c.FormValue(string(field))
		if _, named := formValues(c)[string(field)]; !named {
			value = c.FormValue("value")
		}
		if err := p.Edit(field, value); err != nil {
			return err
		}
	}

	err = p.Save(c.Request().Context(), field)
	return render(c, "profile", p.View(), err)
}

// SaveAll takes every submitted text field that differs from the page,
// then writes all dirty fields at once.
func (h *ProfileHandler) SaveAll(c echo.Context) error {
	p, err := resumePage(c, h.env, profilePage, service.NewProfilePage)
	if p == nil {
		return err
	}
	if err != nil {
		return render(c, "profile", p.View(), err)
	}

	submitted := formValues(c)
	for _, in := range p.View().Inputs {
		values, ok := submitted[string(in.Field)]
		if !ok || len(values) == 0 || values[0] == in.Value {
			continue
		}
		if err := p.Edit(in.Field, values[0]); err != nil {
			return err
		}
	}

	_, err = p.SaveAll(c.Request().Context())
	return render(c, "profile", p.View(), err)
}

func formValues(c echo.Context) map[string][]string {
	values, err := c.FormParams()
	if err != nil {
		return nil
	}
	return values
}

func withError(v service.ProfileView, err error) service.ProfileView {
	v.Message = domain.UserMessage(err)
	v.Field = fieldOf(err)
	v.Notice = ""
	return v
}
