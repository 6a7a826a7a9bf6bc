package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/service"
)

const preferencePage = "preference"

type PreferenceHandler struct {
	env *Env
}

func NewPreferenceHandler(env *Env) *PreferenceHandler {
	return &PreferenceHandler{env: env}
}

// Show fetches the catalog and the user's selection.
func (h *PreferenceHandler) Show(c echo.Context) error {
	p, err := openPage(c, h.env, preferencePage, service.NewPreferencePage)
	if p == nil {
		return err
	}
	return render(c, "preference", p.View(), err)
}

// Toggle flips one checkbox and writes it immediately.
func (h *PreferenceHandler) Toggle(c echo.Context) error {
	cat, ok := domain.ParseCategory(c.Param("category"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown category")
	}

	p, err := resumePage(c, h.env, preferencePage, service.NewPreferencePage)
	if p == nil {
		return err
	}
	if err != nil {
		return render(c, "preference", p.View(), err)
	}
	err = p.Toggle(c.Request().Context(), cat, c.Param("code"))
	return render(c, "preference", p.View(), err)
}
