package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/core/service"
)

const userPage = "user"

type UserHandler struct {
	env *Env
}

func NewUserHandler(env *Env) *UserHandler {
	return &UserHandler{env: env}
}

// Show fetches the signed-in user and renders the overview.
func (h *UserHandler) Show(c echo.Context) error {
	p, err := openPage(c, h.env, userPage, service.NewUserPage)
	if p == nil {
		return err
	}
	return render(c, "user", p.View(), err)
}
