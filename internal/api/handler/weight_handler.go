package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/core/service"
)

const weightPage = "weight"

type WeightHandler struct {
	env *Env
}

func NewWeightHandler(env *Env) *WeightHandler {
	return &WeightHandler{env: env}
}

type weightForm struct {
	Value string `form:"value"`
}

// Show fetches the weight vector.
func (h *WeightHandler) Show(c echo.Context) error {
	p, err := openPage(c, h.env, weightPage, service.NewWeightPage)
	if p == nil {
		return err
	}
	return render(c, "weight", p.View(), err)
}

// Save clamps the submitted value and writes one weight.
func (h *WeightHandler) Save(c echo.Context) error {
	kind, ok := domain.ParseWeightKind(c.Param("kind"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown weight")
	}
	var form weightForm
	if err := c.Bind(&form); err != nil {
		return errInvalidForm
	}

	p, err := resumePage(c, h.env, weightPage, service.NewWeightPage)
	if p == nil {
		return err
	}
	if err != nil {
		return render(c, "weight", p.View(), err)
	}
	if err := p.Edit(kind, form.Value); err != nil {
		return err
	}
	err = p.Save(c.Request().Context(), kind)
	return render(c, "weight", p.View(), err)
}
