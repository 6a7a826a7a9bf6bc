package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/core/service"
)

const bioPage = "bio"

type BioHandler struct {
	env *Env
}

func NewBioHandler(env *Env) *BioHandler {
	return &BioHandler{env: env}
}

type aboutForm struct {
	About string `form:"about"`
}

type birthdayForm struct {
	Birthday string `form:"birthday"`
}

// Show fetches the biography and birthday.
func (h *BioHandler) Show(c echo.Context) error {
	p, err := openPage(c, h.env, bioPage, service.NewBioPage)
	if p == nil {
		return err
	}
	return render(c, "bio", p.View(), err)
}

// SaveAbout writes the about text.
func (h *BioHandler) SaveAbout(c echo.Context) error {
	var form aboutForm
	if err := c.Bind(&form); err != nil {
		return errInvalidForm
	}
	p, err := resumePage(c, h.env, bioPage, service.NewBioPage)
	if p == nil {
		return err
	}
	if err != nil {
		return render(c, "bio", p.View(), err)
	}
	if err := p.EditAbout(form.About); err != nil {
		return err
	}
	err = p.SaveAbout(c.Request().Context())
	return render(c, "bio", p.View(), err)
}

// SaveBirthday writes the birthday.
func (h *BioHandler) SaveBirthday(c echo.Context) error {
	var form birthdayForm
	if err := c.Bind(&form); err != nil {
		return errInvalidForm
	}
	p, err := resumePage(c, h.env, bioPage, service.NewBioPage)
	if p == nil {
		return err
	}
	if err != nil {
		return render(c, "bio", p.View(), err)
	}
	if err := p.EditBirthday(form.Birthday); err != nil {
		return err
	}
	err = p.SaveBirthday(c.Request().Context())
	return render(c, "bio", p.View(), err)
}
