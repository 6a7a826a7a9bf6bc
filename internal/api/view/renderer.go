// Package view renders the HTML pages of the web frontend.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/matchme/matchme-web/internal/core/domain"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"label":      label,
	"inputType":  inputType,
	"fieldError": fieldError,
	"title": func(s any) string {
		str := fmt.Sprint(s)
		if str == "" {
			return ""
		}
		return strings.ToUpper(str[:1]) + str[1:]
	},
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates. It panics on a malformed
// template since they are compiled into the binary.
func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")),
	}
}

// Render executes the template called name. Nothing is written unless the
// whole page rendered.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func label(f domain.ProfileField) string {
	switch f {
	case domain.FieldUsername:
		return "Username"
	case domain.FieldEmail:
		return "Email"
	case domain.FieldFirstName:
		return "First name"
	case domain.FieldMiddleName:
		return "Middle name"
	case domain.FieldLastName:
		return "Last name"
	case domain.FieldPassword:
		return "Password"
	case domain.FieldCity:
		return "City"
	}
	return string(f)
}

func inputType(f domain.ProfileField) string {
	if f == domain.FieldEmail {
		return "email"
	}
	return "text"
}

func fieldError(errs map[domain.ProfileField]string, f string) string {
	return errs[domain.ProfileField(f)]
}
