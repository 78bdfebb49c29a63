// Package htmlview draws render trees as HTML pages.
package htmlview

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"RiskView/internal/domain/models"
	"RiskView/internal/services/render"
)

//go:embed templates/*.html
var templateFS embed.FS

// Timelines are the windows offered by the page controls.
var Timelines = []models.Timeline{1, 3, 3.5, 4, 4.5, 5}

var modes = []models.ReturnMode{models.ModeTrailing, models.ModeRolling}

// Page is the data of one rendered page.
type Page struct {
	BasePath   string
	Target     models.ViewTarget
	Categories []string
	Tree       *render.RenderTree
}

func (p Page) Modes() []models.ReturnMode {
	return modes
}

func (p Page) Timelines() []models.Timeline {
	return Timelines
}

// Renderer executes the embedded page template.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("riskview").Funcs(template.FuncMap{
		"swatch": swatch,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the full page for p to w.
func (r *Renderer) Render(w io.Writer, p Page) error {
	if p.Tree == nil {
		p.Tree = render.Idle("")
	}
	if err := r.tmpl.ExecuteTemplate(w, "view", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// swatch colors come from the fixed palettes of the colorscale package.
func swatch(background, foreground string) template.CSS {
	return template.CSS(fmt.Sprintf("background: %s; color: %s;", background, foreground))
}
