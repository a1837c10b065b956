package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"hotel_map/internal/app"
	"hotel_map/internal/domain"
)

//go:embed templates/index.html.tmpl
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html.tmpl"))

type pageData struct {
	Cities   []string
	Criteria domain.FilterCriteria
	View     app.ViewModel
}

// Control ranges exposed to the template.
func (pageData) MinRatingLow() float64  { return MinRatingLow }
func (pageData) MinRatingHigh() float64 { return MinRatingHigh }
func (pageData) MinRatingStep() float64 { return MinRatingStep }
func (pageData) TopLow() int            { return TopLow }
func (pageData) TopHigh() int           { return TopHigh }
func (pageData) TopStep() int           { return TopStep }

func renderPage(w http.ResponseWriter, d pageData) {
	// render to a buffer first so a template error never yields half a page
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, d); err != nil {
		log.Error().Err(err).Msg("render page failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "page rendering failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to write page")
	}
}
