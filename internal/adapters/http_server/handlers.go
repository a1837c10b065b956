package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"hotel_map/internal/app"
	"hotel_map/internal/domain"
)

// Ranges of the filter controls.
const (
	MinRatingLow     = 0.0
	MinRatingHigh    = 10.0
	MinRatingStep    = 0.1
	MinRatingDefault = 8.0
	TopLow           = 5
	TopHigh          = 30
	TopStep          = 5
	TopDefault       = 20
)

type Handlers struct{ Views *app.ViewService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.index)
	s.mux.Get("/v1/cities", h.listCities)
	s.mux.Get("/v1/map", h.getMap)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeDatasetError maps a dataset failure to a response. Details stay in the log.
func writeDatasetError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("dataset unavailable")
	detail := "dataset could not be loaded"
	if errors.Is(err, domain.ErrParse) {
		detail = "dataset is malformed"
	}
	writeProblem(w, http.StatusServiceUnavailable, "Dataset Unavailable", detail)
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "response encoding failed")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

type badParam struct{ name, detail string }

func (e *badParam) Error() string { return e.name + ": " + e.detail }

// parseCriteria reads city, min_rating and top from the query string.
// An absent city selects the first city; absent numbers take the control defaults.
func parseCriteria(r *http.Request, cities []string) (domain.FilterCriteria, error) {
	q := r.URL.Query()
	c := domain.FilterCriteria{City: q.Get("city"), MinRating: MinRatingDefault, TopN: TopDefault}
	if c.City == "" && len(cities) > 0 {
		c.City = cities[0]
	}

	if v := q.Get("min_rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || f < MinRatingLow || f > MinRatingHigh {
			return c, &badParam{"min_rating", fmt.Sprintf("must be a number between %.1f and %.1f", MinRatingLow, MinRatingHigh)}
		}
		c.MinRating = f
	}
	if v := q.Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < TopLow || n > TopHigh {
			return c, &badParam{"top", fmt.Sprintf("must be an integer between %d and %d", TopLow, TopHigh)}
		}
		c.TopN = n
	}
	return c, nil
}

func (h *Handlers) listCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Views.Cities(r.Context())
	if err != nil {
		writeDatasetError(w, err)
		return
	}
	writeJSON(w, r, cities)
}

func (h *Handlers) getMap(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Views.Cities(r.Context())
	if err != nil {
		writeDatasetError(w, err)
		return
	}
	crit, err := parseCriteria(r, cities)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid parameter", err.Error())
		return
	}
	vm, err := h.Views.Render(r.Context(), crit)
	if err != nil {
		writeDatasetError(w, err)
		return
	}
	writeJSON(w, r, vm)
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Views.Cities(r.Context())
	if err != nil {
		writeDatasetError(w, err)
		return
	}
	crit, err := parseCriteria(r, cities)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid parameter", err.Error())
		return
	}
	vm, err := h.Views.Render(r.Context(), crit)
	if err != nil {
		writeDatasetError(w, err)
		return
	}
	renderPage(w, pageData{Cities: cities, Criteria: crit, View: vm})
}
