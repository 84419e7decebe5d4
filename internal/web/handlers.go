package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/reflections/internal/core"
	"github.com/JonMunkholm/reflections/internal/display"
	"github.com/JonMunkholm/reflections/internal/export"
	"github.com/JonMunkholm/reflections/internal/logging"
	"github.com/JonMunkholm/reflections/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// MaxSearchResults caps the search endpoint when no limit is given.
const MaxSearchResults = 50

// LanguageInfo describes one supported language for API clients.
type LanguageInfo struct {
	Name        core.Language `json:"name"`
	Code        string        `json:"code"`
	DisplayName string        `json:"display_name"`
}

// SearchResponse is the body of the search endpoint.
type SearchResponse struct {
	Keyword string            `json:"keyword"`
	Total   int               `json:"total"`
	Results []core.Reflection `json:"results"`
}

// handleIndex renders the reflection page for ?date=&lang=.
// A missing or malformed date shows today; an unknown language shows English.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if core.ValidateDate(date) != nil {
		date = s.service.Today()
	}
	lang, err := core.ParseLanguage(r.URL.Query().Get("lang"))
	if err != nil {
		lang = core.English
	}

	data := templates.PageData{
		Date:        date,
		DisplayDate: display.FormatDate(date),
		Language:    lang,
		TodayHref:   export.PageURL("/", s.service.Today(), lang),
		PrevHref:    export.PageURL("/", shiftDate(date, -1), lang),
		NextHref:    export.PageURL("/", shiftDate(date, 1), lang),
	}
	for _, l := range core.Languages {
		data.Languages = append(data.Languages, templates.LanguageLink{
			Label:  l.DisplayName(),
			Href:   export.PageURL("/", date, l),
			Active: l == lang,
		})
	}

	status := http.StatusOK
	reflection, err := s.service.GetByDate(ctx, date, lang)
	switch {
	case err == nil:
		data.Reflection = reflection
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	default:
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ReflectionPage(data).Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render reflection page", "error", err)
	}
}

// handleLanguages lists the supported languages.
func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	out := make([]LanguageInfo, len(core.Languages))
	for i, l := range core.Languages {
		out[i] = LanguageInfo{Name: l, Code: l.Code(), DisplayName: l.DisplayName()}
	}
	writeJSON(w, r, out)
}

// handleStats returns the table statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.GetStatistics(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, stats)
}

// handleAllLanguages returns every language's reflection for one date.
func (s *Server) handleAllLanguages(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	all, err := s.service.GetAllLanguages(r.Context(), date)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if len(all) == 0 {
		s.respondError(w, r, fmt.Errorf("reflections for %s: %w", date, core.ErrNotFound))
		return
	}
	writeJSON(w, r, all)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	lang, ok := s.languageParam(w, r)
	if !ok {
		return
	}
	s.writeReflection(w, r)(s.service.GetToday(r.Context(), lang))
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	lang, ok := s.languageParam(w, r)
	if !ok {
		return
	}
	s.writeReflection(w, r)(s.service.GetRandom(r.Context(), lang))
}

func (s *Server) handleByDate(w http.ResponseWriter, r *http.Request) {
	lang, ok := s.languageParam(w, r)
	if !ok {
		return
	}
	s.writeReflection(w, r)(s.service.GetByDate(r.Context(), chi.URLParam(r, "date"), lang))
}

// handleSearch runs ?q= against one language. ?limit= caps the returned
// results; total always reports the full match count.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	lang, ok := s.languageParam(w, r)
	if !ok {
		return
	}

	limit := MaxSearchResults
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(w, r, fmt.Errorf("%w: limit %q", core.ErrInvalidArgument, raw))
			return
		}
		limit = n
	}

	keyword := r.URL.Query().Get("q")
	results, err := s.service.Search(r.Context(), keyword, lang)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := SearchResponse{Keyword: keyword, Total: len(results), Results: results}
	if len(resp.Results) > limit {
		resp.Results = resp.Results[:limit]
	}
	writeJSON(w, r, resp)
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	lang, ok := s.languageParam(w, r)
	if !ok {
		return
	}

	raw := chi.URLParam(r, "month")
	month, err := strconv.Atoi(raw)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %q", core.ErrInvalidMonth, raw))
		return
	}

	results, err := s.service.GetByMonth(r.Context(), month, lang)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, results)
}

// handleSitemap builds the sitemap from the current table contents.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	set, err := export.BuildSitemap(r.Context(), s.service, s.opts.BaseURL, s.opts.Now())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if err := export.WriteSitemap(w, set); err != nil {
		logging.FromContext(r.Context()).Error("write sitemap", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		logging.FromContext(r.Context()).Error("health check failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}` + "\n"))
		return
	}
	writeJSON(w, r, map[string]string{"status": "ok"})
}

// languageParam parses the {lang} route parameter, writing the error
// response itself when it is not a supported language.
func (s *Server) languageParam(w http.ResponseWriter, r *http.Request) (core.Language, bool) {
	lang, err := core.ParseLanguage(chi.URLParam(r, "lang"))
	if err != nil {
		s.respondError(w, r, err)
		return "", false
	}
	return lang, true
}

func (s *Server) writeReflection(w http.ResponseWriter, r *http.Request) func(*core.Reflection, error) {
	return func(reflection *core.Reflection, err error) {
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		writeJSON(w, r, reflection)
	}
}

// shiftDate moves a valid YYYY-MM-DD date by days.
func shiftDate(date string, days int) string {
	t, err := time.Parse(core.DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(core.DateLayout)
}
