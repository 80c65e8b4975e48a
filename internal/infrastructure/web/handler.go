package web

import (
	"net/http"

	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/markdown"
)

const timestampLayout = "2006-01-02 15:04:05"

// Handler serves the report page. GET renders the cached report, generating
// one synchronously only when the cache is still empty. POST with the refresh
// action forces a regeneration; on failure the previous report stays cached
// and an error page is shown instead.
type Handler struct {
	cache    input.ReportRefresher
	renderer *markdown.Renderer
	logger   output.LoggerPort
}

func NewHandler(cache input.ReportRefresher, renderer *markdown.Renderer, logger output.LoggerPort) *Handler {
	return &Handler{
		cache:    cache,
		renderer: renderer,
		logger:   logger,
	}
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	report, ok := h.cache.Read()
	if !ok {
		var err error
		report, err = h.cache.Refresh(r.Context())
		if err != nil {
			h.renderError(w, err)
			return
		}
	}
	h.renderPage(w, report)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("refresh") == "" {
		h.Show(w, r)
		return
	}

	report, err := h.cache.Refresh(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.renderPage(w, report)
}

func (h *Handler) renderPage(w http.ResponseWriter, report entity.Report) {
	content, err := h.renderer.Render(report.Text)
	if err != nil {
		h.renderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		Content:     content,
		LastUpdated: report.CompletedAt.Local().Format(timestampLayout),
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		h.logger.Error("Render page failed", "error", err)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, cause error) {
	h.logger.Error("Request failed", "error", cause)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := errorTmpl.Execute(w, errorData{Error: cause.Error()}); err != nil {
		h.logger.Error("Render error page failed", "error", err)
	}
}
