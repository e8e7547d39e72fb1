// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON endpoints of the icon API and the
// static client catch-all. Handlers receive their dependencies through
// the API struct.
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"iconforge/internal/ai"
	"iconforge/internal/download"
	"iconforge/internal/icons"
	"iconforge/internal/models"
	"iconforge/internal/slug"
	"iconforge/internal/style"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	maxDownloadIcons    = 16
)

// HistoryStore persists generated sets. *store.GenerationStore satisfies it.
type HistoryStore interface {
	Create(g *models.Generation) (*models.Generation, error)
	FindByID(id uuid.UUID) (*models.Generation, error)
	List(limit, offset int) ([]models.Generation, error)
	Count() (int, error)
	Delete(id uuid.UUID) (bool, error)
}

// API groups the icon endpoints and their dependencies.
type API struct {
	generator *icons.Generator
	registry  *ai.Registry
	history   HistoryStore // nil when history is disabled
	downloads *download.Client
	isDev     bool
}

// NewAPI creates the API handler group. history may be nil.
func NewAPI(generator *icons.Generator, registry *ai.Registry, history HistoryStore, downloads *download.Client, isDev bool) *API {
	return &API{
		generator: generator,
		registry:  registry,
		history:   history,
		downloads: downloads,
		isDev:     isDev,
	}
}

type styleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Styles lists the preset styles in catalog order.
func (a *API) Styles(w http.ResponseWriter, r *http.Request) {
	defs := style.All()
	out := make([]styleInfo, len(defs))
	for i, d := range defs {
		out[i] = styleInfo{ID: d.ID, Name: d.Name, Description: d.Description}
	}
	writeJSON(w, http.StatusOK, map[string]any{"styles": out})
}

// Health reports liveness with the current time.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

type generateResponse struct {
	Success      bool                   `json:"success"`
	Prompt       string                 `json:"prompt"`
	Style        string                 `json:"style"`
	Icons        []models.GeneratedIcon `json:"icons"`
	GenerationID *uuid.UUID             `json:"generationId,omitempty"`
}

// Generate produces a full icon set for a theme prompt.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := validateGenerate(&req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.checkPrompt(r, req.Prompt); err != nil {
		a.writeError(w, r, err)
		return
	}

	theme := strings.TrimSpace(req.Prompt)
	set, err := a.generator.GenerateIconSet(r.Context(), theme, req.PresetStyle, req.BrandColors)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	def, _ := style.Lookup(req.PresetStyle)
	resp := generateResponse{
		Success: true,
		Prompt:  req.Prompt,
		Style:   def.Name,
		Icons:   set,
	}
	if id, ok := a.record(theme, req, set); ok {
		resp.GenerationID = &id
	}
	writeJSON(w, http.StatusOK, resp)
}

// record persists a generated set. Failures are logged and never reach
// the client.
func (a *API) record(theme string, req generateRequest, set []models.GeneratedIcon) (uuid.UUID, bool) {
	if a.history == nil {
		return uuid.Nil, false
	}
	created, err := a.history.Create(&models.Generation{
		Prompt:      theme,
		Style:       req.PresetStyle,
		Provider:    a.registry.ActiveName(),
		BrandColors: req.BrandColors,
		Icons:       set,
	})
	if err != nil {
		slog.Error("save generation failed", "error", err)
		return uuid.Nil, false
	}
	return created.ID, true
}

// checkPrompt runs the prompt through moderation. Moderation failures are
// logged and the prompt is allowed; the image services filter too.
func (a *API) checkPrompt(r *http.Request, prompt string) error {
	result, err := a.registry.CheckPrompt(r.Context(), prompt)
	if err != nil {
		slog.Warn("moderation check failed, allowing prompt", "error", err)
		return nil
	}
	if result.Safe {
		return nil
	}

	categories := strings.Join(result.Categories, ", ")
	slog.Warn("prompt flagged by moderation", "categories", categories)
	return &StatusError{
		Status: http.StatusUnprocessableEntity,
		Message: fmt.Sprintf(
			"Your prompt was flagged for: %s. Please reformulate your request and try again.",
			categories,
		),
		Fields: map[string]any{"categories": result.Categories},
	}
}

// Regenerate produces one icon for a subject in a single colour.
func (a *API) Regenerate(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	index, err := validateRegenerate(&req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	icon, err := a.generator.RegenerateIconWithColor(r.Context(), req.Subject, req.PresetStyle, req.Color, index)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "icon": icon})
}

// errHistoryDisabled is reported by the history endpoints when no store
// is configured.
var errHistoryDisabled = notFound("History is not enabled")

// History lists stored generations, newest first.
func (a *API) History(w http.ResponseWriter, r *http.Request) {
	if a.history == nil {
		a.writeError(w, r, errHistoryDisabled)
		return
	}

	limit := queryInt(r, "limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)
	offset := max(queryInt(r, "offset", 0), 0)

	items, err := a.history.List(limit, offset)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	total, err := a.history.Count()
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": items, "total": total})
}

// HistoryItem returns one stored generation.
func (a *API) HistoryItem(w http.ResponseWriter, r *http.Request) {
	if a.history == nil {
		a.writeError(w, r, errHistoryDisabled)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, badRequest("Invalid generation id"))
		return
	}

	g, err := a.history.FindByID(id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if g == nil {
		a.writeError(w, r, notFound("Generation not found"))
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// HistoryDelete removes one stored generation.
func (a *API) HistoryDelete(w http.ResponseWriter, r *http.Request) {
	if a.history == nil {
		a.writeError(w, r, errHistoryDisabled)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, badRequest("Invalid generation id"))
		return
	}

	deleted, err := a.history.Delete(id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !deleted {
		a.writeError(w, r, notFound("Generation not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// downloadRequest is the body of POST /api/download.
type downloadRequest struct {
	Icons    []models.GeneratedIcon `json:"icons"`
	Format   string                 `json:"format"`
	Prompt   string                 `json:"prompt"`
	Password string                 `json:"password"`
}

// Download bundles icons into a ZIP, converting them to the requested
// format. The archive is built in memory so a failed fetch still yields
// a JSON error instead of a truncated file.
func (a *API) Download(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if len(req.Icons) == 0 {
		a.writeError(w, r, badRequest("Icons are required"))
		return
	}
	if len(req.Icons) > maxDownloadIcons {
		a.writeError(w, r, badRequest(fmt.Sprintf("At most %d icons can be downloaded at once", maxDownloadIcons)))
		return
	}
	format, err := download.ParseFormat(req.Format)
	if err != nil {
		a.writeError(w, r, badRequest("Format must be png or jpg"))
		return
	}
	for _, icon := range req.Icons {
		if err := a.downloads.Check(icon.URL); err != nil {
			a.writeError(w, r, badRequest(downloadMessage(err)))
			return
		}
	}

	var buf bytes.Buffer
	files := download.Files(req.Prompt, req.Icons, format)
	if err := a.downloads.Archive(r.Context(), &buf, files, format, req.Password); err != nil {
		a.writeError(w, r, err)
		return
	}

	name := slug.Generate(req.Prompt) + "-icons.zip"
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func downloadMessage(err error) string {
	if errors.Is(err, download.ErrHostNotAllowed) {
		return "Icon URL host is not allowed"
	}
	return "Icon URL is invalid"
}

// queryInt reads an integer query parameter, returning fallback when it
// is absent or malformed.
func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
