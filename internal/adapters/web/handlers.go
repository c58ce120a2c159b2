// Package web is the HTTP adapter: routing, authentication, and JSON/CSV
// presentation over the application service.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ledgerdocs/internal/app"
)

// Handler holds the ApplicationService and the request dependencies shared by
// all routes.
type Handler struct {
	svc       app.ApplicationService
	jwtSecret string
	tokenTTL  time.Duration
	logger    *slog.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string, tokenTTL time.Duration, logger *slog.Logger) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(CORS(allowedOrigins))

	// Public routes.
	r.Get("/api/health", h.health)
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// Protected API routes: 1 MB body limit to prevent unbounded request abuse.
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20))

		r.Get("/api/auth/me", h.me)

		r.Post("/api/documents", h.createDocument)
		r.Get("/api/documents", h.listDocuments)
		r.Get("/api/documents/{id}", h.getDocument)
		r.Post("/api/documents/{id}/classify", h.classifyDocument)
		r.Delete("/api/documents/{id}", h.deleteDocument)
		r.Delete("/api/documents/{id}/journal-entries", h.deleteDocumentEntries)

		r.Post("/api/journal-entries/generate", h.generateJournalEntries)
		r.Post("/api/journal-entries", h.createManualEntries)
		r.Get("/api/journal-entries", h.listJournalEntries)
		r.Get("/api/journal-entries/download", h.downloadJournalEntries)
		r.Delete("/api/journal-entries/{id}", h.deleteJournalEntry)
		r.Delete("/api/journal-entries", h.deleteGeneratedEntries)

		r.Post("/api/reports/{type}/generate", h.generateReport)
		r.Get("/api/reports/{type}/download", h.downloadReport)
	})

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an
// appropriate error response on failure. Returns HTTP 413 when the body
// exceeds the size limit set by RequestBodyLimit middleware; HTTP 400 for all
// other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
