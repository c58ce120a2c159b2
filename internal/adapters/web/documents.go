package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ledgerdocs/internal/app"
	"ledgerdocs/internal/core"
)

// principal returns the caller's Principal, writing a 401 when it is missing.
func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (app.Principal, bool) {
	p, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return app.Principal{}, false
	}
	return p, true
}

// idParam parses the {id} URL parameter.
func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, "invalid id", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeServiceError maps domain sentinels to HTTP status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrDocumentNotFound):
		writeError(w, r, "document not found", "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrEntryNotFound):
		writeError(w, r, "journal entry not found", "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrAlreadyGenerated):
		writeError(w, r, "journal entries already generated", "CONFLICT", http.StatusConflict)
	case errors.Is(err, core.ErrDocumentHasEntries):
		writeError(w, r, "document already has journal entries", "CONFLICT", http.StatusConflict)
	default:
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}

// createDocument handles POST /api/documents.
func (h *Handler) createDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req app.CreateDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OriginalName == "" {
		writeError(w, r, "original_name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	doc, err := h.svc.CreateDocument(r.Context(), p, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, doc)
}

// listDocuments handles GET /api/documents.
func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	docs, err := h.svc.ListDocuments(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if docs == nil {
		docs = []core.Document{}
	}
	writeJSON(w, docs)
}

// getDocument handles GET /api/documents/{id}.
func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.GetDocument(r.Context(), p, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, doc)
}

// classifyDocument handles POST /api/documents/{id}/classify.
func (h *Handler) classifyDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.ClassifyDocument(r.Context(), p, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, doc)
}

// deleteDocument handles DELETE /api/documents/{id}.
func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteDocument(r.Context(), p, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteDocumentEntries handles DELETE /api/documents/{id}/journal-entries.
func (h *Handler) deleteDocumentEntries(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.DeleteDocumentEntries(r.Context(), p, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	type response struct {
		Deleted int64 `json:"deleted"`
	}
	writeJSON(w, response{Deleted: deleted})
}
