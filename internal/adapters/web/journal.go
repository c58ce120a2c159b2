package web

import (
	"encoding/csv"
	"net/http"

	"ledgerdocs/internal/core"
)

// generateJournalEntries handles POST /api/journal-entries/generate. It runs
// the generator across every unprocessed source document in the tenant.
func (h *Handler) generateJournalEntries(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	result, err := h.svc.GenerateJournalEntries(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createManualEntries handles POST /api/journal-entries.
func (h *Handler) createManualEntries(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req struct {
		Entries []core.EntryDraft `json:"entries"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Entries) == 0 {
		writeError(w, r, "entries are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	for _, d := range req.Entries {
		if d.AccountCode == "" {
			writeError(w, r, "account_code is required on every entry", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		if d.Debit.IsNegative() || d.Credit.IsNegative() {
			writeError(w, r, "debit and credit amounts must be non-negative", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		if d.Debit.IsPositive() && d.Credit.IsPositive() {
			writeError(w, r, "an entry may carry a debit or a credit, not both", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	entries, err := h.svc.CreateManualEntries(r.Context(), p, req.Entries)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, entries)
}

// listJournalEntries handles GET /api/journal-entries?period=YYYY-MM.
func (h *Handler) listJournalEntries(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.ListJournalEntries(r.Context(), p, r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if entries == nil {
		entries = []core.JournalEntry{}
	}
	writeJSON(w, entries)
}

// downloadJournalEntries handles GET /api/journal-entries/download?format=csv|json.
func (h *Handler) downloadJournalEntries(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.ListJournalEntries(r.Context(), p, r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Disposition", `attachment; filename="journal-entries.json"`)
		writeJSON(w, entries)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="journal-entries.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Journal ID", "Date", "Account Code", "Account Name", "Debit", "Credit", "Narration", "Entity"})
	for _, e := range entries {
		_ = cw.Write([]string{
			csvSafe(e.JournalID),
			e.Date.Format("2006-01-02"),
			e.AccountCode,
			csvSafe(e.AccountName),
			e.Debit.StringFixed(2),
			e.Credit.StringFixed(2),
			csvSafe(e.Narration),
			csvSafe(e.Entity),
		})
	}
	cw.Flush()
}

// deleteJournalEntry handles DELETE /api/journal-entries/{id}.
func (h *Handler) deleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteJournalEntry(r.Context(), p, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteGeneratedEntries handles DELETE /api/journal-entries. Only
// document-derived entries are removed; manual entries stay.
func (h *Handler) deleteGeneratedEntries(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.DeleteGeneratedEntries(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	type response struct {
		Deleted int64 `json:"deleted"`
	}
	writeJSON(w, response{Deleted: deleted})
}

// csvSafe prevents CSV formula injection by prefixing cells that begin with a
// formula-triggering character with a single quote.
func csvSafe(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
