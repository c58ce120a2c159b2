// Package app is the orchestration layer between the web adapter and the
// core domain. It owns request-scoped workflows: document intake, journal
// generation, and statement assembly.
package app

import (
	"context"

	"github.com/google/uuid"

	"ledgerdocs/internal/core"
)

// Principal identifies the authenticated caller. Tenant scoping always comes
// from the principal, never from request payloads.
type Principal struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Role     string
}

// CreateDocumentRequest carries uploaded document metadata and its extracted
// payload. StatementText is raw bank statement text; when no extracted
// payload is supplied it is parsed into the document's transaction list.
type CreateDocumentRequest struct {
	FileName      string              `json:"file_name"`
	OriginalName  string              `json:"original_name"`
	MimeType      string              `json:"mime_type"`
	FileSize      int64               `json:"file_size"`
	Type          core.DocumentType   `json:"document_type"`
	Extracted     *core.ExtractedData `json:"extracted_data"`
	StatementText string              `json:"statement_text"`
}

// GenerationResult summarizes one generation run across the tenant's source
// documents. Skipped counts documents that already had entries or failed
// individually; a non-zero skipped never means the batch failed.
type GenerationResult struct {
	Processed int                 `json:"processed"`
	Skipped   int                 `json:"skipped"`
	Created   int                 `json:"created"`
	Entries   []core.JournalEntry `json:"entries"`
}

// ApplicationService is the complete surface the web adapter calls.
type ApplicationService interface {
	AuthenticateUser(ctx context.Context, username, password string) (*core.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*core.User, error)

	CreateDocument(ctx context.Context, p Principal, req CreateDocumentRequest) (*core.Document, error)
	ListDocuments(ctx context.Context, p Principal) ([]core.Document, error)
	GetDocument(ctx context.Context, p Principal, id int) (*core.Document, error)
	ClassifyDocument(ctx context.Context, p Principal, id int) (*core.Document, error)
	DeleteDocument(ctx context.Context, p Principal, id int) error

	GenerateJournalEntries(ctx context.Context, p Principal) (*GenerationResult, error)
	CreateManualEntries(ctx context.Context, p Principal, drafts []core.EntryDraft) ([]core.JournalEntry, error)
	ListJournalEntries(ctx context.Context, p Principal, period string) ([]core.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, p Principal, id int) error
	DeleteDocumentEntries(ctx context.Context, p Principal, documentID int) (int64, error)
	DeleteGeneratedEntries(ctx context.Context, p Principal) (int64, error)

	GenerateStatement(ctx context.Context, p Principal, statementType core.StatementType, period string) (*core.FinancialStatement, error)
	LatestStatement(ctx context.Context, p Principal, statementType core.StatementType, period string) (*core.FinancialStatement, error)
}
