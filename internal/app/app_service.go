package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ledgerdocs/internal/core"
)

// Store interfaces are declared here, where they are consumed. The concrete
// pgx-backed implementations live in core.

type DocumentStore interface {
	Insert(ctx context.Context, doc *core.Document) (*core.Document, error)
	GetByID(ctx context.Context, tenantID uuid.UUID, id int) (*core.Document, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]core.Document, error)
	UpdateClassification(ctx context.Context, tenantID uuid.UUID, id int, docType core.DocumentType, status core.DocumentStatus, extracted *core.ExtractedData) (*core.Document, error)
	Delete(ctx context.Context, tenantID uuid.UUID, id int) error
}

type JournalEntryStore interface {
	InsertForDocument(ctx context.Context, tenantID uuid.UUID, documentID int, createdBy uuid.UUID, drafts []core.EntryDraft) ([]core.JournalEntry, error)
	InsertManual(ctx context.Context, tenantID, createdBy uuid.UUID, drafts []core.EntryDraft) ([]core.JournalEntry, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]core.JournalEntry, error)
	ListBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]core.JournalEntry, error)
	ListByDocument(ctx context.Context, tenantID uuid.UUID, documentID int) ([]core.JournalEntry, error)
	Delete(ctx context.Context, tenantID uuid.UUID, id int) error
	DeleteByDocument(ctx context.Context, tenantID uuid.UUID, documentID int) (int64, error)
	DeleteGenerated(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

type StatementStore interface {
	Insert(ctx context.Context, stmt *core.FinancialStatement) (*core.FinancialStatement, error)
	Latest(ctx context.Context, tenantID uuid.UUID, statementType core.StatementType, period string) (*core.FinancialStatement, error)
}

type UserStore interface {
	Authenticate(ctx context.Context, username, password string) (*core.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*core.User, error)
}

type appService struct {
	documents  DocumentStore
	journal    JournalEntryStore
	statements StatementStore
	users      UserStore
	generator  *core.Generator
	logger     *slog.Logger
}

// NewService wires the orchestration layer over the given stores.
func NewService(documents DocumentStore, journal JournalEntryStore, statements StatementStore, users UserStore, generator *core.Generator, logger *slog.Logger) ApplicationService {
	return &appService{
		documents:  documents,
		journal:    journal,
		statements: statements,
		users:      users,
		generator:  generator,
		logger:     logger,
	}
}

func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*core.User, error) {
	return s.users.Authenticate(ctx, username, password)
}

func (s *appService) GetUser(ctx context.Context, id uuid.UUID) (*core.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *appService) CreateDocument(ctx context.Context, p Principal, req CreateDocumentRequest) (*core.Document, error) {
	if req.Extracted == nil && req.StatementText != "" {
		parsed := core.ParseBankStatement(req.StatementText)
		req.Extracted = &core.ExtractedData{Transactions: parsed.Transactions}
		if req.Type == "" {
			req.Type = core.DocTypeBankStatement
		}
	}

	docType := req.Type
	status := core.DocumentStatusClassified
	if docType == "" {
		docType = core.InferDocumentType(req.OriginalName)
	}
	if req.Extracted != nil {
		status = core.DocumentStatusExtracted
	}

	doc := &core.Document{
		TenantID:     p.TenantID,
		FileName:     req.FileName,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		FileSize:     req.FileSize,
		Type:         docType,
		Status:       status,
		Extracted:    req.Extracted,
		UploadedBy:   p.UserID,
	}
	created, err := s.documents.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "document created",
		"document_id", created.ID, "type", created.Type, "tenant_id", p.TenantID)
	return created, nil
}

func (s *appService) ListDocuments(ctx context.Context, p Principal) ([]core.Document, error) {
	return s.documents.List(ctx, p.TenantID)
}

func (s *appService) GetDocument(ctx context.Context, p Principal, id int) (*core.Document, error) {
	return s.documents.GetByID(ctx, p.TenantID, id)
}

// ClassifyDocument re-runs filename classification on a stored document and
// advances its status. A document with derived journal entries is immutable;
// reclassifying it would orphan the entries' account mapping.
func (s *appService) ClassifyDocument(ctx context.Context, p Principal, id int) (*core.Document, error) {
	doc, err := s.documents.GetByID(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}

	derived, err := s.journal.ListByDocument(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	if len(derived) > 0 {
		return nil, core.ErrDocumentHasEntries
	}

	docType := core.InferDocumentType(doc.OriginalName)
	status := core.DocumentStatusClassified
	if doc.Extracted != nil {
		status = core.DocumentStatusExtracted
	}
	return s.documents.UpdateClassification(ctx, p.TenantID, id, docType, status, doc.Extracted)
}

func (s *appService) DeleteDocument(ctx context.Context, p Principal, id int) error {
	return s.documents.Delete(ctx, p.TenantID, id)
}

// GenerateJournalEntries runs the generator over every source document in
// the tenant. Documents whose entries already exist are skipped via the
// store's atomic guard; individual failures are logged and skipped so one
// bad document never aborts the batch.
func (s *appService) GenerateJournalEntries(ctx context.Context, p Principal) (*GenerationResult, error) {
	docs, err := s.documents.List(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}

	result := &GenerationResult{Entries: []core.JournalEntry{}}
	for i := range docs {
		doc := &docs[i]
		if !isSourceType(doc.Type) {
			continue
		}

		drafts := s.generator.Generate(doc)
		if len(drafts) == 0 {
			continue
		}

		entries, err := s.journal.InsertForDocument(ctx, p.TenantID, doc.ID, p.UserID, drafts)
		if errors.Is(err, core.ErrAlreadyGenerated) {
			result.Skipped++
			continue
		}
		if err != nil {
			s.logger.WarnContext(ctx, "journal generation failed for document",
				"document_id", doc.ID, "error", err)
			result.Skipped++
			continue
		}

		result.Processed++
		result.Created += len(entries)
		result.Entries = append(result.Entries, entries...)
	}

	s.logger.InfoContext(ctx, "journal generation finished",
		"processed", result.Processed, "skipped", result.Skipped, "created", result.Created,
		"tenant_id", p.TenantID)
	return result, nil
}

func isSourceType(t core.DocumentType) bool {
	for _, st := range core.SourceDocumentTypes {
		if t == st {
			return true
		}
	}
	return false
}

func (s *appService) CreateManualEntries(ctx context.Context, p Principal, drafts []core.EntryDraft) ([]core.JournalEntry, error) {
	return s.journal.InsertManual(ctx, p.TenantID, p.UserID, drafts)
}

func (s *appService) ListJournalEntries(ctx context.Context, p Principal, period string) ([]core.JournalEntry, error) {
	return s.entriesForPeriod(ctx, p.TenantID, period)
}

func (s *appService) DeleteJournalEntry(ctx context.Context, p Principal, id int) error {
	return s.journal.Delete(ctx, p.TenantID, id)
}

func (s *appService) DeleteDocumentEntries(ctx context.Context, p Principal, documentID int) (int64, error) {
	if _, err := s.documents.GetByID(ctx, p.TenantID, documentID); err != nil {
		return 0, err
	}
	return s.journal.DeleteByDocument(ctx, p.TenantID, documentID)
}

func (s *appService) DeleteGeneratedEntries(ctx context.Context, p Principal) (int64, error) {
	return s.journal.DeleteGenerated(ctx, p.TenantID)
}

// GenerateStatement builds a fresh statement of the requested type from the
// current data and persists the snapshot. Ledger statements read journal
// entries; statutory returns read document payloads directly.
func (s *appService) GenerateStatement(ctx context.Context, p Principal, statementType core.StatementType, period string) (*core.FinancialStatement, error) {
	var payload any
	valid := true

	switch statementType {
	case core.StatementTrialBalance, core.StatementProfitLoss, core.StatementBalanceSheet, core.StatementCashFlow:
		entries, err := s.entriesForPeriod(ctx, p.TenantID, period)
		if err != nil {
			return nil, err
		}
		switch statementType {
		case core.StatementTrialBalance:
			tb := core.BuildTrialBalance(entries)
			payload, valid = tb, tb.IsBalanced
		case core.StatementProfitLoss:
			payload = core.BuildProfitLoss(entries)
		case core.StatementBalanceSheet:
			bs := core.BuildBalanceSheet(entries)
			payload, valid = bs, bs.IsBalanced
		case core.StatementCashFlow:
			payload = core.BuildCashFlow(entries)
		}

	case core.StatementGSTR2A, core.StatementGSTR3B, core.StatementForm26Q, core.StatementDepreciation:
		docs, err := s.documents.List(ctx, p.TenantID)
		if err != nil {
			return nil, err
		}
		switch statementType {
		case core.StatementGSTR2A:
			payload = core.BuildGSTR2A(docs)
		case core.StatementGSTR3B:
			payload = core.BuildGSTR3B(docs)
		case core.StatementForm26Q:
			payload = core.BuildForm26Q(docs)
		case core.StatementDepreciation:
			payload = core.BuildDepreciationSchedule(docs)
		}

	default:
		return nil, fmt.Errorf("unsupported statement type %q", statementType)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal statement payload: %w", err)
	}

	stmt := &core.FinancialStatement{
		TenantID:    p.TenantID,
		Type:        statementType,
		Period:      period,
		Data:        data,
		IsValid:     valid,
		GeneratedBy: p.UserID,
	}
	saved, err := s.statements.Insert(ctx, stmt)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "statement generated",
		"type", statementType, "period", period, "valid", valid, "tenant_id", p.TenantID)
	return saved, nil
}

func (s *appService) LatestStatement(ctx context.Context, p Principal, statementType core.StatementType, period string) (*core.FinancialStatement, error) {
	return s.statements.Latest(ctx, p.TenantID, statementType, period)
}

// entriesForPeriod lists entries for a "YYYY-MM" period, or every entry when
// the period is empty.
func (s *appService) entriesForPeriod(ctx context.Context, tenantID uuid.UUID, period string) ([]core.JournalEntry, error) {
	if period == "" {
		return s.journal.List(ctx, tenantID)
	}
	from, err := time.Parse("2006-01", period)
	if err != nil {
		return nil, fmt.Errorf("invalid period %q, want YYYY-MM", period)
	}
	return s.journal.ListBetween(ctx, tenantID, from, from.AddDate(0, 1, 0))
}
