package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ledgerdocs/internal/db"
)

// JournalEntryStore persists journal entries. Entries are insert-only;
// the only mutations are deletions.
type JournalEntryStore struct {
	db db.Querier
}

func NewJournalEntryStore(q db.Querier) *JournalEntryStore {
	return &JournalEntryStore{db: q}
}

const journalColumns = `id, tenant_id, document_id, journal_id, entry_date, account_code,
	account_name, debit_amount, credit_amount, narration, entity, created_by, created_at`

// InsertForDocument persists the drafts generated from one document. The
// existence check and the inserts run in a single transaction with the
// document row locked, so two concurrent generation requests for the same
// document cannot both insert: the second sees the first's rows and gets
// ErrAlreadyGenerated. Returns ErrDocumentNotFound when the document does
// not exist within the tenant.
func (s *JournalEntryStore) InsertForDocument(ctx context.Context, tenantID uuid.UUID, documentID int, createdBy uuid.UUID, drafts []EntryDraft) ([]JournalEntry, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var lockedID int
	err = tx.QueryRow(ctx,
		`SELECT id FROM documents WHERE id = $1 AND tenant_id = $2 FOR UPDATE`,
		documentID, tenantID,
	).Scan(&lockedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock document: %w", err)
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM journal_entries WHERE document_id = $1 AND tenant_id = $2)`,
		documentID, tenantID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check existing entries: %w", err)
	}
	if exists {
		return nil, ErrAlreadyGenerated
	}

	entries, err := insertDrafts(ctx, tx, tenantID, &documentID, createdBy, drafts)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit journal entries: %w", err)
	}
	return entries, nil
}

// InsertManual persists drafts with no source document. Manual entries are
// never subject to the duplicate-generation guard.
func (s *JournalEntryStore) InsertManual(ctx context.Context, tenantID, createdBy uuid.UUID, drafts []EntryDraft) ([]JournalEntry, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	entries, err := insertDrafts(ctx, tx, tenantID, nil, createdBy, drafts)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit journal entries: %w", err)
	}
	return entries, nil
}

func insertDrafts(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, documentID *int, createdBy uuid.UUID, drafts []EntryDraft) ([]JournalEntry, error) {
	entries := make([]JournalEntry, 0, len(drafts))
	for _, d := range drafts {
		row := tx.QueryRow(ctx, `
			INSERT INTO journal_entries (tenant_id, document_id, journal_id, entry_date,
				account_code, account_name, debit_amount, credit_amount, narration, entity, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING `+journalColumns,
			tenantID, documentID, d.JournalID, d.Date, d.AccountCode, d.AccountName,
			d.Debit, d.Credit, d.Narration, d.Entity, createdBy,
		)
		entry, err := scanJournalEntry(row)
		if err != nil {
			return nil, fmt.Errorf("insert journal entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// List returns all of the tenant's entries ordered by date then id.
func (s *JournalEntryStore) List(ctx context.Context, tenantID uuid.UUID) ([]JournalEntry, error) {
	return s.list(ctx,
		`SELECT `+journalColumns+` FROM journal_entries WHERE tenant_id = $1 ORDER BY entry_date, id`,
		tenantID,
	)
}

// ListBetween returns the tenant's entries with dates in [from, to).
func (s *JournalEntryStore) ListBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]JournalEntry, error) {
	return s.list(ctx,
		`SELECT `+journalColumns+` FROM journal_entries
		WHERE tenant_id = $1 AND entry_date >= $2 AND entry_date < $3
		ORDER BY entry_date, id`,
		tenantID, from, to,
	)
}

// ListByDocument returns the entries generated from one document.
func (s *JournalEntryStore) ListByDocument(ctx context.Context, tenantID uuid.UUID, documentID int) ([]JournalEntry, error) {
	return s.list(ctx,
		`SELECT `+journalColumns+` FROM journal_entries
		WHERE tenant_id = $1 AND document_id = $2
		ORDER BY entry_date, id`,
		tenantID, documentID,
	)
}

func (s *JournalEntryStore) list(ctx context.Context, sql string, args ...any) ([]JournalEntry, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Delete removes one entry within the tenant.
func (s *JournalEntryStore) Delete(ctx context.Context, tenantID uuid.UUID, id int) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM journal_entries WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// DeleteByDocument removes all entries generated from one document and
// returns how many were removed.
func (s *JournalEntryStore) DeleteByDocument(ctx context.Context, tenantID uuid.UUID, documentID int) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM journal_entries WHERE tenant_id = $1 AND document_id = $2`,
		tenantID, documentID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete journal entries for document: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteGenerated removes every document-derived entry in the tenant. Manual
// entries, which carry no document id, are untouched.
func (s *JournalEntryStore) DeleteGenerated(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM journal_entries WHERE tenant_id = $1 AND document_id IS NOT NULL`,
		tenantID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete generated journal entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanJournalEntry(row pgx.Row) (*JournalEntry, error) {
	var e JournalEntry
	err := row.Scan(
		&e.ID, &e.TenantID, &e.DocumentID, &e.JournalID, &e.Date, &e.AccountCode,
		&e.AccountName, &e.Debit, &e.Credit, &e.Narration, &e.Entity, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
