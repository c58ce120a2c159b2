package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ledgerdocs/internal/db"
)

// DocumentStore persists documents and their extracted payloads. Every query
// is tenant scoped; a document belonging to another tenant is indistinguishable
// from one that does not exist.
type DocumentStore struct {
	db db.Querier
}

func NewDocumentStore(q db.Querier) *DocumentStore {
	return &DocumentStore{db: q}
}

const documentColumns = `id, tenant_id, file_name, original_name, mime_type, file_size,
	document_type, status, extracted_data, uploaded_by, created_at`

// Insert stores a new document and returns it with its assigned id.
func (s *DocumentStore) Insert(ctx context.Context, doc *Document) (*Document, error) {
	extracted, err := marshalExtracted(doc.Extracted)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO documents (tenant_id, file_name, original_name, mime_type, file_size,
			document_type, status, extracted_data, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+documentColumns,
		doc.TenantID, doc.FileName, doc.OriginalName, doc.MimeType, doc.FileSize,
		doc.Type, doc.Status, extracted, doc.UploadedBy,
	)
	return scanDocument(row)
}

// GetByID fetches one document within the tenant.
func (s *DocumentStore) GetByID(ctx context.Context, tenantID uuid.UUID, id int) (*Document, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	return doc, err
}

// List returns all of the tenant's documents, newest first.
func (s *DocumentStore) List(ctx context.Context, tenantID uuid.UUID) ([]Document, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE tenant_id = $1 ORDER BY created_at DESC, id DESC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// UpdateClassification records a document's type, status, and extracted
// payload after classification.
func (s *DocumentStore) UpdateClassification(ctx context.Context, tenantID uuid.UUID, id int, docType DocumentType, status DocumentStatus, extracted *ExtractedData) (*Document, error) {
	payload, err := marshalExtracted(extracted)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		UPDATE documents
		SET document_type = $1, status = $2, extracted_data = $3
		WHERE id = $4 AND tenant_id = $5
		RETURNING `+documentColumns,
		docType, status, payload, id, tenantID,
	)
	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	return doc, err
}

// Delete removes a document within the tenant.
func (s *DocumentStore) Delete(ctx context.Context, tenantID uuid.UUID, id int) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM documents WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func marshalExtracted(extracted *ExtractedData) ([]byte, error) {
	if extracted == nil {
		return nil, nil
	}
	payload, err := json.Marshal(extracted)
	if err != nil {
		return nil, fmt.Errorf("marshal extracted data: %w", err)
	}
	return payload, nil
}

func scanDocument(row pgx.Row) (*Document, error) {
	var doc Document
	var extracted []byte
	err := row.Scan(
		&doc.ID, &doc.TenantID, &doc.FileName, &doc.OriginalName, &doc.MimeType,
		&doc.FileSize, &doc.Type, &doc.Status, &extracted, &doc.UploadedBy, &doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(extracted) > 0 {
		var data ExtractedData
		if err := json.Unmarshal(extracted, &data); err != nil {
			return nil, fmt.Errorf("decode extracted data: %w", err)
		}
		doc.Extracted = &data
	}
	return &doc, nil
}
