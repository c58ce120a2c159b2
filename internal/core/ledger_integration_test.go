package core_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"ledgerdocs/internal/core"
)

var (
	testTenantID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testUserID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed test DB
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE financial_statements, journal_entries, documents, users, tenants CASCADE;

		INSERT INTO tenants (id, name) VALUES ('11111111-1111-1111-1111-111111111111', 'Test Tenant');

		INSERT INTO users (id, tenant_id, username, email, password_hash, role) VALUES
		('22222222-2222-2222-2222-222222222222', '11111111-1111-1111-1111-111111111111',
		 'tester', 'tester@example.com', '$2a$10$abcdefghijklmnopqrstuv', 'accountant');
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func seedVendorInvoiceDocument(t *testing.T, pool *pgxpool.Pool) *core.Document {
	t.Helper()
	store := core.NewDocumentStore(pool)
	doc, err := store.Insert(context.Background(), &core.Document{
		TenantID:     testTenantID,
		FileName:     "upload-1.pdf",
		OriginalName: "vendor-invoice-abc.pdf",
		MimeType:     "application/pdf",
		FileSize:     1024,
		Type:         core.DocTypeVendorInvoice,
		Status:       core.DocumentStatusExtracted,
		Extracted: &core.ExtractedData{
			Invoices: []core.InvoiceRecord{
				{InvoiceNumber: "ABC-001", VendorName: "ABC Corp", Amount: amt("125000")},
			},
		},
		UploadedBy: testUserID,
	})
	if err != nil {
		t.Fatalf("Failed to insert document: %v", err)
	}
	return doc
}

func TestJournalGeneration_DuplicateGuard(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	doc := seedVendorInvoiceDocument(t, pool)
	journal := core.NewJournalEntryStore(pool)
	drafts := core.NewGenerator().Generate(doc)

	entries, err := journal.InsertForDocument(ctx, testTenantID, doc.ID, testUserID, drafts)
	if err != nil {
		t.Fatalf("First generation failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	// A second run for the same document must be rejected, not duplicated.
	_, err = journal.InsertForDocument(ctx, testTenantID, doc.ID, testUserID, drafts)
	if !errors.Is(err, core.ErrAlreadyGenerated) {
		t.Fatalf("Expected ErrAlreadyGenerated, got %v", err)
	}

	all, err := journal.List(ctx, testTenantID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 entries after duplicate attempt, got %d", len(all))
	}
}

func TestJournalGeneration_ManualEntriesSurviveDeleteGenerated(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	doc := seedVendorInvoiceDocument(t, pool)
	journal := core.NewJournalEntryStore(pool)

	if _, err := journal.InsertForDocument(ctx, testTenantID, doc.ID, testUserID, core.NewGenerator().Generate(doc)); err != nil {
		t.Fatalf("Generation failed: %v", err)
	}

	manual := []core.EntryDraft{
		{JournalID: "MAN-1_DR", AccountCode: "5100", AccountName: "Vendor Expenses", Debit: decimal.NewFromInt(10)},
		{JournalID: "MAN-1_CR", AccountCode: "1000", AccountName: "Bank Account", Credit: decimal.NewFromInt(10)},
	}
	if _, err := journal.InsertManual(ctx, testTenantID, testUserID, manual); err != nil {
		t.Fatalf("Manual insert failed: %v", err)
	}

	deleted, err := journal.DeleteGenerated(ctx, testTenantID)
	if err != nil {
		t.Fatalf("DeleteGenerated failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 generated entries deleted, got %d", deleted)
	}

	remaining, err := journal.List(ctx, testTenantID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("Expected 2 manual entries to survive, got %d", len(remaining))
	}
	for _, e := range remaining {
		if e.DocumentID != nil {
			t.Errorf("Manual entry %s unexpectedly carries a document id", e.JournalID)
		}
	}
}

func TestTrialBalance_FromPersistedEntries(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	doc := seedVendorInvoiceDocument(t, pool)
	journal := core.NewJournalEntryStore(pool)

	if _, err := journal.InsertForDocument(ctx, testTenantID, doc.ID, testUserID, core.NewGenerator().Generate(doc)); err != nil {
		t.Fatalf("Generation failed: %v", err)
	}

	entries, err := journal.List(ctx, testTenantID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	tb := core.BuildTrialBalance(entries)
	want := decimal.NewFromInt(125000)
	if !tb.TotalDebits.Equal(want) || !tb.TotalCredits.Equal(want) {
		t.Errorf("Trial balance totals = %s/%s, want %s", tb.TotalDebits, tb.TotalCredits, want)
	}
	if !tb.IsBalanced {
		t.Error("Trial balance over generated entries must balance")
	}
}
