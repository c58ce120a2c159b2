package core

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentType classifies an uploaded source document. The generator and the
// return builders dispatch on this value.
type DocumentType string

const (
	DocTypeVendorInvoice      DocumentType = "vendor_invoice"
	DocTypeSalesRegister      DocumentType = "sales_register"
	DocTypeSalaryRegister     DocumentType = "salary_register"
	DocTypeBankStatement      DocumentType = "bank_statement"
	DocTypePurchaseRegister   DocumentType = "purchase_register"
	DocTypeJournal            DocumentType = "journal"
	DocTypeTrialBalance       DocumentType = "trial_balance"
	DocTypeFixedAssetRegister DocumentType = "fixed_asset_register"
	DocTypeOther              DocumentType = "other"
)

// SourceDocumentTypes are the document types journal entries are derived from.
var SourceDocumentTypes = []DocumentType{
	DocTypeVendorInvoice,
	DocTypeSalesRegister,
	DocTypeBankStatement,
	DocTypePurchaseRegister,
}

// DocumentStatus tracks a document through its processing lifecycle.
type DocumentStatus string

const (
	DocumentStatusUploaded   DocumentStatus = "uploaded"
	DocumentStatusClassified DocumentStatus = "classified"
	DocumentStatusExtracted  DocumentStatus = "extracted"
)

// Document is one uploaded source file with its classification and the
// structured payload extracted from it. A document is never mutated after
// journal entries have been derived from it.
type Document struct {
	ID           int            `json:"id"`
	TenantID     uuid.UUID      `json:"tenant_id"`
	FileName     string         `json:"file_name"`
	OriginalName string         `json:"original_name"`
	MimeType     string         `json:"mime_type"`
	FileSize     int64          `json:"file_size"`
	Type         DocumentType   `json:"document_type"`
	Status       DocumentStatus `json:"status"`
	Extracted    *ExtractedData `json:"extracted_data,omitempty"`
	UploadedBy   uuid.UUID      `json:"uploaded_by"`
	CreatedAt    time.Time      `json:"created_at"`
}

// EntryDraft is one generated journal row before persistence. Drafts carry no
// database identifier or tenant; the store attaches those on insert.
type EntryDraft struct {
	JournalID   string          `json:"journal_id"`
	Date        time.Time       `json:"date"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Debit       decimal.Decimal `json:"debit_amount"`
	Credit      decimal.Decimal `json:"credit_amount"`
	Narration   string          `json:"narration"`
	Entity      string          `json:"entity"`
}

// JournalEntry is one persisted row of the double-entry ledger. Entries are
// immutable once written; corrections happen through deletion and
// regeneration, never updates.
type JournalEntry struct {
	ID          int             `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	DocumentID  *int            `json:"document_id,omitempty"`
	JournalID   string          `json:"journal_id"`
	Date        time.Time       `json:"date"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Debit       decimal.Decimal `json:"debit_amount"`
	Credit      decimal.Decimal `json:"credit_amount"`
	Narration   string          `json:"narration"`
	Entity      string          `json:"entity"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StatementType identifies a generated financial statement or return.
type StatementType string

const (
	StatementTrialBalance StatementType = "trial_balance"
	StatementProfitLoss   StatementType = "profit_loss"
	StatementBalanceSheet StatementType = "balance_sheet"
	StatementCashFlow     StatementType = "cash_flow"
	StatementGSTR2A       StatementType = "gstr_2a"
	StatementGSTR3B       StatementType = "gstr_3b"
	StatementForm26Q      StatementType = "form_26q"
	StatementDepreciation StatementType = "depreciation_schedule"
)

// FinancialStatement is one generated report snapshot. Statements are never
// updated in place; each generation request produces a fresh record from the
// journal-entry set current at that moment.
type FinancialStatement struct {
	ID          int             `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	Type        StatementType   `json:"statement_type"`
	Period      string          `json:"period"`
	Data        json.RawMessage `json:"data"`
	IsValid     bool            `json:"is_valid"`
	GeneratedBy uuid.UUID       `json:"generated_by"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// User is an authenticated system user scoped to a tenant.
type User struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
