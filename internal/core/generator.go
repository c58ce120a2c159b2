package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Generator derives balanced double-entry drafts from classified documents.
// It is pure given its two hooks: now supplies the processing date for
// records with no usable date, and newID supplies journal id roots. Both are
// injectable so generation is deterministic under test.
type Generator struct {
	now   func() time.Time
	newID func() string
}

// NewGenerator returns a Generator using the wall clock and random UUID roots.
func NewGenerator() *Generator {
	return &Generator{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// NewGeneratorWithHooks returns a Generator with explicit clock and id hooks.
func NewGeneratorWithHooks(now func() time.Time, newID func() string) *Generator {
	return &Generator{now: now, newID: newID}
}

// Generate produces the journal drafts for one document. Unknown document
// types and payloads of the wrong shape yield an empty slice, never an error:
// a document the mapping table does not cover is simply not a journal source.
func (g *Generator) Generate(doc *Document) []EntryDraft {
	if doc == nil || doc.Extracted == nil {
		return nil
	}

	switch doc.Type {
	case DocTypeVendorInvoice:
		return g.fromVendorInvoices(doc.Extracted.InvoiceLines())
	case DocTypeSalesRegister:
		return g.fromSales(doc.Extracted.Sales)
	case DocTypePurchaseRegister:
		return g.fromPurchases(doc.Extracted.Purchases)
	case DocTypeBankStatement:
		return g.fromBankTransactions(doc.Extracted.Transactions)
	default:
		return nil
	}
}

func (g *Generator) fromVendorInvoices(invoices []InvoiceRecord) []EntryDraft {
	drafts := make([]EntryDraft, 0, 2*len(invoices))
	for _, inv := range invoices {
		amount := inv.Amount.Decimal
		if amount.IsZero() {
			amount = inv.TotalAmount.Decimal
		}

		number := inv.InvoiceNumber
		if number == "" {
			number = "N/A"
		}
		vendor := inv.VendorName
		if vendor == "" {
			vendor = "Unknown Vendor"
		}

		date := inv.InvoiceDate.Time
		if date.IsZero() {
			date = inv.Date.Time
		}
		if date.IsZero() {
			date = g.now()
		}

		narration := fmt.Sprintf("Vendor Invoice - %s - %s", number, vendor)
		drafts = append(drafts, g.pair(date, pairSpec{
			debitCode:  AccountVendorExpense,
			creditCode: AccountPayable,
			amount:     amount,
			narration:  narration,
			entity:     vendor,
		})...)
	}
	return drafts
}

func (g *Generator) fromSales(sales []SaleRecord) []EntryDraft {
	drafts := make([]EntryDraft, 0, 2*len(sales))
	for _, sale := range sales {
		amount := sale.TotalAmount.Decimal
		if amount.IsZero() {
			amount = sale.Amount.Decimal
		}

		number := sale.InvoiceNumber
		if number == "" {
			number = "N/A"
		}
		customer := sale.CustomerName
		if customer == "" {
			customer = "Unknown Customer"
		}

		date := sale.SaleDate.Time
		if date.IsZero() {
			date = sale.InvoiceDate.Time
		}
		if date.IsZero() {
			date = g.now()
		}

		narration := fmt.Sprintf("Sales Invoice - %s - %s", number, customer)
		drafts = append(drafts, g.pair(date, pairSpec{
			debitCode:  AccountReceivable,
			creditCode: AccountSalesRevenue,
			amount:     amount,
			narration:  narration,
			entity:     customer,
		})...)
	}
	return drafts
}

func (g *Generator) fromPurchases(purchases []PurchaseRecord) []EntryDraft {
	drafts := make([]EntryDraft, 0, 2*len(purchases))
	for _, p := range purchases {
		amount := p.Amount.Decimal
		if amount.IsZero() {
			amount = p.TotalAmount.Decimal
		}

		order := p.PurchaseOrder
		if order == "" {
			order = "N/A"
		}
		vendor := p.VendorName
		if vendor == "" {
			vendor = "Unknown Vendor"
		}

		date := p.PurchaseDate.Time
		if date.IsZero() {
			date = g.now()
		}

		narration := fmt.Sprintf("Purchase - %s - %s", order, vendor)
		drafts = append(drafts, g.pair(date, pairSpec{
			debitCode:  AccountInventory,
			creditCode: AccountPayable,
			amount:     amount,
			narration:  narration,
			entity:     vendor,
		})...)
	}
	return drafts
}

// fromBankTransactions emits one balanced pair per movement direction, so a
// transaction carrying both a debit and a credit produces four rows.
func (g *Generator) fromBankTransactions(txns []BankTransaction) []EntryDraft {
	drafts := make([]EntryDraft, 0, 2*len(txns))
	for _, txn := range txns {
		date := txn.Date.Time
		if date.IsZero() {
			date = g.now()
		}

		if txn.Debit.IsPositive() {
			drafts = append(drafts, g.pair(date, pairSpec{
				debitCode:  AccountBankCharges,
				creditCode: AccountBank,
				amount:     txn.Debit.Decimal,
				narration:  bankNarration(txn.Description, "Bank Debit"),
				entity:     "Bank",
			})...)
		}
		if txn.Credit.IsPositive() {
			drafts = append(drafts, g.pair(date, pairSpec{
				debitCode:  AccountBank,
				creditCode: AccountOtherIncome,
				amount:     txn.Credit.Decimal,
				narration:  bankNarration(txn.Description, "Bank Credit"),
				entity:     "Bank",
			})...)
		}
	}
	return drafts
}

// bankNarration substitutes a direction-specific placeholder when the
// transaction carries no description.
func bankNarration(description, fallback string) string {
	if description == "" {
		description = fallback
	}
	return fmt.Sprintf("Bank Transaction - %s", description)
}

type pairSpec struct {
	debitCode  string
	creditCode string
	amount     decimal.Decimal
	narration  string
	entity     string
}

// pair emits the two rows of one balanced posting. Both rows share a journal
// id root, suffixed _DR and _CR.
func (g *Generator) pair(date time.Time, spec pairSpec) []EntryDraft {
	root := g.newID()
	return []EntryDraft{
		{
			JournalID:   root + "_DR",
			Date:        date,
			AccountCode: spec.debitCode,
			AccountName: AccountName(spec.debitCode),
			Debit:       spec.amount,
			Credit:      decimal.Zero,
			Narration:   spec.narration,
			Entity:      spec.entity,
		},
		{
			JournalID:   root + "_CR",
			Date:        date,
			AccountCode: spec.creditCode,
			AccountName: AccountName(spec.creditCode),
			Debit:       decimal.Zero,
			Credit:      spec.amount,
			Narration:   spec.narration,
			Entity:      spec.entity,
		},
	}
}
