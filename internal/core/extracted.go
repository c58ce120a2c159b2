package core

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a decimal that tolerates the loose shapes extracted payloads
// arrive in: JSON numbers, numeric strings with currency noise ("Rs. 1,250.00"),
// null, or the empty string. Anything unparseable decodes to zero rather than
// failing the document.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	s := string(data)
	if s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "Rs")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// DateValue accepts the date formats seen in extracted payloads: RFC 3339,
// plain YYYY-MM-DD, and DD-MM-YYYY. A missing or unparseable date decodes to
// the zero time; callers substitute the processing date.
type DateValue struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "02-01-2006", "02/01/2006"}

func (d *DateValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	d.Time = time.Time{}
	return nil
}

func (d DateValue) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}

// InvoiceRecord is one vendor invoice line from an extracted payload.
type InvoiceRecord struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	VendorName    string    `json:"vendorName"`
	InvoiceDate   DateValue `json:"invoiceDate"`
	Date          DateValue `json:"date"`
	Amount        Amount    `json:"amount"`
	TotalAmount   Amount    `json:"totalAmount"`
	GSTIN         string    `json:"gstin"`
	TaxableValue  Amount    `json:"taxableValue"`
	CGST          Amount    `json:"cgst"`
	SGST          Amount    `json:"sgst"`
	IGST          Amount    `json:"igst"`
	TotalTax      Amount    `json:"totalTax"`
}

// SaleRecord is one sales register line.
type SaleRecord struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	CustomerName  string    `json:"customerName"`
	SaleDate      DateValue `json:"saleDate"`
	InvoiceDate   DateValue `json:"invoiceDate"`
	TotalAmount   Amount    `json:"totalAmount"`
	Amount        Amount    `json:"amount"`
	GSTIN         string    `json:"gstin"`
}

// PurchaseRecord is one purchase register line.
type PurchaseRecord struct {
	PurchaseOrder string    `json:"purchaseOrder"`
	VendorName    string    `json:"vendorName"`
	PurchaseDate  DateValue `json:"purchaseDate"`
	Amount        Amount    `json:"amount"`
	TotalAmount   Amount    `json:"totalAmount"`
	GSTIN         string    `json:"gstin"`
	TaxableValue  Amount    `json:"taxableValue"`
	CGST          Amount    `json:"cgst"`
	SGST          Amount    `json:"sgst"`
	IGST          Amount    `json:"igst"`
	TotalTax      Amount    `json:"totalTax"`
}

// BankTransaction is one statement line. Debit and credit are both
// non-negative; a line may carry either or both.
type BankTransaction struct {
	Date        DateValue `json:"date"`
	Description string    `json:"description"`
	Reference   string    `json:"reference"`
	Debit       Amount    `json:"debit"`
	Credit      Amount    `json:"credit"`
	Balance     Amount    `json:"balance"`
}

// SalaryRecord is one salary register line, the input to Form 26Q.
type SalaryRecord struct {
	EmployeeName string `json:"employeeName"`
	PAN          string `json:"pan"`
	GrossSalary  Amount `json:"grossSalary"`
	TDSDeducted  Amount `json:"tdsDeducted"`
	Month        string `json:"month"`
}

// AssetRecord is one fixed asset register line, the input to the
// depreciation schedule.
type AssetRecord struct {
	AssetName       string    `json:"assetName"`
	PurchaseDate    DateValue `json:"purchaseDate"`
	Cost            Amount    `json:"cost"`
	UsefulLifeYears int       `json:"usefulLifeYears"`
	ResidualValue   Amount    `json:"residualValue"`
}

// ExtractedData is the structured payload extracted from a document. Exactly
// one variant is populated, matching the document type; the generator and the
// return builders read only the variant they expect and ignore the rest.
type ExtractedData struct {
	Invoices     []InvoiceRecord   `json:"invoices,omitempty"`
	Sales        []SaleRecord      `json:"sales,omitempty"`
	Purchases    []PurchaseRecord  `json:"purchases,omitempty"`
	Transactions []BankTransaction `json:"transactions,omitempty"`
	Salaries     []SalaryRecord    `json:"salaries,omitempty"`
	Assets       []AssetRecord     `json:"assets,omitempty"`

	// Single-invoice payloads arrive without a wrapping array.
	InvoiceRecord
}

// InvoiceLines returns the invoice records of the payload, treating a bare
// single-invoice payload as a one-element list.
func (e *ExtractedData) InvoiceLines() []InvoiceRecord {
	if e == nil {
		return nil
	}
	if len(e.Invoices) > 0 {
		return e.Invoices
	}
	if e.InvoiceNumber != "" || e.VendorName != "" || !e.Amount.IsZero() || !e.TotalAmount.IsZero() {
		return []InvoiceRecord{e.InvoiceRecord}
	}
	return nil
}
