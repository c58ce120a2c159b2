package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Statutory return builders. These read extracted document payloads directly
// rather than journal entries, because the returns need invoice-level tax
// fields the ledger does not carry.

var (
	gstRate    = decimal.NewFromFloat(0.18)
	gstDivisor = decimal.NewFromFloat(1.18)
)

// GSTR2AInvoice is one inward supply row on GSTR-2A.
type GSTR2AInvoice struct {
	GSTIN         string          `json:"gstin"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   string          `json:"invoiceDate"`
	VendorName    string          `json:"vendorName"`
	TaxableValue  decimal.Decimal `json:"taxableValue"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	TotalTax      decimal.Decimal `json:"totalTax"`
}

// GSTR2A lists inward supplies reported by suppliers, with summary totals.
type GSTR2A struct {
	Invoices          []GSTR2AInvoice `json:"invoices"`
	TotalTaxableValue decimal.Decimal `json:"totalTaxableValue"`
	TotalCGST         decimal.Decimal `json:"totalCgst"`
	TotalSGST         decimal.Decimal `json:"totalSgst"`
	TotalIGST         decimal.Decimal `json:"totalIgst"`
	TotalTax          decimal.Decimal `json:"totalTax"`
}

// BuildGSTR2A aggregates invoice lines from purchase-side documents. A
// missing taxable value falls back to the invoice amount net of 18% GST, and
// a missing tax total to the sum of the component taxes.
func BuildGSTR2A(docs []Document) GSTR2A {
	out := GSTR2A{Invoices: []GSTR2AInvoice{}}
	for i := range docs {
		doc := &docs[i]
		if doc.Type != DocTypeVendorInvoice && doc.Type != DocTypePurchaseRegister {
			continue
		}
		for _, inv := range purchaseInvoiceLines(doc) {
			taxable := inv.TaxableValue.Decimal
			if taxable.IsZero() {
				total := inv.Amount.Decimal
				if total.IsZero() {
					total = inv.TotalAmount.Decimal
				}
				taxable = total.Div(gstDivisor).Round(2)
			}
			totalTax := inv.TotalTax.Decimal
			if totalTax.IsZero() {
				totalTax = inv.CGST.Add(inv.SGST.Decimal).Add(inv.IGST.Decimal)
			}

			row := GSTR2AInvoice{
				GSTIN:         inv.GSTIN,
				InvoiceNumber: inv.InvoiceNumber,
				InvoiceDate:   formatReturnDate(inv.InvoiceDate),
				VendorName:    inv.VendorName,
				TaxableValue:  taxable,
				CGST:          inv.CGST.Decimal,
				SGST:          inv.SGST.Decimal,
				IGST:          inv.IGST.Decimal,
				TotalTax:      totalTax,
			}
			out.Invoices = append(out.Invoices, row)
			out.TotalTaxableValue = out.TotalTaxableValue.Add(row.TaxableValue)
			out.TotalCGST = out.TotalCGST.Add(row.CGST)
			out.TotalSGST = out.TotalSGST.Add(row.SGST)
			out.TotalIGST = out.TotalIGST.Add(row.IGST)
			out.TotalTax = out.TotalTax.Add(row.TotalTax)
		}
	}
	return out
}

// purchaseInvoiceLines flattens a purchase-side document to invoice records.
// Purchase registers reuse the invoice shape with the order number standing
// in for the invoice number.
func purchaseInvoiceLines(doc *Document) []InvoiceRecord {
	if doc.Extracted == nil {
		return nil
	}
	if doc.Type == DocTypeVendorInvoice {
		return doc.Extracted.InvoiceLines()
	}
	lines := make([]InvoiceRecord, 0, len(doc.Extracted.Purchases))
	for _, p := range doc.Extracted.Purchases {
		lines = append(lines, InvoiceRecord{
			InvoiceNumber: p.PurchaseOrder,
			VendorName:    p.VendorName,
			InvoiceDate:   p.PurchaseDate,
			Amount:        p.Amount,
			TotalAmount:   p.TotalAmount,
			GSTIN:         p.GSTIN,
			TaxableValue:  p.TaxableValue,
			CGST:          p.CGST,
			SGST:          p.SGST,
			IGST:          p.IGST,
			TotalTax:      p.TotalTax,
		})
	}
	return lines
}

// GSTR3B is the monthly summary return. Inclusive 18% GST is assumed on both
// sides: taxable value backs out the tax from the gross total.
type GSTR3B struct {
	OutwardSupplies decimal.Decimal `json:"outwardSupplies"`
	OutwardTaxable  decimal.Decimal `json:"outwardTaxable"`
	OutwardGST      decimal.Decimal `json:"outwardGst"`
	InwardSupplies  decimal.Decimal `json:"inwardSupplies"`
	InwardTaxable   decimal.Decimal `json:"inwardTaxable"`
	InputTaxCredit  decimal.Decimal `json:"inputTaxCredit"`
	NetTaxLiability decimal.Decimal `json:"netTaxLiability"`
}

// BuildGSTR3B totals outward supplies from sales registers and inward
// supplies from purchase-side documents. Net liability is output tax less
// input tax credit, floored at zero.
func BuildGSTR3B(docs []Document) GSTR3B {
	var outward, inward decimal.Decimal
	for i := range docs {
		doc := &docs[i]
		if doc.Extracted == nil {
			continue
		}
		switch doc.Type {
		case DocTypeSalesRegister:
			for _, sale := range doc.Extracted.Sales {
				total := sale.TotalAmount.Decimal
				if total.IsZero() {
					total = sale.Amount.Decimal
				}
				outward = outward.Add(total)
			}
		case DocTypeVendorInvoice, DocTypePurchaseRegister:
			for _, inv := range purchaseInvoiceLines(doc) {
				total := inv.Amount.Decimal
				if total.IsZero() {
					total = inv.TotalAmount.Decimal
				}
				inward = inward.Add(total)
			}
		}
	}

	outputTax := outward.Mul(gstRate).Round(2)
	inputCredit := inward.Mul(gstRate).Round(2)
	liability := outputTax.Sub(inputCredit)
	if liability.IsNegative() {
		liability = decimal.Zero
	}

	return GSTR3B{
		OutwardSupplies: outward,
		OutwardTaxable:  outward.Div(gstDivisor).Round(2),
		OutwardGST:      outputTax,
		InwardSupplies:  inward,
		InwardTaxable:   inward.Div(gstDivisor).Round(2),
		InputTaxCredit:  inputCredit,
		NetTaxLiability: liability,
	}
}

// Form26QDeduction is one TDS deduction row on Form 26Q.
type Form26QDeduction struct {
	DeducteeName  string          `json:"deducteeName"`
	PAN           string          `json:"pan"`
	Section       string          `json:"section"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	TDSDeducted   decimal.Decimal `json:"tdsDeducted"`
	ChallanNumber string          `json:"challanNumber"`
}

// Form26Q is the quarterly TDS return built from salary register records.
type Form26Q struct {
	Deductions      []Form26QDeduction `json:"deductions"`
	TotalAmountPaid decimal.Decimal    `json:"totalAmountPaid"`
	TotalTDS        decimal.Decimal    `json:"totalTds"`
}

// BuildForm26Q lists one deduction per salary record under section 194A.
// Challan numbers are sequential per deduction within the return.
func BuildForm26Q(docs []Document) Form26Q {
	form := Form26Q{Deductions: []Form26QDeduction{}}
	for i := range docs {
		doc := &docs[i]
		if doc.Type != DocTypeSalaryRegister || doc.Extracted == nil {
			continue
		}
		for _, rec := range doc.Extracted.Salaries {
			d := Form26QDeduction{
				DeducteeName:  rec.EmployeeName,
				PAN:           rec.PAN,
				Section:       "194A",
				AmountPaid:    rec.GrossSalary.Decimal,
				TDSDeducted:   rec.TDSDeducted.Decimal,
				ChallanNumber: fmt.Sprintf("BSR%03d", len(form.Deductions)+1),
			}
			form.Deductions = append(form.Deductions, d)
			form.TotalAmountPaid = form.TotalAmountPaid.Add(d.AmountPaid)
			form.TotalTDS = form.TotalTDS.Add(d.TDSDeducted)
		}
	}
	return form
}

// DepreciationLine is one asset row of the depreciation schedule.
type DepreciationLine struct {
	AssetName          string          `json:"assetName"`
	PurchaseDate       string          `json:"purchaseDate"`
	Cost               decimal.Decimal `json:"cost"`
	ResidualValue      decimal.Decimal `json:"residualValue"`
	UsefulLifeYears    int             `json:"usefulLifeYears"`
	AnnualDepreciation decimal.Decimal `json:"annualDepreciation"`
}

// DepreciationSchedule is the straight-line schedule over the fixed asset
// register.
type DepreciationSchedule struct {
	Assets            []DepreciationLine `json:"assets"`
	TotalCost         decimal.Decimal    `json:"totalCost"`
	TotalAnnualCharge decimal.Decimal    `json:"totalAnnualCharge"`
}

// BuildDepreciationSchedule computes straight-line annual depreciation,
// (cost - residual) / life. Assets with no stated life default to five years.
func BuildDepreciationSchedule(docs []Document) DepreciationSchedule {
	sched := DepreciationSchedule{Assets: []DepreciationLine{}}
	for i := range docs {
		doc := &docs[i]
		if doc.Type != DocTypeFixedAssetRegister || doc.Extracted == nil {
			continue
		}
		for _, asset := range doc.Extracted.Assets {
			life := asset.UsefulLifeYears
			if life <= 0 {
				life = 5
			}
			annual := asset.Cost.Sub(asset.ResidualValue.Decimal).Div(decimal.NewFromInt(int64(life))).Round(2)
			line := DepreciationLine{
				AssetName:          asset.AssetName,
				PurchaseDate:       formatReturnDate(asset.PurchaseDate),
				Cost:               asset.Cost.Decimal,
				ResidualValue:      asset.ResidualValue.Decimal,
				UsefulLifeYears:    life,
				AnnualDepreciation: annual,
			}
			sched.Assets = append(sched.Assets, line)
			sched.TotalCost = sched.TotalCost.Add(line.Cost)
			sched.TotalAnnualCharge = sched.TotalAnnualCharge.Add(annual)
		}
	}
	return sched
}

func formatReturnDate(d DateValue) string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format("2006-01-02")
}
