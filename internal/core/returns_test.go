package core_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"ledgerdocs/internal/core"
)

func TestBuildGSTR3B(t *testing.T) {
	docs := []core.Document{
		{
			Type: core.DocTypeSalesRegister,
			Extracted: &core.ExtractedData{
				Sales: []core.SaleRecord{
					{TotalAmount: amt("118000")},
					{TotalAmount: amt("59000")},
				},
			},
		},
		{
			Type: core.DocTypeVendorInvoice,
			Extracted: &core.ExtractedData{
				Invoices: []core.InvoiceRecord{{Amount: amt("59000")}},
			},
		},
	}

	g := core.BuildGSTR3B(docs)
	if !g.OutwardSupplies.Equal(decimal.NewFromInt(177000)) {
		t.Errorf("outward = %s, want 177000", g.OutwardSupplies)
	}
	// Taxable value backs the 18% GST out of the gross figure.
	if !g.OutwardTaxable.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("outward taxable = %s, want 150000", g.OutwardTaxable)
	}
	if !g.OutwardGST.Equal(decimal.NewFromInt(31860)) {
		t.Errorf("output gst = %s, want 31860", g.OutwardGST)
	}
	if !g.InputTaxCredit.Equal(decimal.NewFromInt(10620)) {
		t.Errorf("input credit = %s, want 10620", g.InputTaxCredit)
	}
	if !g.NetTaxLiability.Equal(decimal.NewFromInt(21240)) {
		t.Errorf("net liability = %s, want 21240", g.NetTaxLiability)
	}
}

func TestBuildGSTR3B_LiabilityFlooredAtZero(t *testing.T) {
	docs := []core.Document{
		{
			Type: core.DocTypeVendorInvoice,
			Extracted: &core.ExtractedData{
				Invoices: []core.InvoiceRecord{{Amount: amt("200000")}},
			},
		},
		{
			Type: core.DocTypeSalesRegister,
			Extracted: &core.ExtractedData{
				Sales: []core.SaleRecord{{TotalAmount: amt("10000")}},
			},
		},
	}

	g := core.BuildGSTR3B(docs)
	if !g.NetTaxLiability.IsZero() {
		t.Errorf("net liability = %s, want 0 when input credit exceeds output tax", g.NetTaxLiability)
	}
}

func TestBuildGSTR2A(t *testing.T) {
	docs := []core.Document{
		{
			Type: core.DocTypeVendorInvoice,
			Extracted: &core.ExtractedData{
				Invoices: []core.InvoiceRecord{
					{
						InvoiceNumber: "ABC-001",
						VendorName:    "ABC Corp",
						GSTIN:         "27AAAAA0000A1Z5",
						TaxableValue:  amt("100000"),
						CGST:          amt("9000"),
						SGST:          amt("9000"),
						TotalTax:      amt("18000"),
					},
				},
			},
		},
		{
			Type: core.DocTypeSalesRegister,
			Extracted: &core.ExtractedData{
				Sales: []core.SaleRecord{{TotalAmount: amt("999")}},
			},
		},
	}

	g := core.BuildGSTR2A(docs)
	if len(g.Invoices) != 1 {
		t.Fatalf("expected 1 invoice row, got %d", len(g.Invoices))
	}
	row := g.Invoices[0]
	if row.GSTIN != "27AAAAA0000A1Z5" || row.InvoiceNumber != "ABC-001" {
		t.Errorf("row identity wrong: %+v", row)
	}
	if !g.TotalTaxableValue.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("total taxable = %s, want 100000", g.TotalTaxableValue)
	}
	if !g.TotalCGST.Equal(decimal.NewFromInt(9000)) || !g.TotalSGST.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("cgst/sgst totals = %s/%s, want 9000/9000", g.TotalCGST, g.TotalSGST)
	}
	if !g.TotalTax.Equal(decimal.NewFromInt(18000)) {
		t.Errorf("total tax = %s, want 18000", g.TotalTax)
	}
}

func TestBuildGSTR2A_FallbackTaxableValue(t *testing.T) {
	docs := []core.Document{
		{
			Type: core.DocTypeVendorInvoice,
			Extracted: &core.ExtractedData{
				Invoices: []core.InvoiceRecord{{InvoiceNumber: "X-1", Amount: amt("118000")}},
			},
		},
	}

	g := core.BuildGSTR2A(docs)
	if !g.Invoices[0].TaxableValue.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("taxable fallback = %s, want 100000 (gross net of 18%%)", g.Invoices[0].TaxableValue)
	}
}

func TestBuildForm26Q(t *testing.T) {
	docs := []core.Document{
		{
			Type: core.DocTypeSalaryRegister,
			Extracted: &core.ExtractedData{
				Salaries: []core.SalaryRecord{
					{EmployeeName: "A Kumar", PAN: "ABCDE1234F", GrossSalary: amt("80000"), TDSDeducted: amt("8000")},
					{EmployeeName: "B Singh", PAN: "FGHIJ5678K", GrossSalary: amt("60000"), TDSDeducted: amt("4000")},
				},
			},
		},
	}

	f := core.BuildForm26Q(docs)
	if len(f.Deductions) != 2 {
		t.Fatalf("expected 2 deductions, got %d", len(f.Deductions))
	}
	if f.Deductions[0].Section != "194A" {
		t.Errorf("section = %q, want 194A", f.Deductions[0].Section)
	}
	if f.Deductions[0].ChallanNumber != "BSR001" || f.Deductions[1].ChallanNumber != "BSR002" {
		t.Errorf("challans = %q/%q, want BSR001/BSR002", f.Deductions[0].ChallanNumber, f.Deductions[1].ChallanNumber)
	}
	if !f.TotalAmountPaid.Equal(decimal.NewFromInt(140000)) {
		t.Errorf("total paid = %s, want 140000", f.TotalAmountPaid)
	}
	if !f.TotalTDS.Equal(decimal.NewFromInt(12000)) {
		t.Errorf("total tds = %s, want 12000", f.TotalTDS)
	}
}

func TestBuildDepreciationSchedule(t *testing.T) {
	docs := []core.Document{
		{
			Type: core.DocTypeFixedAssetRegister,
			Extracted: &core.ExtractedData{
				Assets: []core.AssetRecord{
					{AssetName: "Lathe", Cost: amt("110000"), ResidualValue: amt("10000"), UsefulLifeYears: 10},
					{AssetName: "Laptop", Cost: amt("50000")}, // life defaults to 5
				},
			},
		},
	}

	s := core.BuildDepreciationSchedule(docs)
	if len(s.Assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(s.Assets))
	}
	if !s.Assets[0].AnnualDepreciation.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("lathe annual = %s, want 10000", s.Assets[0].AnnualDepreciation)
	}
	if s.Assets[1].UsefulLifeYears != 5 {
		t.Errorf("defaulted life = %d, want 5", s.Assets[1].UsefulLifeYears)
	}
	if !s.Assets[1].AnnualDepreciation.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("laptop annual = %s, want 10000", s.Assets[1].AnnualDepreciation)
	}
	if !s.TotalAnnualCharge.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("total annual = %s, want 20000", s.TotalAnnualCharge)
	}
}
