package web

import (
	"encoding/csv"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ledgerdocs/internal/core"
)

// statementTypeBySlug maps the {type} URL segment to a statement type.
var statementTypeBySlug = map[string]core.StatementType{
	"trial-balance":         core.StatementTrialBalance,
	"profit-loss":           core.StatementProfitLoss,
	"balance-sheet":         core.StatementBalanceSheet,
	"cash-flow":             core.StatementCashFlow,
	"gstr-2a":               core.StatementGSTR2A,
	"gstr-3b":               core.StatementGSTR3B,
	"form-26q":              core.StatementForm26Q,
	"depreciation-schedule": core.StatementDepreciation,
}

func statementType(w http.ResponseWriter, r *http.Request) (core.StatementType, bool) {
	slug := chi.URLParam(r, "type")
	t, ok := statementTypeBySlug[slug]
	if !ok {
		writeError(w, r, "unknown report type "+slug, "BAD_REQUEST", http.StatusBadRequest)
		return "", false
	}
	return t, true
}

// generateReport handles POST /api/reports/{type}/generate?period=YYYY-MM.
// Every call rebuilds the report from the current data and stores a fresh
// snapshot.
func (h *Handler) generateReport(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	t, ok := statementType(w, r)
	if !ok {
		return
	}

	stmt, err := h.svc.GenerateStatement(r.Context(), p, t, r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSONStatus(w, http.StatusCreated, stmt)
}

// downloadReport handles GET /api/reports/{type}/download?format=csv|json.
// It serves the latest stored snapshot for the type and period.
func (h *Handler) downloadReport(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	t, ok := statementType(w, r)
	if !ok {
		return
	}

	stmt, err := h.svc.LatestStatement(r.Context(), p, t, r.URL.Query().Get("period"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if stmt == nil {
		writeError(w, r, "report has not been generated yet", "NOT_FOUND", http.StatusNotFound)
		return
	}

	slug := chi.URLParam(r, "type")
	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+slug+`.json"`)
		writeJSON(w, stmt)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+slug+`.csv"`)
	cw := csv.NewWriter(w)
	if err := writeReportCSV(cw, t, stmt.Data); err != nil {
		writeError(w, r, "stored report payload is unreadable", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	cw.Flush()
}

// writeReportCSV renders a stored report payload as CSV rows.
func writeReportCSV(cw *csv.Writer, t core.StatementType, data []byte) error {
	switch t {
	case core.StatementTrialBalance:
		var tb core.TrialBalance
		if err := json.Unmarshal(data, &tb); err != nil {
			return err
		}
		_ = cw.Write([]string{"Account Code", "Account Name", "Debit", "Credit"})
		for _, a := range tb.Accounts {
			_ = cw.Write([]string{a.AccountCode, csvSafe(a.AccountName), a.Debit.StringFixed(2), a.Credit.StringFixed(2)})
		}
		_ = cw.Write([]string{"Total", "", tb.TotalDebits.StringFixed(2), tb.TotalCredits.StringFixed(2)})

	case core.StatementProfitLoss:
		var pl core.ProfitLoss
		if err := json.Unmarshal(data, &pl); err != nil {
			return err
		}
		_ = cw.Write([]string{"Section", "Account Code", "Account Name", "Amount"})
		for _, line := range pl.Revenue {
			_ = cw.Write([]string{"Revenue", line.AccountCode, csvSafe(line.AccountName), line.Amount.StringFixed(2)})
		}
		for _, line := range pl.Expenses {
			_ = cw.Write([]string{"Expenses", line.AccountCode, csvSafe(line.AccountName), line.Amount.StringFixed(2)})
		}
		_ = cw.Write([]string{"Total Revenue", "", "", formatINR(pl.TotalRevenue)})
		_ = cw.Write([]string{"Total Expenses", "", "", formatINR(pl.TotalExpenses)})
		_ = cw.Write([]string{"Net Profit", "", "", formatINR(pl.NetProfit)})

	case core.StatementBalanceSheet:
		var bs core.BalanceSheet
		if err := json.Unmarshal(data, &bs); err != nil {
			return err
		}
		_ = cw.Write([]string{"Section", "Account Code", "Account Name", "Amount"})
		for _, line := range bs.Assets {
			_ = cw.Write([]string{"Assets", line.AccountCode, csvSafe(line.AccountName), line.Amount.StringFixed(2)})
		}
		for _, line := range bs.Liabilities {
			_ = cw.Write([]string{"Liabilities", line.AccountCode, csvSafe(line.AccountName), line.Amount.StringFixed(2)})
		}
		for _, line := range bs.Equity {
			_ = cw.Write([]string{"Equity", line.AccountCode, csvSafe(line.AccountName), line.Amount.StringFixed(2)})
		}
		_ = cw.Write([]string{"Total Assets", "", "", formatINR(bs.TotalAssets)})
		_ = cw.Write([]string{"Total Liabilities", "", "", formatINR(bs.TotalLiabilities)})
		_ = cw.Write([]string{"Total Equity", "", "", formatINR(bs.TotalEquity)})

	case core.StatementCashFlow:
		var cf core.CashFlow
		if err := json.Unmarshal(data, &cf); err != nil {
			return err
		}
		_ = cw.Write([]string{"Direction", "Date", "Narration", "Amount"})
		for _, item := range cf.Inflows {
			_ = cw.Write([]string{"Inflow", item.Date, csvSafe(item.Narration), item.Amount.StringFixed(2)})
		}
		for _, item := range cf.Outflows {
			_ = cw.Write([]string{"Outflow", item.Date, csvSafe(item.Narration), item.Amount.StringFixed(2)})
		}
		_ = cw.Write([]string{"Net Cash Flow", "", "", formatINR(cf.NetCashFlow)})

	case core.StatementGSTR2A:
		var g core.GSTR2A
		if err := json.Unmarshal(data, &g); err != nil {
			return err
		}
		_ = cw.Write([]string{"GSTIN", "Invoice Number", "Invoice Date", "Vendor", "Taxable Value", "CGST", "SGST", "IGST", "Total Tax"})
		for _, inv := range g.Invoices {
			_ = cw.Write([]string{
				csvSafe(inv.GSTIN), csvSafe(inv.InvoiceNumber), inv.InvoiceDate, csvSafe(inv.VendorName),
				inv.TaxableValue.StringFixed(2), inv.CGST.StringFixed(2), inv.SGST.StringFixed(2),
				inv.IGST.StringFixed(2), inv.TotalTax.StringFixed(2),
			})
		}
		_ = cw.Write([]string{"Total", "", "", "",
			g.TotalTaxableValue.StringFixed(2), g.TotalCGST.StringFixed(2), g.TotalSGST.StringFixed(2),
			g.TotalIGST.StringFixed(2), g.TotalTax.StringFixed(2),
		})

	case core.StatementGSTR3B:
		var g core.GSTR3B
		if err := json.Unmarshal(data, &g); err != nil {
			return err
		}
		_ = cw.Write([]string{"Item", "Amount"})
		_ = cw.Write([]string{"Outward Supplies", formatINR(g.OutwardSupplies)})
		_ = cw.Write([]string{"Outward Taxable Value", formatINR(g.OutwardTaxable)})
		_ = cw.Write([]string{"Output GST", formatINR(g.OutwardGST)})
		_ = cw.Write([]string{"Inward Supplies", formatINR(g.InwardSupplies)})
		_ = cw.Write([]string{"Input Tax Credit", formatINR(g.InputTaxCredit)})
		_ = cw.Write([]string{"Net Tax Liability", formatINR(g.NetTaxLiability)})

	case core.StatementForm26Q:
		var f core.Form26Q
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		_ = cw.Write([]string{"Deductee", "PAN", "Section", "Amount Paid", "TDS Deducted", "Challan"})
		for _, d := range f.Deductions {
			_ = cw.Write([]string{
				csvSafe(d.DeducteeName), csvSafe(d.PAN), d.Section,
				d.AmountPaid.StringFixed(2), d.TDSDeducted.StringFixed(2), d.ChallanNumber,
			})
		}
		_ = cw.Write([]string{"Total", "", "", formatINR(f.TotalAmountPaid), formatINR(f.TotalTDS), ""})

	case core.StatementDepreciation:
		var s core.DepreciationSchedule
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		_ = cw.Write([]string{"Asset", "Purchase Date", "Cost", "Residual Value", "Useful Life (Years)", "Annual Depreciation"})
		for _, a := range s.Assets {
			_ = cw.Write([]string{
				csvSafe(a.AssetName), a.PurchaseDate, a.Cost.StringFixed(2), a.ResidualValue.StringFixed(2),
				itoa(a.UsefulLifeYears), a.AnnualDepreciation.StringFixed(2),
			})
		}
		_ = cw.Write([]string{"Total", "", formatINR(s.TotalCost), "", "", formatINR(s.TotalAnnualCharge)})
	}
	return nil
}
