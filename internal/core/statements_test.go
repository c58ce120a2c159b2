package core_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"ledgerdocs/internal/core"
)

func entry(code, name, debit, credit string) core.JournalEntry {
	return core.JournalEntry{
		AccountCode: code,
		AccountName: name,
		Debit:       decimal.RequireFromString(debit),
		Credit:      decimal.RequireFromString(credit),
	}
}

func TestBuildTrialBalance_TotalsEqualInputSums(t *testing.T) {
	entries := []core.JournalEntry{
		entry("5100", "Vendor Expenses", "125000", "0"),
		entry("2100", "Accounts Payable", "0", "125000"),
		entry("1000", "Bank Account", "50000", "0"),
		entry("4200", "Other Income", "0", "50000"),
		entry("5100", "Vendor Expenses", "300", "0"),
		entry("2100", "Accounts Payable", "0", "300"),
	}

	tb := core.BuildTrialBalance(entries)

	wantTotal := decimal.RequireFromString("175300")
	if !tb.TotalDebits.Equal(wantTotal) || !tb.TotalCredits.Equal(wantTotal) {
		t.Errorf("totals = %s/%s, want %s on both sides", tb.TotalDebits, tb.TotalCredits, wantTotal)
	}
	if !tb.IsBalanced {
		t.Error("balanced input must yield isBalanced=true")
	}
	if len(tb.Accounts) != 4 {
		t.Fatalf("expected 4 account lines, got %d", len(tb.Accounts))
	}

	// Lines are sorted ascending by code, sides accumulated separately.
	if tb.Accounts[0].AccountCode != "1000" || tb.Accounts[3].AccountCode != "5100" {
		t.Errorf("lines not sorted by code: %v", tb.Accounts)
	}
	if !tb.Accounts[3].Debit.Equal(decimal.RequireFromString("125300")) {
		t.Errorf("5100 debit total = %s, want 125300", tb.Accounts[3].Debit)
	}
}

func TestBuildTrialBalance_NoNetting(t *testing.T) {
	entries := []core.JournalEntry{
		entry("1000", "Bank Account", "1000", "0"),
		entry("1000", "Bank Account", "0", "400"),
	}
	tb := core.BuildTrialBalance(entries)
	if len(tb.Accounts) != 1 {
		t.Fatalf("expected 1 line, got %d", len(tb.Accounts))
	}
	line := tb.Accounts[0]
	if !line.Debit.Equal(decimal.NewFromInt(1000)) || !line.Credit.Equal(decimal.NewFromInt(400)) {
		t.Errorf("line = %s/%s, want 1000/400 kept separate", line.Debit, line.Credit)
	}
}

func TestBuildTrialBalance_Empty(t *testing.T) {
	tb := core.BuildTrialBalance(nil)
	if !tb.TotalDebits.IsZero() || !tb.TotalCredits.IsZero() {
		t.Errorf("empty input totals = %s/%s, want zero", tb.TotalDebits, tb.TotalCredits)
	}
	if !tb.IsBalanced {
		t.Error("empty input must be vacuously balanced")
	}
	if len(tb.Accounts) != 0 {
		t.Errorf("expected no lines, got %d", len(tb.Accounts))
	}
}

func TestBuildTrialBalance_NameFromFirstEntry(t *testing.T) {
	entries := []core.JournalEntry{
		entry("5100", "Vendor Expenses", "10", "0"),
		entry("5100", "Renamed Later", "5", "0"),
	}
	tb := core.BuildTrialBalance(entries)
	if tb.Accounts[0].AccountName != "Vendor Expenses" {
		t.Errorf("account name = %q, want the first entry's name", tb.Accounts[0].AccountName)
	}
}

func TestBuildProfitLoss_RoundTrip(t *testing.T) {
	// A 1000-rupee sale: revenue 1000, no expenses, profit 1000.
	entries := []core.JournalEntry{
		entry("1200", "Accounts Receivable", "1000", "0"),
		entry("4100", "Sales Revenue", "0", "1000"),
	}
	pl := core.BuildProfitLoss(entries)
	if !pl.TotalRevenue.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("revenue = %s, want 1000", pl.TotalRevenue)
	}
	if !pl.TotalExpenses.IsZero() {
		t.Errorf("expenses = %s, want 0", pl.TotalExpenses)
	}
	if !pl.NetProfit.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("net profit = %s, want 1000", pl.NetProfit)
	}
}

func TestBuildProfitLoss_ExpenseCredit(t *testing.T) {
	entries := []core.JournalEntry{
		entry("4100", "Sales Revenue", "0", "5000"),
		entry("5100", "Vendor Expenses", "1200", "0"),
		entry("5200", "Bank Charges/Expenses", "0", "300"), // refund larger than charges
	}

	pl := core.BuildProfitLoss(entries)
	if len(pl.Expenses) != 2 {
		t.Fatalf("expected 2 expense lines, got %d", len(pl.Expenses))
	}

	creditLine := pl.Expenses[1]
	if creditLine.Type != "expense_credit" {
		t.Errorf("type = %q, want expense_credit", creditLine.Type)
	}
	if creditLine.AccountName != "Bank Charges/Expenses (Credit)" {
		t.Errorf("name = %q, want credit suffix", creditLine.AccountName)
	}
	if !creditLine.Amount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("credit line amount = %s, want 300 (absolute)", creditLine.Amount)
	}

	// The credit magnitude reduces total expenses: 1200 - 300 = 900.
	if !pl.TotalExpenses.Equal(decimal.NewFromInt(900)) {
		t.Errorf("total expenses = %s, want 900", pl.TotalExpenses)
	}
	if !pl.NetProfit.Equal(decimal.NewFromInt(4100)) {
		t.Errorf("net profit = %s, want 4100", pl.NetProfit)
	}
}

func TestBuildProfitLoss_IgnoresNonPLAccounts(t *testing.T) {
	entries := []core.JournalEntry{
		entry("1000", "Bank Account", "100", "0"),
		entry("2100", "Accounts Payable", "0", "100"),
		entry("9999", "Mystery", "50", "0"),
	}
	pl := core.BuildProfitLoss(entries)
	if len(pl.Revenue) != 0 || len(pl.Expenses) != 0 {
		t.Errorf("non-P&L accounts leaked into the statement: %+v", pl)
	}
}

func TestBuildBalanceSheet_ExcludesRevenueAndExpenses(t *testing.T) {
	entries := []core.JournalEntry{
		entry("1000", "Bank Account", "50000", "0"),
		entry("2100", "Accounts Payable", "0", "30000"),
		entry("3000", "Owner Equity", "0", "20000"),
		entry("4100", "Sales Revenue", "0", "50000"),
		entry("5100", "Vendor Expenses", "30000", "0"),
	}

	bs := core.BuildBalanceSheet(entries)
	for _, line := range append(append(bs.Assets, bs.Liabilities...), bs.Equity...) {
		if line.AccountCode == "4100" || line.AccountCode == "5100" {
			t.Errorf("revenue/expense account %s must not appear on the balance sheet", line.AccountCode)
		}
	}
	if !bs.TotalAssets.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("assets = %s, want 50000", bs.TotalAssets)
	}
	if !bs.TotalLiabilities.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("liabilities = %s, want 30000", bs.TotalLiabilities)
	}
	if !bs.TotalEquity.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("equity = %s, want 20000", bs.TotalEquity)
	}
	if !bs.IsBalanced {
		t.Error("50000 = 30000 + 20000 must be balanced")
	}
}

func TestBuildBalanceSheet_NegativeBalancesExcluded(t *testing.T) {
	entries := []core.JournalEntry{
		entry("1000", "Bank Account", "100", "500"),     // net credit asset
		entry("2100", "Accounts Payable", "800", "300"), // net debit liability
	}
	bs := core.BuildBalanceSheet(entries)
	if len(bs.Assets) != 0 {
		t.Errorf("net-credit asset must be excluded, got %+v", bs.Assets)
	}
	if len(bs.Liabilities) != 0 {
		t.Errorf("net-debit liability must be excluded, got %+v", bs.Liabilities)
	}
}

func TestBuildBalanceSheet_Empty(t *testing.T) {
	bs := core.BuildBalanceSheet(nil)
	if !bs.TotalAssets.IsZero() || !bs.TotalLiabilities.IsZero() || !bs.TotalEquity.IsZero() {
		t.Errorf("empty input must have zero totals: %+v", bs)
	}
	if !bs.IsBalanced {
		t.Error("empty input must be vacuously balanced")
	}
}

func TestBuildBalanceSheet_ToleranceOnRounding(t *testing.T) {
	entries := []core.JournalEntry{
		entry("1000", "Bank Account", "100.005", "0"),
		entry("2100", "Accounts Payable", "0", "100.00"),
	}
	bs := core.BuildBalanceSheet(entries)
	if !bs.IsBalanced {
		t.Error("difference under 0.01 must still count as balanced")
	}
}

func TestBuildCashFlow(t *testing.T) {
	entries := []core.JournalEntry{
		entry("1000", "Bank Account", "50000", "0"),
		entry("4200", "Other Income", "0", "50000"),
		entry("5200", "Bank Charges/Expenses", "150", "0"),
		entry("1000", "Bank Account", "0", "150"),
	}

	cf := core.BuildCashFlow(entries)
	if !cf.TotalInflows.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("inflows = %s, want 50000", cf.TotalInflows)
	}
	if !cf.TotalOutflows.Equal(decimal.NewFromInt(150)) {
		t.Errorf("outflows = %s, want 150", cf.TotalOutflows)
	}
	if !cf.NetCashFlow.Equal(decimal.RequireFromString("49850")) {
		t.Errorf("net = %s, want 49850", cf.NetCashFlow)
	}
}
