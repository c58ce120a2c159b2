package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// balanceTolerance is the absolute difference under which two statement
// totals are considered equal.
var balanceTolerance = decimal.NewFromFloat(0.01)

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(balanceTolerance)
}

// TrialBalanceLine is one account row of a trial balance. Debit and credit
// totals accumulate separately; they are never netted against each other.
type TrialBalanceLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is the full trial balance for a period.
type TrialBalance struct {
	Accounts     []TrialBalanceLine `json:"accounts"`
	TotalDebits  decimal.Decimal    `json:"totalDebits"`
	TotalCredits decimal.Decimal    `json:"totalCredits"`
	IsBalanced   bool               `json:"isBalanced"`
}

// accountTotals accumulates per-account debit and credit sums over a set of
// entries. The account name is taken from the first entry seen for each code.
type accountTotals struct {
	order  []string
	byCode map[string]*TrialBalanceLine
}

func newAccountTotals() *accountTotals {
	return &accountTotals{byCode: make(map[string]*TrialBalanceLine)}
}

func (t *accountTotals) add(e JournalEntry) {
	line, ok := t.byCode[e.AccountCode]
	if !ok {
		line = &TrialBalanceLine{AccountCode: e.AccountCode, AccountName: e.AccountName}
		t.byCode[e.AccountCode] = line
		t.order = append(t.order, e.AccountCode)
	}
	line.Debit = line.Debit.Add(e.Debit)
	line.Credit = line.Credit.Add(e.Credit)
}

func (t *accountTotals) sorted() []TrialBalanceLine {
	codes := append([]string(nil), t.order...)
	sort.Strings(codes)
	lines := make([]TrialBalanceLine, 0, len(codes))
	for _, code := range codes {
		lines = append(lines, *t.byCode[code])
	}
	return lines
}

// BuildTrialBalance groups entries by account code and totals each side.
// Every entry participates regardless of account prefix.
func BuildTrialBalance(entries []JournalEntry) TrialBalance {
	totals := newAccountTotals()
	var debits, credits decimal.Decimal
	for _, e := range entries {
		totals.add(e)
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	return TrialBalance{
		Accounts:     totals.sorted(),
		TotalDebits:  debits,
		TotalCredits: credits,
		IsBalanced:   withinTolerance(debits, credits),
	}
}

// ProfitLossLine is one line of the P&L. Type is "revenue", "expense", or
// "expense_credit" for an expense account whose credits exceed its debits.
type ProfitLossLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
}

// ProfitLoss is the profit and loss statement for a period.
type ProfitLoss struct {
	Revenue       []ProfitLossLine `json:"revenue"`
	Expenses      []ProfitLossLine `json:"expenses"`
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetProfit     decimal.Decimal  `json:"netProfit"`
}

// BuildProfitLoss derives the P&L from revenue (4xxx) and expense (5xxx)
// accounts. Revenue lines report total credits when positive. Expense
// accounts are netted debit minus credit; a net credit balance stays on the
// statement as an expense_credit line whose magnitude reduces total expenses.
func BuildProfitLoss(entries []JournalEntry) ProfitLoss {
	totals := newAccountTotals()
	for _, e := range entries {
		if class, ok := ClassOf(e.AccountCode); ok && (class == ClassRevenue || class == ClassExpense) {
			totals.add(e)
		}
	}

	pl := ProfitLoss{Revenue: []ProfitLossLine{}, Expenses: []ProfitLossLine{}}
	for _, line := range totals.sorted() {
		class, _ := ClassOf(line.AccountCode)
		switch class {
		case ClassRevenue:
			if line.Credit.IsPositive() {
				pl.Revenue = append(pl.Revenue, ProfitLossLine{
					AccountCode: line.AccountCode,
					AccountName: line.AccountName,
					Amount:      line.Credit,
					Type:        "revenue",
				})
				pl.TotalRevenue = pl.TotalRevenue.Add(line.Credit)
			}
		case ClassExpense:
			net := line.Debit.Sub(line.Credit)
			switch {
			case net.IsPositive():
				pl.Expenses = append(pl.Expenses, ProfitLossLine{
					AccountCode: line.AccountCode,
					AccountName: line.AccountName,
					Amount:      net,
					Type:        "expense",
				})
				pl.TotalExpenses = pl.TotalExpenses.Add(net)
			case net.IsNegative():
				pl.Expenses = append(pl.Expenses, ProfitLossLine{
					AccountCode: line.AccountCode,
					AccountName: line.AccountName + " (Credit)",
					Amount:      net.Abs(),
					Type:        "expense_credit",
				})
				pl.TotalExpenses = pl.TotalExpenses.Sub(net.Abs())
			}
		}
	}
	pl.NetProfit = pl.TotalRevenue.Sub(pl.TotalExpenses)
	return pl
}

// BalanceSheetLine is one account row of the balance sheet.
type BalanceSheetLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// BalanceSheet is the balance sheet as of the end of a period.
type BalanceSheet struct {
	Assets           []BalanceSheetLine `json:"assets"`
	Liabilities      []BalanceSheetLine `json:"liabilities"`
	Equity           []BalanceSheetLine `json:"equity"`
	TotalAssets      decimal.Decimal    `json:"totalAssets"`
	TotalLiabilities decimal.Decimal    `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal    `json:"totalEquity"`
	IsBalanced       bool               `json:"isBalanced"`
}

// BuildBalanceSheet derives the balance sheet from asset (1xxx), liability
// (2xxx), and equity (3xxx) accounts. Assets carry their net debit balance
// when positive; liabilities and equity carry their net credit balance when
// positive. Revenue and expense accounts never appear.
func BuildBalanceSheet(entries []JournalEntry) BalanceSheet {
	totals := newAccountTotals()
	for _, e := range entries {
		if class, ok := ClassOf(e.AccountCode); ok {
			switch class {
			case ClassAsset, ClassLiability, ClassEquity:
				totals.add(e)
			}
		}
	}

	bs := BalanceSheet{
		Assets:      []BalanceSheetLine{},
		Liabilities: []BalanceSheetLine{},
		Equity:      []BalanceSheetLine{},
	}
	for _, line := range totals.sorted() {
		class, _ := ClassOf(line.AccountCode)
		switch class {
		case ClassAsset:
			net := line.Debit.Sub(line.Credit)
			if net.IsPositive() {
				bs.Assets = append(bs.Assets, BalanceSheetLine{line.AccountCode, line.AccountName, net})
				bs.TotalAssets = bs.TotalAssets.Add(net)
			}
		case ClassLiability:
			net := line.Credit.Sub(line.Debit)
			if net.IsPositive() {
				bs.Liabilities = append(bs.Liabilities, BalanceSheetLine{line.AccountCode, line.AccountName, net})
				bs.TotalLiabilities = bs.TotalLiabilities.Add(net)
			}
		case ClassEquity:
			net := line.Credit.Sub(line.Debit)
			if net.IsPositive() {
				bs.Equity = append(bs.Equity, BalanceSheetLine{line.AccountCode, line.AccountName, net})
				bs.TotalEquity = bs.TotalEquity.Add(net)
			}
		}
	}
	bs.IsBalanced = withinTolerance(bs.TotalAssets, bs.TotalLiabilities.Add(bs.TotalEquity))
	return bs
}

// CashFlowItem is one bank-account movement on the cash flow statement.
type CashFlowItem struct {
	Date      string          `json:"date"`
	Narration string          `json:"narration"`
	Amount    decimal.Decimal `json:"amount"`
}

// CashFlow summarizes movements through the bank account (1000).
type CashFlow struct {
	Inflows       []CashFlowItem  `json:"inflows"`
	Outflows      []CashFlowItem  `json:"outflows"`
	TotalInflows  decimal.Decimal `json:"totalInflows"`
	TotalOutflows decimal.Decimal `json:"totalOutflows"`
	NetCashFlow   decimal.Decimal `json:"netCashFlow"`
}

// BuildCashFlow reads bank-account journal lines: debits to the bank account
// are inflows, credits are outflows.
func BuildCashFlow(entries []JournalEntry) CashFlow {
	cf := CashFlow{Inflows: []CashFlowItem{}, Outflows: []CashFlowItem{}}
	for _, e := range entries {
		if e.AccountCode != AccountBank {
			continue
		}
		if e.Debit.IsPositive() {
			cf.Inflows = append(cf.Inflows, CashFlowItem{e.Date.Format("2006-01-02"), e.Narration, e.Debit})
			cf.TotalInflows = cf.TotalInflows.Add(e.Debit)
		}
		if e.Credit.IsPositive() {
			cf.Outflows = append(cf.Outflows, CashFlowItem{e.Date.Format("2006-01-02"), e.Narration, e.Credit})
			cf.TotalOutflows = cf.TotalOutflows.Add(e.Credit)
		}
	}
	cf.NetCashFlow = cf.TotalInflows.Sub(cf.TotalOutflows)
	return cf
}
