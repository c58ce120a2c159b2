package core

// AccountClass is the statement classification of an account, derived from
// the leading digit of its 4-digit code.
type AccountClass string

const (
	ClassAsset     AccountClass = "asset"
	ClassLiability AccountClass = "liability"
	ClassEquity    AccountClass = "equity"
	ClassRevenue   AccountClass = "revenue"
	ClassExpense   AccountClass = "expense"
)

// accountClassByPrefix is the single prefix→class mapping every aggregator
// consults. Codes outside 1xxx–5xxx belong to no class and are excluded from
// all statements.
var accountClassByPrefix = map[byte]AccountClass{
	'1': ClassAsset,
	'2': ClassLiability,
	'3': ClassEquity,
	'4': ClassRevenue,
	'5': ClassExpense,
}

// ClassOf returns the account class for a code, or false when the code has
// no recognized prefix.
func ClassOf(accountCode string) (AccountClass, bool) {
	if accountCode == "" {
		return "", false
	}
	class, ok := accountClassByPrefix[accountCode[0]]
	return class, ok
}

// Account codes used by the generator's fixed mapping table.
const (
	AccountBank          = "1000"
	AccountReceivable    = "1200"
	AccountInventory     = "1300"
	AccountPayable       = "2100"
	AccountSalesRevenue  = "4100"
	AccountOtherIncome   = "4200"
	AccountVendorExpense = "5100"
	AccountBankCharges   = "5200"
)

// accountNames maps generator account codes to their display names.
var accountNames = map[string]string{
	AccountBank:          "Bank Account",
	AccountReceivable:    "Accounts Receivable",
	AccountInventory:     "Inventory/Purchases",
	AccountPayable:       "Accounts Payable",
	AccountSalesRevenue:  "Sales Revenue",
	AccountOtherIncome:   "Other Income",
	AccountVendorExpense: "Vendor Expenses",
	AccountBankCharges:   "Bank Charges/Expenses",
}

// AccountName returns the display name for a generator account code.
func AccountName(code string) string {
	return accountNames[code]
}
