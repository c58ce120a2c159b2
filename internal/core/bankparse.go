package core

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// BankStatementData is the result of parsing a plain-text bank statement:
// header fields, the transaction list, and figures computed from it.
type BankStatementData struct {
	AccountHolder   string            `json:"accountHolder,omitempty"`
	AccountNumber   string            `json:"accountNumber,omitempty"`
	BankName        string            `json:"bankName,omitempty"`
	IFSCCode        string            `json:"ifscCode,omitempty"`
	Branch          string            `json:"branch,omitempty"`
	StatementPeriod string            `json:"statementPeriod,omitempty"`
	Transactions    []BankTransaction `json:"transactions"`
	OpeningBalance  decimal.Decimal   `json:"openingBalance"`
	ClosingBalance  decimal.Decimal   `json:"closingBalance"`
	TotalCredits    decimal.Decimal   `json:"totalCredits"`
	TotalDebits     decimal.Decimal   `json:"totalDebits"`
}

var (
	statementDateRe   = regexp.MustCompile(`(\d{2}-\d{2}-\d{4})`)
	statementAmountRe = regexp.MustCompile(`Rs\.\s*([\d,]+\.?\d*)`)
)

// ParseBankStatement parses statement text with DD-MM-YYYY transaction dates
// and Rs.-prefixed amounts. A transaction begins on a dated line; following
// undated lines contribute amounts or description continuations until the
// next dated line.
func ParseBankStatement(content string) BankStatementData {
	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}

	data := BankStatementData{Transactions: []BankTransaction{}}
	parseStatementHeader(lines, &data)
	parseStatementTransactions(lines, &data)

	for _, txn := range data.Transactions {
		data.TotalCredits = data.TotalCredits.Add(txn.Credit.Decimal)
		data.TotalDebits = data.TotalDebits.Add(txn.Debit.Decimal)
	}
	if len(data.Transactions) > 0 {
		first := data.Transactions[0]
		data.OpeningBalance = first.Balance.Sub(first.Credit.Decimal).Add(first.Debit.Decimal)
		data.ClosingBalance = data.Transactions[len(data.Transactions)-1].Balance.Decimal
	}
	return data
}

// parseStatementHeader reads labeled header fields from the top of the
// statement. Each label is followed by its value on the next line.
func parseStatementHeader(lines []string, data *BankStatementData) {
	limit := len(lines)
	if limit > 20 {
		limit = 20
	}
	for i := 0; i < limit; i++ {
		if i+1 >= len(lines) {
			break
		}
		switch {
		case strings.Contains(lines[i], "Account Holder:"):
			data.AccountHolder = lines[i+1]
		case strings.Contains(lines[i], "Account Number:"):
			data.AccountNumber = lines[i+1]
		case strings.Contains(lines[i], "Bank Name:"):
			data.BankName = lines[i+1]
		case strings.Contains(lines[i], "IFSC Code:"):
			data.IFSCCode = lines[i+1]
		case strings.Contains(lines[i], "Branch:"):
			data.Branch = lines[i+1]
		}
	}
}

type pendingTransaction struct {
	started     bool
	date        DateValue
	description string
	debit       decimal.Decimal
	credit      decimal.Decimal
	balance     decimal.Decimal
}

func parseStatementTransactions(lines []string, data *BankStatementData) {
	inSection := false
	var current pendingTransaction

	flush := func() {
		if current.started && current.description != "" {
			data.Transactions = append(data.Transactions, BankTransaction{
				Date:        current.date,
				Description: strings.TrimSpace(current.description),
				Debit:       Amount{current.debit},
				Credit:      Amount{current.credit},
				Balance:     Amount{current.balance},
			})
		}
		current = pendingTransaction{}
	}

	for _, line := range lines {
		if strings.Contains(line, "Date") && strings.Contains(line, "Description") &&
			(strings.Contains(line, "Credit") || strings.Contains(line, "Debit")) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}

		if m := statementDateRe.FindString(line); m != "" {
			flush()
			current.started = true
			current.date = parseStatementDate(m)
			current.description = strings.TrimSpace(line[strings.Index(line, m)+len(m):])
			continue
		}

		if !current.started {
			continue
		}

		amounts := parseStatementAmounts(line)
		switch len(amounts) {
		case 0:
			// Undated line with no amounts continues the description.
			if line != "" && !startsWithDigit(line) && current.description != "" {
				current.description += " " + line
			}
		case 1:
			lower := strings.ToLower(line)
			switch {
			case strings.Contains(lower, "credit") || current.credit.IsZero():
				current.credit = amounts[0]
			case strings.Contains(lower, "debit") || current.debit.IsZero():
				current.debit = amounts[0]
			default:
				current.balance = amounts[0]
			}
		default:
			if current.credit.IsZero() && current.debit.IsZero() {
				if strings.Contains(strings.ToLower(line), "credit") {
					current.credit = amounts[0]
				} else {
					current.debit = amounts[0]
				}
				current.balance = amounts[1]
			} else {
				current.balance = amounts[len(amounts)-1]
			}
		}
	}
	flush()
}

func parseStatementAmounts(line string) []decimal.Decimal {
	matches := statementAmountRe.FindAllStringSubmatch(line, -1)
	amounts := make([]decimal.Decimal, 0, len(matches))
	for _, m := range matches {
		d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			d = decimal.Zero
		}
		amounts = append(amounts, d)
	}
	return amounts
}

func parseStatementDate(s string) DateValue {
	var d DateValue
	_ = d.UnmarshalJSON([]byte(`"` + s + `"`))
	return d
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
