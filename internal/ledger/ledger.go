// Package ledger holds the wallet bookkeeping arithmetic: sign-based
// classification, the fixed currency rate table and income/expense folds.
// Everything here is pure; persistence is the caller's job.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"budgettracker/internal/models"
)

// Classify returns INCOME for money >= 0 and EXPENSE for money < 0.
func Classify(money decimal.Decimal) models.TransactionType {
	if money.Sign() >= 0 {
		return models.TransactionTypeIncome
	}
	return models.TransactionTypeExpense
}

// Summary is the income/expense reduction of a set of transactions.
// TotalExpenses is reported as a positive magnitude.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Net           decimal.Decimal `json:"net"`
}

// TotalIncome sums the money of INCOME transactions.
func TotalIncome(txs []models.Transaction) decimal.Decimal {
	return sumOfType(txs, models.TransactionTypeIncome)
}

// TotalExpenses sums the money of EXPENSE transactions and negates it, so a
// wallet that spent 300 reports 300.
func TotalExpenses(txs []models.Transaction) decimal.Decimal {
	return sumOfType(txs, models.TransactionTypeExpense).Neg()
}

// Summarize folds txs into income, expenses and net (income - expenses).
func Summarize(txs []models.Transaction) Summary {
	income := TotalIncome(txs)
	expenses := TotalExpenses(txs)
	return Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Net:           income.Sub(expenses),
	}
}

func sumOfType(txs []models.Transaction, t models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for i := range txs {
		if txs[i].Type == t {
			total = total.Add(txs[i].Money)
		}
	}
	return total
}

// IntervalStart returns the beginning of the rolling window ending at now.
// Unknown intervals yield now, i.e. an empty window.
func IntervalStart(interval models.IntervalType, now time.Time) time.Time {
	switch interval {
	case models.IntervalWeekly:
		return now.AddDate(0, 0, -7)
	case models.IntervalMonthly:
		return now.AddDate(0, -1, 0)
	case models.IntervalYearly:
		return now.AddDate(-1, 0, 0)
	default:
		return now
	}
}

// DayBounds returns the first and last instant of the calendar day of date.
func DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
