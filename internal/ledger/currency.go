package ledger

import (
	"github.com/shopspring/decimal"

	"budgettracker/internal/models"
)

// LimitMode selects how the budget limit is converted on a currency change.
type LimitMode int

const (
	// LimitFromAmount reproduces the historical CZK->EUR behaviour where the
	// new budget limit is derived from the wallet amount instead of the old
	// limit. All other pairs convert the limit itself.
	LimitFromAmount LimitMode = iota
	// LimitFromLimit always converts the old budget limit.
	LimitFromLimit
)

type pair struct {
	from, to models.Currency
}

// rates is a fixed table. The values are deliberately not reciprocal.
var rates = map[pair]decimal.Decimal{
	{models.CurrencyEUR, models.CurrencyCZK}: decimal.RequireFromString("22"),
	{models.CurrencyUSD, models.CurrencyCZK}: decimal.RequireFromString("22.05"),
	{models.CurrencyCZK, models.CurrencyEUR}: decimal.RequireFromString("0.042"),
	{models.CurrencyUSD, models.CurrencyEUR}: decimal.RequireFromString("0.93"),
	{models.CurrencyEUR, models.CurrencyUSD}: decimal.RequireFromString("1.07"),
	{models.CurrencyCZK, models.CurrencyUSD}: decimal.RequireFromString("0.045"),
}

// Rate returns the multiplier applied when converting from one currency to
// another. ok is false for identical or unsupported currencies.
func Rate(from, to models.Currency) (rate decimal.Decimal, ok bool) {
	rate, ok = rates[pair{from, to}]
	return rate, ok
}

// ConvertWallet rebalances w into target in place: amount and budget limit
// are multiplied by the pair rate and the currency is switched. When no rate
// applies only the currency is set.
func ConvertWallet(w *models.Wallet, target models.Currency, mode LimitMode) {
	source := w.Currency
	if rate, ok := Rate(source, target); ok {
		limitBase := w.BudgetLimit
		if mode == LimitFromAmount && source == models.CurrencyCZK && target == models.CurrencyEUR {
			limitBase = w.Amount
		}
		w.Amount = w.Amount.Mul(rate)
		w.BudgetLimit = limitBase.Mul(rate)
	}
	w.Currency = target
}
