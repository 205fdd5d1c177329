package models

// Currency is a wallet currency code.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyCZK Currency = "CZK"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether c is one of the supported wallet currencies.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyEUR, CurrencyCZK, CurrencyUSD:
		return true
	}
	return false
}

func (c Currency) String() string { return string(c) }
