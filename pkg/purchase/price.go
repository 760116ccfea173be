package purchase

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// formatPrice renders a display price such as "US$ 9.99" when the store
// reports only a numeric amount and an ISO currency code. Returns "" for
// unknown codes; the price-string field is then omitted.
func formatPrice(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return ""
	}
	p := message.NewPrinter(language.English)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}
