// internal/pkg/money/money.go
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol is the rupee sign shown before amounts
const Symbol = "₹"

// en-IN groups in lakhs and crores: ₹12,34,567
var printer = message.NewPrinter(language.MustParse("en-IN"))

// Format renders an amount for display: ₹1,300 for whole rupees,
// ₹13,00,000 for thirteen lakh and ₹199.50 when paise are present
func Format(amount decimal.Decimal) string {
	amount = amount.Round(2)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	whole := printer.Sprintf("%s%s%d", sign, Symbol, rupees)
	if paise == 0 {
		return whole
	}
	return fmt.Sprintf("%s.%02d", whole, paise)
}
