package tax

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
)

// Bracket is one progressive tax band: income above Threshold (up to the next
// bracket's threshold) is taxed at Rate percent.
type Bracket struct {
	Threshold decimal.Decimal `json:"threshold"`
	Rate      decimal.Decimal `json:"rate"`
}

// BracketTax is the tax charged within a single bracket
type BracketTax struct {
	Bracket Bracket         `json:"bracket"`
	Taxed   decimal.Decimal `json:"taxed"`
	Tax     decimal.Decimal `json:"tax"`
}

// DefaultBrackets is the built-in progressive schedule used when the owner
// has not configured one.
func DefaultBrackets() []Bracket {
	return []Bracket{
		{Threshold: decimal.Zero, Rate: decimal.NewFromInt(10)},
		{Threshold: decimal.NewFromInt(12000), Rate: decimal.NewFromInt(22)},
		{Threshold: decimal.NewFromInt(50000), Rate: decimal.NewFromInt(32)},
		{Threshold: decimal.NewFromInt(160000), Rate: decimal.NewFromInt(37)},
	}
}

// ValidateBrackets checks that thresholds start at zero and strictly increase
func ValidateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return shared.NewDomainError("INVALID_BRACKETS", "At least one tax bracket is required")
	}
	if !brackets[0].Threshold.IsZero() {
		return shared.NewDomainError("INVALID_BRACKETS", "First bracket threshold must be zero")
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_BRACKETS", "Bracket rate must be between 0 and 100")
		}
		if i > 0 && !b.Threshold.GreaterThan(brackets[i-1].Threshold) {
			return shared.NewDomainError("INVALID_BRACKETS", "Bracket thresholds must strictly increase")
		}
	}
	return nil
}

// CalculateTax applies the progressive schedule to the taxable income.
// Each slice of income between consecutive thresholds is taxed at that
// bracket's rate; results are rounded to two decimals.
func CalculateTax(taxable decimal.Decimal, brackets []Bracket) (decimal.Decimal, []BracketTax) {
	if taxable.LessThanOrEqual(decimal.Zero) || len(brackets) == 0 {
		return decimal.Zero, nil
	}

	hundred := decimal.NewFromInt(100)
	total := decimal.Zero
	var perBracket []BracketTax

	for i, b := range brackets {
		upper := taxable
		if i+1 < len(brackets) && brackets[i+1].Threshold.LessThan(taxable) {
			upper = brackets[i+1].Threshold
		}
		if upper.LessThanOrEqual(b.Threshold) {
			break
		}
		taxed := upper.Sub(b.Threshold)
		tax := taxed.Mul(b.Rate).Div(hundred).Round(2)
		total = total.Add(tax)
		perBracket = append(perBracket, BracketTax{Bracket: b, Taxed: taxed, Tax: tax})
	}

	return total.Round(2), perBracket
}
