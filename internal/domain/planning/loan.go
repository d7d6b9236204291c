package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
)

// Loan is an amortized debt: fixed principal, annual rate, fixed term
type Loan struct {
	shared.OwnedEntity
	Name       string          `json:"name"`
	Principal  decimal.Decimal `json:"principal"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
	TermMonths int             `json:"term_months"`
	StartDate  time.Time       `json:"start_date"`
}

// NewLoan creates a new loan
func NewLoan(ownerID uuid.UUID, name string, principal, annualRate decimal.Decimal, termMonths int, startDate time.Time) (*Loan, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Loan name cannot be empty")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Principal must be positive")
	}
	if annualRate.IsNegative() || annualRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_RATE", "Annual rate must be between 0 and 100")
	}
	if termMonths <= 0 || termMonths > 600 {
		return nil, shared.NewDomainError("INVALID_TERM", "Term must be between 1 and 600 months")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Start date cannot be empty")
	}
	return &Loan{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		Principal:   principal,
		AnnualRate:  annualRate,
		TermMonths:  termMonths,
		StartDate:   startDate,
	}, nil
}

// MonthlyRate returns the periodic rate (annual percent / 12 / 100)
func (l *Loan) MonthlyRate() decimal.Decimal {
	return l.AnnualRate.Div(decimal.NewFromInt(1200))
}

// MonthlyPayment computes the standard amortization payment:
// P * r * (1+r)^n / ((1+r)^n - 1). A zero-rate loan is principal / term.
func (l *Loan) MonthlyPayment() decimal.Decimal {
	n := int64(l.TermMonths)
	if l.AnnualRate.IsZero() {
		return l.Principal.Div(decimal.NewFromInt(n)).Round(2)
	}
	r := l.MonthlyRate()
	factor := r.Add(decimal.NewFromInt(1)).Pow(decimal.NewFromInt(n))
	payment := l.Principal.Mul(r).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
	return payment.Round(2)
}

// ScheduleEntry is one row of the amortization schedule
type ScheduleEntry struct {
	PaymentNo int             `json:"payment_no"`
	DueDate   time.Time       `json:"due_date"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// Schedule builds the full amortization schedule. The final payment absorbs
// rounding drift so the balance ends exactly at zero.
func (l *Loan) Schedule() []ScheduleEntry {
	payment := l.MonthlyPayment()
	rate := l.MonthlyRate()
	balance := l.Principal
	entries := make([]ScheduleEntry, 0, l.TermMonths)

	for i := 1; i <= l.TermMonths; i++ {
		interest := balance.Mul(rate).Round(2)
		principalPart := payment.Sub(interest)
		rowPayment := payment
		if i == l.TermMonths || principalPart.GreaterThan(balance) {
			principalPart = balance
			rowPayment = interest.Add(principalPart)
		}
		balance = balance.Sub(principalPart)
		entries = append(entries, ScheduleEntry{
			PaymentNo: i,
			DueDate:   l.StartDate.AddDate(0, i, 0),
			Payment:   rowPayment.Round(2),
			Interest:  interest,
			Principal: principalPart.Round(2),
			Balance:   balance.Round(2),
		})
		if balance.IsZero() {
			break
		}
	}
	return entries
}

// OutstandingAfter returns the remaining balance after n payments
func (l *Loan) OutstandingAfter(payments int) decimal.Decimal {
	if payments <= 0 {
		return l.Principal
	}
	schedule := l.Schedule()
	if payments >= len(schedule) {
		return decimal.Zero
	}
	return schedule[payments-1].Balance
}
