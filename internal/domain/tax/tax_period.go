package tax

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
)

// PeriodStatus represents the filing state of a tax period
type PeriodStatus string

const (
	PeriodStatusOpen  PeriodStatus = "OPEN"
	PeriodStatusFiled PeriodStatus = "FILED"
	PeriodStatusPaid  PeriodStatus = "PAID"
)

// IsValid checks if the status is valid
func (s PeriodStatus) IsValid() bool {
	return s == PeriodStatusOpen || s == PeriodStatusFiled || s == PeriodStatusPaid
}

// TaxPeriod is one filing window: a full year (quarter 0) or a quarter (1-4)
type TaxPeriod struct {
	shared.OwnedEntity
	Year    int          `json:"year"`
	Quarter int          `json:"quarter"`
	Status  PeriodStatus `json:"status"`
	FiledAt *time.Time   `json:"filed_at"`
	PaidAt  *time.Time   `json:"paid_at"`
	Notes   string       `json:"notes"`
}

// NewTaxPeriod creates an open tax period
func NewTaxPeriod(ownerID uuid.UUID, year, quarter int) (*TaxPeriod, error) {
	if year < 2000 || year > 2200 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year is out of range")
	}
	if quarter < 0 || quarter > 4 {
		return nil, shared.NewDomainError("INVALID_QUARTER", "Quarter must be between 0 (annual) and 4")
	}
	return &TaxPeriod{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Year:        year,
		Quarter:     quarter,
		Status:      PeriodStatusOpen,
	}, nil
}

// Range returns the inclusive start and exclusive end of the period
func (p *TaxPeriod) Range() (time.Time, time.Time) {
	if p.Quarter == 0 {
		start := time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	}
	start := time.Date(p.Year, time.Month((p.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 3, 0)
}

// Label returns a human-readable period name
func (p *TaxPeriod) Label() string {
	if p.Quarter == 0 {
		return fmt.Sprintf("%d", p.Year)
	}
	return fmt.Sprintf("%d-Q%d", p.Year, p.Quarter)
}

// File marks the period as filed
func (p *TaxPeriod) File() error {
	if p.Status != PeriodStatusOpen {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot file period in %s status", p.Status))
	}
	now := time.Now()
	p.Status = PeriodStatusFiled
	p.FiledAt = &now
	p.UpdatedAt = now
	return nil
}

// MarkPaid marks the filed period as settled
func (p *TaxPeriod) MarkPaid() error {
	if p.Status != PeriodStatusFiled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark period paid in %s status", p.Status))
	}
	now := time.Now()
	p.Status = PeriodStatusPaid
	p.PaidAt = &now
	p.UpdatedAt = now
	return nil
}

// Reopen reverts a filed period back to open
func (p *TaxPeriod) Reopen() error {
	if p.Status != PeriodStatusFiled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reopen period in %s status", p.Status))
	}
	p.Status = PeriodStatusOpen
	p.FiledAt = nil
	p.Touch()
	return nil
}

// Estimate is the computed tax position for a period
type Estimate struct {
	Period            *TaxPeriod
	InvoiceRevenue    decimal.Decimal
	OtherIncome       decimal.Decimal
	DeductibleExpense decimal.Decimal
	TaxableIncome     decimal.Decimal
	IncomeTax         decimal.Decimal
	EffectiveRate     decimal.Decimal
	VATCollected      decimal.Decimal
	Brackets          []BracketTax
}
