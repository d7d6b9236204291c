package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/tax"
)

// TaxPeriodModel is the persistence model for tax.TaxPeriod
type TaxPeriodModel struct {
	OwnedModel
	Year    int        `gorm:"not null;index"`
	Quarter int        `gorm:"not null"`
	Status  string     `gorm:"type:varchar(10);not null;index"`
	FiledAt *time.Time `gorm:""`
	PaidAt  *time.Time `gorm:""`
	Notes   string     `gorm:"type:text"`
}

// TableName returns the table name for TaxPeriodModel
func (TaxPeriodModel) TableName() string {
	return "tax_periods"
}

// ToDomain converts the model to a domain tax period
func (m *TaxPeriodModel) ToDomain() *tax.TaxPeriod {
	return &tax.TaxPeriod{
		OwnedEntity: m.OwnedModel.ToDomainOwned(),
		Year:        m.Year,
		Quarter:     m.Quarter,
		Status:      tax.PeriodStatus(m.Status),
		FiledAt:     m.FiledAt,
		PaidAt:      m.PaidAt,
		Notes:       m.Notes,
	}
}

// TaxPeriodModelFromDomain converts a domain tax period to the persistence model
func TaxPeriodModelFromDomain(p *tax.TaxPeriod) *TaxPeriodModel {
	m := &TaxPeriodModel{
		Year:    p.Year,
		Quarter: p.Quarter,
		Status:  string(p.Status),
		FiledAt: p.FiledAt,
		PaidAt:  p.PaidAt,
		Notes:   p.Notes,
	}
	m.FromDomainOwned(p.OwnedEntity)
	return m
}
