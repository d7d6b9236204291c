package tax

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/tax"
)

// CreatePeriodInput contains the data for a new tax period
type CreatePeriodInput struct {
	Year    int    `json:"year" binding:"required"`
	Quarter int    `json:"quarter" binding:"min=0,max=4"`
	Notes   string `json:"notes"`
}

// Service handles tax period use cases
type Service struct {
	periodRepo tax.Repository
	logger     *zap.Logger
}

// NewService creates a new tax service
func NewService(periodRepo tax.Repository, logger *zap.Logger) *Service {
	return &Service{
		periodRepo: periodRepo,
		logger:     logger,
	}
}

// CreatePeriod opens a filing period. The (year, quarter) pair is unique per
// owner.
func (s *Service) CreatePeriod(ctx context.Context, ownerID uuid.UUID, input CreatePeriodInput) (*tax.TaxPeriod, error) {
	if _, err := s.periodRepo.FindByYearQuarter(ctx, ownerID, input.Year, input.Quarter); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A period for this year and quarter already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check period uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tax period")
	}

	period, err := tax.NewTaxPeriod(ownerID, input.Year, input.Quarter)
	if err != nil {
		return nil, err
	}
	period.Notes = input.Notes

	if err := s.periodRepo.Create(ctx, period); err != nil {
		s.logger.Error("Failed to create tax period", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tax period")
	}

	s.logger.Info("Tax period created", zap.String("period", period.Label()))
	return period, nil
}

// GetPeriod returns one tax period
func (s *Service) GetPeriod(ctx context.Context, ownerID, periodID uuid.UUID) (*tax.TaxPeriod, error) {
	return s.periodRepo.FindByID(ctx, ownerID, periodID)
}

// ListPeriods returns the owner's tax periods, optionally filtered by year
func (s *Service) ListPeriods(ctx context.Context, ownerID uuid.UUID, year *int) ([]*tax.TaxPeriod, error) {
	return s.periodRepo.List(ctx, ownerID, year)
}

// Estimate computes the tax position for a period using the progressive
// schedule. Taxable income is invoice revenue plus other income minus
// deductible expenses.
func (s *Service) Estimate(ctx context.Context, ownerID, periodID uuid.UUID) (*tax.Estimate, error) {
	period, err := s.periodRepo.FindByID(ctx, ownerID, periodID)
	if err != nil {
		return nil, err
	}

	from, to := period.Range()
	figures, err := s.periodRepo.Figures(ctx, ownerID, from, to)
	if err != nil {
		s.logger.Error("Failed to aggregate period figures", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute tax estimate")
	}

	taxable := figures.InvoiceRevenue.Add(figures.OtherIncome).Sub(figures.DeductibleExpense)
	brackets := tax.DefaultBrackets()
	total, perBracket := tax.CalculateTax(taxable, brackets)

	effectiveRate := decimal.Zero
	if taxable.IsPositive() {
		effectiveRate = total.Div(taxable).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &tax.Estimate{
		Period:            period,
		InvoiceRevenue:    figures.InvoiceRevenue,
		OtherIncome:       figures.OtherIncome,
		DeductibleExpense: figures.DeductibleExpense,
		TaxableIncome:     taxable,
		IncomeTax:         total,
		EffectiveRate:     effectiveRate,
		VATCollected:      figures.InvoiceVAT,
		Brackets:          perBracket,
	}, nil
}

// FilePeriod marks the period as filed
func (s *Service) FilePeriod(ctx context.Context, ownerID, periodID uuid.UUID) (*tax.TaxPeriod, error) {
	return s.transition(ctx, ownerID, periodID, (*tax.TaxPeriod).File)
}

// PayPeriod marks the filed period as settled
func (s *Service) PayPeriod(ctx context.Context, ownerID, periodID uuid.UUID) (*tax.TaxPeriod, error) {
	return s.transition(ctx, ownerID, periodID, (*tax.TaxPeriod).MarkPaid)
}

// ReopenPeriod reverts a filed period back to open
func (s *Service) ReopenPeriod(ctx context.Context, ownerID, periodID uuid.UUID) (*tax.TaxPeriod, error) {
	return s.transition(ctx, ownerID, periodID, (*tax.TaxPeriod).Reopen)
}

// DeletePeriod removes an open tax period
func (s *Service) DeletePeriod(ctx context.Context, ownerID, periodID uuid.UUID) error {
	period, err := s.periodRepo.FindByID(ctx, ownerID, periodID)
	if err != nil {
		return err
	}
	if period.Status != tax.PeriodStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Only open periods can be deleted")
	}
	return s.periodRepo.Delete(ctx, ownerID, periodID)
}

func (s *Service) transition(ctx context.Context, ownerID, periodID uuid.UUID, apply func(*tax.TaxPeriod) error) (*tax.TaxPeriod, error) {
	period, err := s.periodRepo.FindByID(ctx, ownerID, periodID)
	if err != nil {
		return nil, err
	}
	if err := apply(period); err != nil {
		return nil, err
	}
	if err := s.periodRepo.Update(ctx, period); err != nil {
		s.logger.Error("Failed to update tax period", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tax period")
	}
	s.logger.Info("Tax period updated",
		zap.String("period", period.Label()),
		zap.String("status", string(period.Status)))
	return period, nil
}
