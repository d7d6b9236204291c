package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	invoicingapp "github.com/fintrack/backend/internal/application/invoicing"
)

var _ Job = (*OverdueSweepJob)(nil)

// OverdueSweepJob flags SENT invoices past their due date as OVERDUE
type OverdueSweepJob struct {
	invoices *invoicingapp.InvoiceService
	logger   *zap.Logger
}

// NewOverdueSweepJob creates the overdue invoice sweep
func NewOverdueSweepJob(invoices *invoicingapp.InvoiceService, logger *zap.Logger) *OverdueSweepJob {
	return &OverdueSweepJob{invoices: invoices, logger: logger}
}

// Name returns the job identifier
func (j *OverdueSweepJob) Name() string {
	return "overdue_invoice_sweep"
}

// Run sweeps across all owners
func (j *OverdueSweepJob) Run(ctx context.Context) error {
	flagged, err := j.invoices.SweepOverdue(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if flagged > 0 {
		j.logger.Info("Invoices flagged overdue", zap.Int("count", flagged))
	}
	return nil
}
