package planning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/planning"
	"github.com/fintrack/backend/internal/domain/shared"
)

// GoalInput contains goal fields for create and update
type GoalInput struct {
	Name         string          `json:"name" binding:"required,max=200"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	TargetDate   *time.Time      `json:"target_date"`
	AccountID    *uuid.UUID      `json:"account_id"`
}

// LoanInput contains the parameters of a fixed-rate loan
type LoanInput struct {
	Name       string          `json:"name" binding:"required,max=200"`
	Principal  decimal.Decimal `json:"principal" binding:"required"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
	TermMonths int             `json:"term_months" binding:"required,min=1"`
	StartDate  time.Time       `json:"start_date" binding:"required"`
}

// LoanView is a loan with its derived amortization figures
type LoanView struct {
	Loan           *planning.Loan          `json:"loan"`
	MonthlyPayment decimal.Decimal         `json:"monthly_payment"`
	Schedule       []planning.ScheduleEntry `json:"schedule,omitempty"`
}

// Service handles savings goal and loan use cases
type Service struct {
	goalRepo    planning.GoalRepository
	loanRepo    planning.LoanRepository
	accountRepo ledger.AccountRepository
	logger      *zap.Logger
}

// NewService creates a new planning service
func NewService(
	goalRepo planning.GoalRepository,
	loanRepo planning.LoanRepository,
	accountRepo ledger.AccountRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		goalRepo:    goalRepo,
		loanRepo:    loanRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// CreateGoal creates a savings goal, optionally linked to an account
func (s *Service) CreateGoal(ctx context.Context, ownerID uuid.UUID, input GoalInput) (*planning.Goal, error) {
	if input.AccountID != nil {
		if _, err := s.accountRepo.FindByID(ctx, ownerID, *input.AccountID); err != nil {
			return nil, shared.NewDomainError("INVALID_ACCOUNT", "Linked account not found")
		}
	}

	goal, err := planning.NewGoal(ownerID, input.Name, input.TargetAmount, input.TargetDate, input.AccountID)
	if err != nil {
		return nil, err
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		s.logger.Error("Failed to create goal", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create goal")
	}
	return goal, nil
}

// GetGoalProgress returns a goal with its saved amount. Linked goals measure
// the account balance; unlinked goals report zero saved.
func (s *Service) GetGoalProgress(ctx context.Context, ownerID, goalID uuid.UUID) (*planning.GoalProgress, error) {
	goal, err := s.goalRepo.FindByID(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}
	return s.progressFor(ctx, ownerID, goal)
}

// ListGoalProgress returns all goals with their progress
func (s *Service) ListGoalProgress(ctx context.Context, ownerID uuid.UUID) ([]*planning.GoalProgress, error) {
	goals, err := s.goalRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	progress := make([]*planning.GoalProgress, len(goals))
	for i, goal := range goals {
		p, err := s.progressFor(ctx, ownerID, goal)
		if err != nil {
			return nil, err
		}
		progress[i] = p
	}
	return progress, nil
}

// UpdateGoal changes mutable goal fields
func (s *Service) UpdateGoal(ctx context.Context, ownerID, goalID uuid.UUID, input GoalInput) (*planning.Goal, error) {
	goal, err := s.goalRepo.FindByID(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}
	if input.AccountID != nil {
		if _, err := s.accountRepo.FindByID(ctx, ownerID, *input.AccountID); err != nil {
			return nil, shared.NewDomainError("INVALID_ACCOUNT", "Linked account not found")
		}
	}
	if err := goal.Update(input.Name, input.TargetAmount, input.TargetDate, input.AccountID); err != nil {
		return nil, err
	}
	if err := s.goalRepo.Update(ctx, goal); err != nil {
		s.logger.Error("Failed to update goal", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update goal")
	}
	return goal, nil
}

// DeleteGoal removes a goal
func (s *Service) DeleteGoal(ctx context.Context, ownerID, goalID uuid.UUID) error {
	return s.goalRepo.Delete(ctx, ownerID, goalID)
}

// CreateLoan records a fixed-rate loan
func (s *Service) CreateLoan(ctx context.Context, ownerID uuid.UUID, input LoanInput) (*LoanView, error) {
	loan, err := planning.NewLoan(ownerID, input.Name, input.Principal, input.AnnualRate,
		input.TermMonths, input.StartDate)
	if err != nil {
		return nil, err
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		s.logger.Error("Failed to create loan", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create loan")
	}
	return &LoanView{Loan: loan, MonthlyPayment: loan.MonthlyPayment()}, nil
}

// GetLoanSchedule returns a loan with its full amortization schedule
func (s *Service) GetLoanSchedule(ctx context.Context, ownerID, loanID uuid.UUID) (*LoanView, error) {
	loan, err := s.loanRepo.FindByID(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}
	return &LoanView{
		Loan:           loan,
		MonthlyPayment: loan.MonthlyPayment(),
		Schedule:       loan.Schedule(),
	}, nil
}

// ListLoans returns the owner's loans with monthly payments
func (s *Service) ListLoans(ctx context.Context, ownerID uuid.UUID) ([]*LoanView, error) {
	loans, err := s.loanRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]*LoanView, len(loans))
	for i, loan := range loans {
		views[i] = &LoanView{Loan: loan, MonthlyPayment: loan.MonthlyPayment()}
	}
	return views, nil
}

// DeleteLoan removes a loan
func (s *Service) DeleteLoan(ctx context.Context, ownerID, loanID uuid.UUID) error {
	return s.loanRepo.Delete(ctx, ownerID, loanID)
}

func (s *Service) progressFor(ctx context.Context, ownerID uuid.UUID, goal *planning.Goal) (*planning.GoalProgress, error) {
	saved := decimal.Zero
	if goal.AccountID != nil {
		account, err := s.accountRepo.FindByID(ctx, ownerID, *goal.AccountID)
		if err == nil {
			delta, err := s.accountRepo.BalanceDelta(ctx, ownerID, account.ID, account.SnapshotDate)
			if err != nil {
				s.logger.Error("Failed to compute goal balance", zap.Error(err))
				return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute goal progress")
			}
			saved = account.InitialBalance.Add(delta)
		}
	}

	p := planning.ComputeGoalProgress(goal, saved)
	return &p, nil
}
