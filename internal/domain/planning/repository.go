package planning

import (
	"context"

	"github.com/google/uuid"
)

// GoalRepository defines persistence operations for goals
type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Goal, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*Goal, error)
}

// LoanRepository defines persistence operations for loans
type LoanRepository interface {
	Create(ctx context.Context, loan *Loan) error
	Update(ctx context.Context, loan *Loan) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Loan, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*Loan, error)
}
