package loan

import (
	"context"
	"time"
)

type Repository interface {
	// Create inserts an open loan. A second open loan for the same book is
	// rejected by storage and surfaces as ErrBookUnavailable.
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// MarkReturned closes an open loan; false if it was not open any more.
	MarkReturned(ctx context.Context, loanID string, at time.Time) (bool, error)
	// MarkOverdue moves every active loan due before now to overdue.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	ListByStatus(ctx context.Context, status Status) ([]Loan, error)
	// ListOverdueWithoutFine returns overdue loans that have no fine row yet.
	ListOverdueWithoutFine(ctx context.Context) ([]Loan, error)
}
