package loanmock

import (
	"context"
	"time"

	domain "library-circulation/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset getters return context.Canceled; unset writers are no-ops.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.Loan) error
	GetByIDFn                func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByLoanIDFn            func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn   func(ctx context.Context, loanID string) (*domain.Loan, error)
	MarkReturnedFn           func(ctx context.Context, loanID string, at time.Time) (bool, error)
	MarkOverdueFn            func(ctx context.Context, now time.Time) (int64, error)
	ListByStatusFn           func(ctx context.Context, status domain.Status) ([]domain.Loan, error)
	ListOverdueWithoutFineFn func(ctx context.Context) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) MarkReturned(ctx context.Context, loanID string, at time.Time) (bool, error) {
	if m.MarkReturnedFn != nil {
		return m.MarkReturnedFn(ctx, loanID, at)
	}
	return true, nil
}

func (m *Repo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	if m.MarkOverdueFn != nil {
		return m.MarkOverdueFn(ctx, now)
	}
	return 0, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) ListOverdueWithoutFine(ctx context.Context) ([]domain.Loan, error) {
	if m.ListOverdueWithoutFineFn != nil {
		return m.ListOverdueWithoutFineFn(ctx)
	}
	return nil, nil
}
