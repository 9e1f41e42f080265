package uowmock

import (
	"context"
	"errors"

	"library-circulation/internal/domain/fine"
	"library-circulation/internal/domain/loan"
	"library-circulation/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
	WithinFineTxFn func(ctx context.Context, fineID string, fn func(r uow.Repos, f *fine.Fine) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }

// Passthrough runs every callback directly against repos, locking nothing.
// Loan and fine lookups go through the matching ForUpdate getters.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) },
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(uow.Repos, *loan.Loan) error) error {
			l, err := repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(repos, l)
		},
		WithinFineTxFn: func(ctx context.Context, fineID string, fn func(uow.Repos, *fine.Fine) error) error {
			f, err := repos.Fines.GetByFineIDForUpdate(ctx, fineID)
			if err != nil {
				return err
			}
			return fn(repos, f)
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinLoanTx(fn func(context.Context, string, func(uow.Repos, *loan.Loan) error) error) *UoW {
	m.WithinLoanTxFn = fn
	return m
}
func (m *UoW) WithWithinFineTx(fn func(context.Context, string, func(uow.Repos, *fine.Fine) error) error) *UoW {
	m.WithinFineTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinFineTx(ctx context.Context, fineID string, fn func(r uow.Repos, f *fine.Fine) error) error {
	if m.WithinFineTxFn != nil {
		return m.WithinFineTxFn(ctx, fineID, fn)
	}
	return errUnimplemented
}
