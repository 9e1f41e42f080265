package uow

import (
	"context"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/fine"
	"library-circulation/internal/domain/loan"
	"library-circulation/internal/domain/reader"
)

// Repos are bound to one transaction.
type Repos struct {
	Books   book.Repository
	Readers reader.Repository
	Loans   loan.Repository
	Fines   fine.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in; gorm.ErrRecordNotFound if absent
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
	// lock the fine row first, then pass it in; gorm.ErrRecordNotFound if absent
	WithinFineTx(ctx context.Context, fineID string, fn func(r Repos, f *fine.Fine) error) error
}
