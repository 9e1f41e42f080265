package gormrepo

import (
	"context"

	"library-circulation/internal/domain/fine"
	"library-circulation/internal/domain/loan"
	"library-circulation/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Books:   &BookRepository{db: tx},
		Readers: &ReaderRepository{db: tx},
		Loans:   &LoanRepository{db: tx},
		Fines:   &FineRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

func (u *GormUoW) WithinFineTx(ctx context.Context, fineID string, fn func(r uow.Repos, f *fine.Fine) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		f, err := r.Fines.GetByFineIDForUpdate(ctx, fineID)
		if err != nil {
			return err
		}
		return fn(r, f)
	})
}
