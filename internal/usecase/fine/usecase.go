package fine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"library-circulation/internal/domain/fine"
	"library-circulation/internal/domain/loan"
	"library-circulation/internal/domain/uow"
	"library-circulation/pkg/clock"
	"library-circulation/pkg/id"
)

// Sweeper brings loan statuses up to date before accrual reads them.
type Sweeper interface {
	SweepOverdue(ctx context.Context) (int64, error)
}

type Usecase struct {
	fines    fine.Repository
	loans    loan.Repository
	uow      uow.UnitOfWork
	sweeper  Sweeper
	clock    clock.Clock
	rate     decimal.Decimal
	dueAfter time.Duration
}

type Option func(*Usecase)

func WithClock(c clock.Clock) Option { return func(u *Usecase) { u.clock = c } }

// WithPenaltyRate sets the charge per started overdue day.
func WithPenaltyRate(r decimal.Decimal) Option { return func(u *Usecase) { u.rate = r } }

// WithDueAfter sets how long a reader has to pay a new fine.
func WithDueAfter(d time.Duration) Option { return func(u *Usecase) { u.dueAfter = d } }

func NewUsecase(fines fine.Repository, loans loan.Repository, tx uow.UnitOfWork, s Sweeper, opts ...Option) *Usecase {
	u := &Usecase{
		fines:    fines,
		loans:    loans,
		uow:      tx,
		sweeper:  s,
		clock:    clock.System{},
		rate:     fine.DefaultPenaltyRate,
		dueAfter: fine.DueAfter,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// AccrueForOverdueLoans creates one pending fine per overdue loan that has
// none yet and returns how many were inserted. A loan whose insert fails is
// logged and left for the next run.
func (u *Usecase) AccrueForOverdueLoans(ctx context.Context) (int, error) {
	if _, err := u.sweeper.SweepOverdue(ctx); err != nil {
		return 0, err
	}
	loans, err := u.loans.ListOverdueWithoutFine(ctx)
	if err != nil {
		return 0, fmt.Errorf("list overdue loans: %w", err)
	}

	now := u.clock.Now()
	created := 0
	for i := range loans {
		l := &loans[i]
		f := &fine.Fine{
			FineID:            id.NewID32(),
			LoanID:            l.ID,
			DueDate:           now.Add(u.dueAfter),
			AccumulatedAmount: fine.Amount(l.DaysOverdue(now), u.rate),
			PenaltyRate:       u.rate,
			Status:            fine.StatusPending,
		}
		ok, err := u.fines.CreateIfAbsent(ctx, f)
		if err != nil {
			log.Printf("accrue fine for loan %s: %v", l.LoanID, err)
			continue
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// Pay settles a pending fine.
func (u *Usecase) Pay(ctx context.Context, fineID string) (*FineDTO, error) {
	if strings.TrimSpace(fineID) == "" {
		return nil, fine.ErrMissingID
	}
	var dto *FineDTO
	err := u.uow.WithinFineTx(ctx, fineID, func(r uow.Repos, f *fine.Fine) error {
		switch f.Status {
		case fine.StatusPaid:
			return fine.ErrAlreadyPaid
		case fine.StatusWaived:
			return fine.ErrWaived
		}
		now := u.clock.Now()
		ok, err := r.Fines.MarkPaid(ctx, f.FineID, now)
		if err != nil {
			return err
		}
		if !ok {
			return fine.ErrAlreadyPaid
		}
		f.Status = fine.StatusPaid
		f.PaidAt = &now

		var loanID string
		if l, err := r.Loans.GetByID(ctx, f.LoanID); err == nil {
			loanID = l.LoanID
		}
		dto = toDTO(f, loanID)
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fine.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ReaderOf returns the reader who owns the loan the fine was accrued on.
func (u *Usecase) ReaderOf(ctx context.Context, fineID string) (string, error) {
	if strings.TrimSpace(fineID) == "" {
		return "", fine.ErrMissingID
	}
	f, err := u.fines.GetByFineID(ctx, fineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fine.ErrNotFound
		}
		return "", err
	}
	l, err := u.loans.GetByID(ctx, f.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", loan.ErrNotFound
		}
		return "", err
	}
	return l.ReaderID, nil
}
