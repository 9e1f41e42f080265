package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/loan"
	"library-circulation/internal/domain/reader"
	"library-circulation/internal/domain/uow"
	"library-circulation/pkg/clock"
	"library-circulation/pkg/id"

	"gorm.io/gorm"
)

// Usecase is the loan ledger: the only writer of loans and of the
// borrowed/available transitions of books.
type Usecase struct {
	repo   loan.Repository
	uow    uow.UnitOfWork
	clock  clock.Clock
	period time.Duration
}

type Option func(*Usecase)

func WithClock(c clock.Clock) Option { return func(u *Usecase) { u.clock = c } }

// WithPeriod overrides the lending period (loan.DefaultPeriod).
func WithPeriod(d time.Duration) Option { return func(u *Usecase) { u.period = d } }

func NewUsecase(r loan.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{repo: r, uow: tx, clock: clock.System{}, period: loan.DefaultPeriod}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Checkout lends a book. The availability read is only a shortcut; the
// unique index on loans.active_book_id decides races, and the loser's
// transaction rolls back without touching the book.
func (u *Usecase) Checkout(ctx context.Context, in CheckoutInput) (*LoanDTO, error) {
	in.BookID = strings.TrimSpace(in.BookID)
	in.ReaderID = strings.TrimSpace(in.ReaderID)
	if in.BookID == "" || in.ReaderID == "" || in.StaffID == "" {
		return nil, loan.ErrMissingIDs
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Books.GetByBookID(ctx, in.BookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrNotFound
			}
			return err
		}
		if _, err := r.Readers.GetByReaderID(ctx, in.ReaderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return reader.ErrNotFound
			}
			return err
		}
		if b.Status != book.StatusAvailable {
			return loan.ErrBookUnavailable
		}

		now := u.clock.Now()
		hold := b.BookID
		l := &loan.Loan{
			LoanID:       id.NewID32(),
			BookID:       b.BookID,
			ReaderID:     in.ReaderID,
			StaffID:      in.StaffID,
			StartDate:    now,
			DueDate:      now.Add(u.period),
			Status:       loan.StatusActive,
			ActiveBookID: &hold,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Books.UpdateStatus(ctx, b.BookID, book.StatusBorrowed); err != nil {
			return fmt.Errorf("mark book borrowed: %w", err)
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Return closes an open loan. Returning twice is reported, not ignored.
func (u *Usecase) Return(ctx context.Context, loanID string) (*LoanDTO, error) {
	if strings.TrimSpace(loanID) == "" {
		return nil, loan.ErrMissingLoanID
	}
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status == loan.StatusReturned {
			return loan.ErrAlreadyReturned
		}
		now := u.clock.Now()
		ok, err := r.Loans.MarkReturned(ctx, l.LoanID, now)
		if err != nil {
			return err
		}
		if !ok {
			return loan.ErrAlreadyReturned
		}
		// leave maintenance/lost overrides alone
		if _, err := r.Books.SetStatusIf(ctx, l.BookID, book.StatusBorrowed, book.StatusAvailable); err != nil {
			return fmt.Errorf("mark book available: %w", err)
		}
		l.Status = loan.StatusReturned
		l.ReturnDate = &now
		l.ActiveBookID = nil
		dto = toDTO(l)
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loan.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// SweepOverdue recomputes the overdue flag from the clock. Safe to call
// repeatedly and concurrently; a second call in a row reports 0.
func (u *Usecase) SweepOverdue(ctx context.Context) (int64, error) {
	n, err := u.repo.MarkOverdue(ctx, u.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("sweep overdue loans: %w", err)
	}
	return n, nil
}

// ListOverdue reads overdue loans as stored; call SweepOverdue first.
func (u *Usecase) ListOverdue(ctx context.Context) ([]LoanDTO, error) {
	loans, err := u.repo.ListByStatus(ctx, loan.StatusOverdue)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, *toDTO(&loans[i]))
	}
	return out, nil
}
