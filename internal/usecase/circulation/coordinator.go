// Package circulation is the externally reachable surface of the service.
// It authorizes the caller and sequences the ledger and accrual usecases;
// it holds no state of its own.
package circulation

import (
	"context"
	"errors"
	"fmt"

	"library-circulation/internal/domain/actor"
	"library-circulation/internal/domain/errs"
	finesvc "library-circulation/internal/usecase/fine"
	loansvc "library-circulation/internal/usecase/loan"
)

var (
	ErrStaffOnly     = fmt.Errorf("%w: librarian or admin role required", errs.ErrForbidden)
	ErrNotFineOwner  = fmt.Errorf("%w: fine belongs to another reader", errs.ErrForbidden)
	ErrUnknownCaller = fmt.Errorf("%w: caller has no valid role", errs.ErrForbidden)
)

type Ledger interface {
	Checkout(ctx context.Context, in loansvc.CheckoutInput) (*loansvc.LoanDTO, error)
	Return(ctx context.Context, loanID string) (*loansvc.LoanDTO, error)
	SweepOverdue(ctx context.Context) (int64, error)
	ListOverdue(ctx context.Context) ([]loansvc.LoanDTO, error)
}

type Accrual interface {
	AccrueForOverdueLoans(ctx context.Context) (int, error)
	Pay(ctx context.Context, fineID string) (*finesvc.FineDTO, error)
	ReaderOf(ctx context.Context, fineID string) (string, error)
}

type Coordinator struct {
	ledger  Ledger
	accrual Accrual
}

func NewCoordinator(l Ledger, a Accrual) *Coordinator {
	return &Coordinator{ledger: l, accrual: a}
}

func requireStaff(a actor.Actor) error {
	if !a.Role.Valid() || a.ID == "" {
		return ErrUnknownCaller
	}
	if !a.IsStaff() {
		return ErrStaffOnly
	}
	return nil
}

// Checkout lends bookID to readerID on behalf of a staff member, who is
// recorded on the loan.
func (c *Coordinator) Checkout(ctx context.Context, a actor.Actor, bookID, readerID string) (*loansvc.LoanDTO, error) {
	if err := requireStaff(a); err != nil {
		return nil, err
	}
	return c.ledger.Checkout(ctx, loansvc.CheckoutInput{BookID: bookID, ReaderID: readerID, StaffID: a.ID})
}

func (c *Coordinator) ReturnLoan(ctx context.Context, a actor.Actor, loanID string) (*loansvc.LoanDTO, error) {
	if err := requireStaff(a); err != nil {
		return nil, err
	}
	return c.ledger.Return(ctx, loanID)
}

// ListOverdueLoans sweeps first so the answer reflects the current time.
func (c *Coordinator) ListOverdueLoans(ctx context.Context, a actor.Actor) ([]loansvc.LoanDTO, error) {
	if err := requireStaff(a); err != nil {
		return nil, err
	}
	if _, err := c.ledger.SweepOverdue(ctx); err != nil {
		return nil, err
	}
	return c.ledger.ListOverdue(ctx)
}

func (c *Coordinator) AccrueFines(ctx context.Context, a actor.Actor) (int, error) {
	if err := requireStaff(a); err != nil {
		return 0, err
	}
	return c.accrual.AccrueForOverdueLoans(ctx)
}

// PayFine is open to staff and to the reader who owns the fine.
func (c *Coordinator) PayFine(ctx context.Context, a actor.Actor, fineID string) (*finesvc.FineDTO, error) {
	err := requireStaff(a)
	switch {
	case err == nil:
	case errors.Is(err, ErrStaffOnly):
		owner, err := c.accrual.ReaderOf(ctx, fineID)
		if err != nil {
			return nil, err
		}
		if owner != a.ID {
			return nil, ErrNotFineOwner
		}
	default:
		return nil, err
	}
	return c.accrual.Pay(ctx, fineID)
}
