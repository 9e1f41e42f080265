package loan

import (
	"fmt"
	"time"

	"library-circulation/internal/domain/errs"
)

var (
	ErrNotFound        = fmt.Errorf("loan %w", errs.ErrNotFound)
	ErrAlreadyReturned = fmt.Errorf("%w: book has already been returned", errs.ErrInvalidState)
	ErrBookUnavailable = fmt.Errorf("%w: book is currently on loan or not lendable", errs.ErrUnavailable)
	ErrMissingIDs      = fmt.Errorf("%w: loan must include book_id and reader_id", errs.ErrValidation)
	ErrMissingLoanID   = fmt.Errorf("%w: loan_id is required", errs.ErrValidation)
)

// DefaultPeriod is the lending period applied when none is configured.
const DefaultPeriod = 14 * 24 * time.Hour

type Status string

const (
	StatusActive   Status = "active"
	StatusOverdue  Status = "overdue"
	StatusReturned Status = "returned"
)

// Open reports whether the loan still holds its book.
func (s Status) Open() bool { return s == StatusActive || s == StatusOverdue }

// Loan records one book being out with one reader.
//
// ActiveBookID mirrors BookID while the loan is open and is NULL once it is
// returned. Its unique index is what guarantees a single holder per book:
// of two concurrent inserts for the same book only one can commit.
type Loan struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID       string     `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	BookID       string     `gorm:"column:book_id;type:char(32);not null;index:idx_loans_book" json:"book_id"`
	ReaderID     string     `gorm:"column:reader_id;type:char(32);not null;index:idx_loans_reader" json:"reader_id"`
	StaffID      string     `gorm:"column:staff_id;size:64;not null" json:"staff_id"`
	StartDate    time.Time  `gorm:"column:start_date;not null" json:"start_date"`
	DueDate      time.Time  `gorm:"column:due_date;not null;index:idx_loans_status_due,priority:2" json:"due_date"`
	ReturnDate   *time.Time `gorm:"column:return_date" json:"return_date,omitempty"`
	Status       Status     `gorm:"column:status;type:varchar(16);not null;default:'active';index:idx_loans_status_due,priority:1" json:"status"`
	ActiveBookID *string    `gorm:"column:active_book_id;type:char(32);uniqueIndex:ux_loans_active_book" json:"-"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// DaysOverdue is the number of started days past the due date at now, or 0.
func (l *Loan) DaysOverdue(now time.Time) int {
	late := now.Sub(l.DueDate)
	if late <= 0 {
		return 0
	}
	days := int(late / (24 * time.Hour))
	if late%(24*time.Hour) != 0 {
		days++
	}
	return days
}
