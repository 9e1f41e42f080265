package fine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"library-circulation/internal/domain/errs"
)

var (
	ErrNotFound    = fmt.Errorf("fine %w", errs.ErrNotFound)
	ErrAlreadyPaid = fmt.Errorf("%w: fine has already been paid", errs.ErrInvalidState)
	ErrWaived      = fmt.Errorf("%w: fine has been waived", errs.ErrInvalidState)
	ErrMissingID   = fmt.Errorf("%w: fine_id is required", errs.ErrValidation)
)

// DueAfter is how long a reader has to pay a newly accrued fine.
const DueAfter = 30 * 24 * time.Hour

// DefaultPenaltyRate is charged per started overdue day.
var DefaultPenaltyRate = decimal.NewFromInt(1)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusWaived  Status = "waived"
)

// Fine is accrued at most once per loan (unique loan_id).
type Fine struct {
	ID                uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	FineID            string          `gorm:"column:fine_id;type:char(32);not null;uniqueIndex:ux_fines_fine_id" json:"fine_id"`
	LoanID            uint64          `gorm:"column:loan_id;not null;uniqueIndex:ux_fines_loan" json:"-"`
	DueDate           time.Time       `gorm:"column:due_date;not null" json:"due_date"`
	AccumulatedAmount decimal.Decimal `gorm:"column:accumulated_amount;type:decimal(12,2);not null" json:"accumulated_amount"`
	PenaltyRate       decimal.Decimal `gorm:"column:penalty_rate;type:decimal(8,2);not null" json:"penalty_rate"`
	Status            Status          `gorm:"column:status;type:varchar(16);not null;default:'pending'" json:"status"`
	PaidAt            *time.Time      `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Fine) TableName() string { return "fines" }

// Amount is days × rate.
func Amount(days int, rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(days))).Round(2)
}
