package fine

import (
	"time"

	"github.com/shopspring/decimal"

	"library-circulation/internal/domain/fine"
)

type FineDTO struct {
	FineID            string          `json:"fine_id"`
	LoanID            string          `json:"loan_id,omitempty"`
	DueDate           time.Time       `json:"due_date"`
	AccumulatedAmount decimal.Decimal `json:"accumulated_amount"`
	PenaltyRate       decimal.Decimal `json:"penalty_rate"`
	Status            string          `json:"status"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
}

func toDTO(f *fine.Fine, loanID string) *FineDTO {
	return &FineDTO{
		FineID:            f.FineID,
		LoanID:            loanID,
		DueDate:           f.DueDate,
		AccumulatedAmount: f.AccumulatedAmount,
		PenaltyRate:       f.PenaltyRate,
		Status:            string(f.Status),
		PaidAt:            f.PaidAt,
	}
}
