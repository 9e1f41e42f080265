package loan

import (
	"time"

	"library-circulation/internal/domain/loan"
)

type CheckoutInput struct {
	BookID   string `json:"book_id"`
	ReaderID string `json:"reader_id"`
	StaffID  string `json:"-"`
}

type LoanDTO struct {
	LoanID     string     `json:"loan_id"`
	BookID     string     `json:"book_id"`
	ReaderID   string     `json:"reader_id"`
	StaffID    string     `json:"staff_id"`
	StartDate  time.Time  `json:"start_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:     l.LoanID,
		BookID:     l.BookID,
		ReaderID:   l.ReaderID,
		StaffID:    l.StaffID,
		StartDate:  l.StartDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Status:     string(l.Status),
	}
}
