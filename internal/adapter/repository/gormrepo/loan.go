package gormrepo

import (
	"context"
	"time"

	loanDomain "library-circulation/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	err := r.db.WithContext(ctx).Create(l).Error
	if isUniqueViolation(err) {
		return loanDomain.ErrBookUnavailable
	}
	return err
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// GetByLoanIDForUpdate takes a row lock (SQLite ignores the clause and
// serialises writers instead).
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) MarkReturned(ctx context.Context, loanID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("loan_id = ? AND status IN ?", loanID, []loanDomain.Status{loanDomain.StatusActive, loanDomain.StatusOverdue}).
		Updates(map[string]any{
			"status":         loanDomain.StatusReturned,
			"return_date":    at,
			"active_book_id": gorm.Expr("NULL"),
		})
	return res.RowsAffected > 0, res.Error
}

func (r *LoanRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("status = ? AND due_date < ?", loanDomain.StatusActive, now).
		Update("status", loanDomain.StatusOverdue)
	return res.RowsAffected, res.Error
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("due_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListOverdueWithoutFine(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("loans.status = ?", loanDomain.StatusOverdue).
		Where("NOT EXISTS (SELECT 1 FROM fines WHERE fines.loan_id = loans.id)").
		Order("loans.due_date ASC, loans.id ASC").
		Find(&out)
	return out, res.Error
}
