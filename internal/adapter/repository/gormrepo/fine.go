package gormrepo

import (
	"context"
	"time"

	fineDomain "library-circulation/internal/domain/fine"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FineRepository struct{ db *gorm.DB }

func NewFineRepository(db *gorm.DB) *FineRepository { return &FineRepository{db: db} }

// CreateIfAbsent relies on ux_fines_loan: INSERT ... ON CONFLICT (loan_id) DO
// NOTHING on sqlite/postgres, ON DUPLICATE KEY UPDATE id=id on mysql.
func (r *FineRepository) CreateIfAbsent(ctx context.Context, f *fineDomain.Fine) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "loan_id"}},
			DoNothing: true,
		}).
		Create(f)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *FineRepository) GetByFineID(ctx context.Context, fineID string) (*fineDomain.Fine, error) {
	var out fineDomain.Fine
	res := r.db.WithContext(ctx).Where("fine_id = ?", fineID).First(&out)
	return &out, res.Error
}

func (r *FineRepository) GetByFineIDForUpdate(ctx context.Context, fineID string) (*fineDomain.Fine, error) {
	var out fineDomain.Fine
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("fine_id = ?", fineID).
		First(&out)
	return &out, res.Error
}

func (r *FineRepository) MarkPaid(ctx context.Context, fineID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&fineDomain.Fine{}).
		Where("fine_id = ? AND status = ?", fineID, fineDomain.StatusPending).
		Updates(map[string]any{"status": fineDomain.StatusPaid, "paid_at": at})
	return res.RowsAffected > 0, res.Error
}
