package gormrepo

import (
	"context"

	readerDomain "library-circulation/internal/domain/reader"

	"gorm.io/gorm"
)

type ReaderRepository struct{ db *gorm.DB }

func NewReaderRepository(db *gorm.DB) *ReaderRepository { return &ReaderRepository{db: db} }

func (r *ReaderRepository) Create(ctx context.Context, rd *readerDomain.Reader) error {
	return r.db.WithContext(ctx).Create(rd).Error
}

func (r *ReaderRepository) GetByReaderID(ctx context.Context, readerID string) (*readerDomain.Reader, error) {
	var out readerDomain.Reader
	res := r.db.WithContext(ctx).Where("reader_id = ?", readerID).First(&out)
	return &out, res.Error
}
