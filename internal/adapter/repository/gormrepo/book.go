package gormrepo

import (
	"context"

	bookDomain "library-circulation/internal/domain/book"

	"gorm.io/gorm"
)

type BookRepository struct{ db *gorm.DB }

func NewBookRepository(db *gorm.DB) *BookRepository { return &BookRepository{db: db} }

func (r *BookRepository) Create(ctx context.Context, b *bookDomain.Book) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookRepository) GetByBookID(ctx context.Context, bookID string) (*bookDomain.Book, error) {
	var out bookDomain.Book
	res := r.db.WithContext(ctx).Where("book_id = ?", bookID).First(&out)
	return &out, res.Error
}

func (r *BookRepository) UpdateStatus(ctx context.Context, bookID string, status bookDomain.Status) error {
	res := r.db.WithContext(ctx).Model(&bookDomain.Book{}).
		Where("book_id = ?", bookID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookRepository) SetStatusIf(ctx context.Context, bookID string, from, to bookDomain.Status) (bool, error) {
	res := r.db.WithContext(ctx).Model(&bookDomain.Book{}).
		Where("book_id = ? AND status = ?", bookID, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}
