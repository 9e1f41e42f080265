package book

import "context"

type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByBookID(ctx context.Context, bookID string) (*Book, error)
	// UpdateStatus sets status unconditionally; gorm.ErrRecordNotFound if no such book.
	UpdateStatus(ctx context.Context, bookID string, status Status) error
	// SetStatusIf moves from -> to only when the row is currently in from.
	SetStatusIf(ctx context.Context, bookID string, from, to Status) (bool, error)
}
