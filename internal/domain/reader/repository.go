package reader

import "context"

type Repository interface {
	Create(ctx context.Context, r *Reader) error
	GetByReaderID(ctx context.Context, readerID string) (*Reader, error)
}
