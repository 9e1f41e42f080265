package readermock

import (
	"context"

	domain "library-circulation/internal/domain/reader"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, r *domain.Reader) error
	GetByReaderIDFn func(ctx context.Context, readerID string) (*domain.Reader, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Reader) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByReaderID(ctx context.Context, readerID string) (*domain.Reader, error) {
	if m.GetByReaderIDFn != nil {
		return m.GetByReaderIDFn(ctx, readerID)
	}
	return nil, context.Canceled
}
