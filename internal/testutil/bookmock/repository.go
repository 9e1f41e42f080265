package bookmock

import (
	"context"

	domain "library-circulation/internal/domain/book"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, b *domain.Book) error
	GetByBookIDFn  func(ctx context.Context, bookID string) (*domain.Book, error)
	UpdateStatusFn func(ctx context.Context, bookID string, status domain.Status) error
	SetStatusIfFn  func(ctx context.Context, bookID string, from, to domain.Status) (bool, error)
}

func (m *Repo) Create(ctx context.Context, b *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByBookID(ctx context.Context, bookID string) (*domain.Book, error) {
	if m.GetByBookIDFn != nil {
		return m.GetByBookIDFn(ctx, bookID)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateStatus(ctx context.Context, bookID string, status domain.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, bookID, status)
	}
	return nil
}

func (m *Repo) SetStatusIf(ctx context.Context, bookID string, from, to domain.Status) (bool, error) {
	if m.SetStatusIfFn != nil {
		return m.SetStatusIfFn(ctx, bookID, from, to)
	}
	return true, nil
}
