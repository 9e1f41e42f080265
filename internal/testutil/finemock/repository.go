package finemock

import (
	"context"
	"time"

	domain "library-circulation/internal/domain/fine"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateIfAbsentFn       func(ctx context.Context, f *domain.Fine) (bool, error)
	GetByFineIDFn          func(ctx context.Context, fineID string) (*domain.Fine, error)
	GetByFineIDForUpdateFn func(ctx context.Context, fineID string) (*domain.Fine, error)
	MarkPaidFn             func(ctx context.Context, fineID string, at time.Time) (bool, error)
}

func (m *Repo) CreateIfAbsent(ctx context.Context, f *domain.Fine) (bool, error) {
	if m.CreateIfAbsentFn != nil {
		return m.CreateIfAbsentFn(ctx, f)
	}
	return true, nil
}

func (m *Repo) GetByFineID(ctx context.Context, fineID string) (*domain.Fine, error) {
	if m.GetByFineIDFn != nil {
		return m.GetByFineIDFn(ctx, fineID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByFineIDForUpdate(ctx context.Context, fineID string) (*domain.Fine, error) {
	if m.GetByFineIDForUpdateFn != nil {
		return m.GetByFineIDForUpdateFn(ctx, fineID)
	}
	return nil, context.Canceled
}

func (m *Repo) MarkPaid(ctx context.Context, fineID string, at time.Time) (bool, error) {
	if m.MarkPaidFn != nil {
		return m.MarkPaidFn(ctx, fineID, at)
	}
	return true, nil
}
