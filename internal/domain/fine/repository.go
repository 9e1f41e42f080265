package fine

import (
	"context"
	"time"
)

type Repository interface {
	// CreateIfAbsent inserts f unless a fine for f.LoanID exists. The check and
	// the insert are one statement; created is false when nothing was written.
	CreateIfAbsent(ctx context.Context, f *Fine) (created bool, err error)
	GetByFineID(ctx context.Context, fineID string) (*Fine, error)
	GetByFineIDForUpdate(ctx context.Context, fineID string) (*Fine, error)
	// MarkPaid moves a pending fine to paid; false if it was not pending.
	MarkPaid(ctx context.Context, fineID string, at time.Time) (bool, error)
}
