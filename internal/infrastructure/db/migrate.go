package db

import (
	"fmt"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/fine"
	"library-circulation/internal/domain/loan"
	"library-circulation/internal/domain/reader"

	"gorm.io/gorm"
)

// Migrate creates or updates the circulation tables and their unique indexes
// (ux_loans_active_book, ux_fines_loan) which the checkout and accrual paths
// depend on for correctness.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&book.Book{}, &reader.Reader{}, &loan.Loan{}, &fine.Fine{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	m := db.Migrator()
	for _, idx := range []struct {
		model any
		name  string
	}{
		{&loan.Loan{}, "ux_loans_active_book"},
		{&fine.Fine{}, "ux_fines_loan"},
	} {
		if !m.HasIndex(idx.model, idx.name) {
			return fmt.Errorf("auto-migrate: missing index %s", idx.name)
		}
	}
	return nil
}
