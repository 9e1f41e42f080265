package gormrepo

import (
	"context"
	"testing"
	"time"

	bookDomain "library-circulation/internal/domain/book"
	loanDomain "library-circulation/internal/domain/loan"
	readerDomain "library-circulation/internal/domain/reader"
	"library-circulation/internal/infrastructure/db"
	"library-circulation/pkg/id"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns a migrated in-memory sqlite DB on a single connection.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenGorm(db.DriverSQLite, ":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedBook(t *testing.T, gdb *gorm.DB, status bookDomain.Status) *bookDomain.Book {
	t.Helper()
	b := &bookDomain.Book{BookID: id.NewID32(), Title: "The Left Hand of Darkness", Status: status}
	if err := NewBookRepository(gdb).Create(context.Background(), b); err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return b
}

func seedReader(t *testing.T, gdb *gorm.DB) *readerDomain.Reader {
	t.Helper()
	r := &readerDomain.Reader{ReaderID: id.NewID32(), Name: "Reader", Email: id.NewID32() + "@example.org"}
	if err := NewReaderRepository(gdb).Create(context.Background(), r); err != nil {
		t.Fatalf("seed reader: %v", err)
	}
	return r
}

func makeLoan(bookID, readerID string, start time.Time) *loanDomain.Loan {
	hold := bookID
	return &loanDomain.Loan{
		LoanID:       id.NewID32(),
		BookID:       bookID,
		ReaderID:     readerID,
		StaffID:      "librarian-1",
		StartDate:    start,
		DueDate:      start.Add(loanDomain.DefaultPeriod),
		Status:       loanDomain.StatusActive,
		ActiveBookID: &hold,
	}
}
