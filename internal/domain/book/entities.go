package book

import (
	"fmt"
	"time"

	"library-circulation/internal/domain/errs"
)

var (
	ErrNotFound      = fmt.Errorf("book %w", errs.ErrNotFound)
	ErrInvalidStatus = fmt.Errorf("%w: unknown book status", errs.ErrValidation)
	ErrInvalidTitle  = fmt.Errorf("%w: book must have a title", errs.ErrValidation)
	ErrInvalidISBN   = fmt.Errorf("%w: isbn must be 10 or 13 digits", errs.ErrValidation)
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusBorrowed    Status = "borrowed"
	StatusMaintenance Status = "maintenance"
	StatusLost        Status = "lost"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusBorrowed, StatusMaintenance, StatusLost:
		return true
	}
	return false
}

// Book is one physical copy. Status borrowed is owned by the loan ledger;
// maintenance and lost are administrative overrides.
type Book struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	BookID    string    `gorm:"column:book_id;type:char(32);not null;uniqueIndex:ux_books_book_id" json:"book_id"`
	Title     string    `gorm:"column:title;size:255;not null" json:"title"`
	ISBN      *string   `gorm:"column:isbn;size:13;uniqueIndex:ux_books_isbn" json:"isbn,omitempty"`
	Status    Status    `gorm:"column:status;type:varchar(16);not null;default:'available'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string { return "books" }
