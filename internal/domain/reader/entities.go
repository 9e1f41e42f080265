package reader

import (
	"fmt"
	"time"

	"library-circulation/internal/domain/errs"
)

var ErrNotFound = fmt.Errorf("reader %w", errs.ErrNotFound)

// Reader is reference data maintained outside the circulation core; loans
// only need to know that the id resolves.
type Reader struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ReaderID  string    `gorm:"column:reader_id;type:char(32);not null;uniqueIndex:ux_readers_reader_id" json:"reader_id"`
	Name      string    `gorm:"column:name;size:120;not null" json:"name"`
	Email     string    `gorm:"column:email;size:255;not null;uniqueIndex:ux_readers_email" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Reader) TableName() string { return "readers" }
