package book

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"library-circulation/internal/domain/book"
	"library-circulation/pkg/id"

	"gorm.io/gorm"
)

var reISBN = regexp.MustCompile(`^\d{10}(\d{3})?$`)

// Usecase is the book registry. It validates enum membership only; keeping
// status consistent with loans is the loan ledger's job.
type Usecase struct{ repo book.Repository }

func NewUsecase(r book.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Create(ctx context.Context, in CreateBookInput) (*BookDTO, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, book.ErrInvalidTitle
	}
	b := &book.Book{
		BookID: id.NewID32(),
		Title:  title,
		Status: book.StatusAvailable,
	}
	if in.ISBN != "" {
		isbn := strings.NewReplacer("-", "", " ", "").Replace(in.ISBN)
		if !reISBN.MatchString(isbn) {
			return nil, book.ErrInvalidISBN
		}
		b.ISBN = &isbn
	}
	if err := u.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toDTO(b), nil
}

func (u *Usecase) Get(ctx context.Context, bookID string) (*BookDTO, error) {
	b, err := u.repo.GetByBookID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrNotFound
		}
		return nil, err
	}
	return toDTO(b), nil
}

// UpdateStatus is the administrative path (maintenance, lost, back to available).
func (u *Usecase) UpdateStatus(ctx context.Context, bookID string, status book.Status) (*BookDTO, error) {
	if !status.Valid() {
		return nil, book.ErrInvalidStatus
	}
	if err := u.repo.UpdateStatus(ctx, bookID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrNotFound
		}
		return nil, err
	}
	return u.Get(ctx, bookID)
}

func toDTO(b *book.Book) *BookDTO {
	dto := &BookDTO{BookID: b.BookID, Title: b.Title, Status: string(b.Status), CreatedAt: b.CreatedAt}
	if b.ISBN != nil {
		dto.ISBN = *b.ISBN
	}
	return dto
}
