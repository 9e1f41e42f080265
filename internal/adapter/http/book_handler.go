package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"library-circulation/internal/domain/book"
	booksvc "library-circulation/internal/usecase/book"
)

// BookRegistry is what BookHandler needs from the book usecase.
type BookRegistry interface {
	Create(ctx context.Context, in booksvc.CreateBookInput) (*booksvc.BookDTO, error)
	Get(ctx context.Context, bookID string) (*booksvc.BookDTO, error)
	UpdateStatus(ctx context.Context, bookID string, status book.Status) (*booksvc.BookDTO, error)
}

// BookHandler serves catalogue administration. Role checks happen in the
// router; these routes never touch loans.
type BookHandler struct{ svc BookRegistry }

func NewBookHandler(svc BookRegistry) *BookHandler { return &BookHandler{svc: svc} }

type createBookReq struct {
	Title string `json:"title" validate:"required"`
	ISBN  string `json:"isbn"`
}

type bookStatusReq struct {
	Status string `json:"status" validate:"required"`
}

func (h *BookHandler) Create(c echo.Context) error {
	var req createBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.svc.Create(c.Request().Context(), booksvc.CreateBookInput{Title: req.Title, ISBN: req.ISBN})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BookHandler) Get(c echo.Context) error {
	dto, err := h.svc.Get(c.Request().Context(), c.Param("book_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// UpdateStatus is the admin override (maintenance, lost, back to available).
// The registry checks the value; an open loan is left as it is.
func (h *BookHandler) UpdateStatus(c echo.Context) error {
	var req bookStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("book_id"), book.Status(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
