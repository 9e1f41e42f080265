package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"library-circulation/internal/adapter/middleware"
	"library-circulation/internal/domain/actor"
	finesvc "library-circulation/internal/usecase/fine"
	loansvc "library-circulation/internal/usecase/loan"
)

// Circulation is what the handler needs from circulation.Coordinator.
type Circulation interface {
	Checkout(ctx context.Context, a actor.Actor, bookID, readerID string) (*loansvc.LoanDTO, error)
	ReturnLoan(ctx context.Context, a actor.Actor, loanID string) (*loansvc.LoanDTO, error)
	ListOverdueLoans(ctx context.Context, a actor.Actor) ([]loansvc.LoanDTO, error)
	AccrueFines(ctx context.Context, a actor.Actor) (int, error)
	PayFine(ctx context.Context, a actor.Actor, fineID string) (*finesvc.FineDTO, error)
}

type CirculationHandler struct{ svc Circulation }

func NewCirculationHandler(svc Circulation) *CirculationHandler {
	return &CirculationHandler{svc: svc}
}

type checkoutReq struct {
	BookID   string `json:"book_id"   validate:"required,hex32"`
	ReaderID string `json:"reader_id" validate:"required,hex32"`
}

type overdueResp struct {
	Results int               `json:"results"`
	Loans   []loansvc.LoanDTO `json:"loans"`
}

type accrueResp struct {
	Created int `json:"created"`
}

func (h *CirculationHandler) Checkout(c echo.Context) error {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.svc.Checkout(c.Request().Context(), a, req.BookID, req.ReaderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CirculationHandler) ReturnLoan(c echo.Context) error {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	dto, err := h.svc.ReturnLoan(c.Request().Context(), a, loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CirculationHandler) ListOverdue(c echo.Context) error {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	loans, err := h.svc.ListOverdueLoans(c.Request().Context(), a)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, overdueResp{Results: len(loans), Loans: loans})
}

func (h *CirculationHandler) AccrueFines(c echo.Context) error {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	n, err := h.svc.AccrueFines(c.Request().Context(), a)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, accrueResp{Created: n})
}

func (h *CirculationHandler) PayFine(c echo.Context) error {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	fineID := c.Param("fine_id")
	if fineID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing fine_id path param"})
	}
	dto, err := h.svc.PayFine(c.Request().Context(), a, fineID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
