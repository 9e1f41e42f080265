package http

import (
	"github.com/labstack/echo/v4"

	"library-circulation/internal/adapter/middleware"
	"library-circulation/internal/domain/actor"
)

// Register mounts the service routes. auth guards everything but /health;
// replay additionally guards the non-repeatable checkout.
func Register(e *echo.Echo, h *HealthHandler, ch *CirculationHandler, bh *BookHandler, auth, replay echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	loans := e.Group("/loans", auth)
	loans.POST("", ch.Checkout, replay)
	loans.PATCH("/:loan_id/return", ch.ReturnLoan)
	loans.GET("/overdue", ch.ListOverdue)

	fines := e.Group("/fines", auth)
	fines.POST("/accrue", ch.AccrueFines)
	fines.PATCH("/:fine_id/pay", ch.PayFine)

	staff := middleware.RequireRole(actor.RoleLibrarian, actor.RoleAdmin)
	books := e.Group("/books", auth)
	books.POST("", bh.Create, staff)
	books.GET("/:book_id", bh.Get, staff)
	books.PATCH("/:book_id/status", bh.UpdateStatus, middleware.RequireRole(actor.RoleAdmin))
}
