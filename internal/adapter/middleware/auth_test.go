package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"library-circulation/internal/domain/actor"
	"library-circulation/internal/infrastructure/auth"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, sub, role string) string {
	t.Helper()
	claims := auth.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestAuth(t *testing.T) {
	e := echo.New()
	var seen actor.Actor
	e.GET("/whoami", func(c echo.Context) error {
		a, ok := ActorFrom(c)
		if !ok {
			t.Fatalf("actor not set on context")
		}
		seen = a
		return c.NoContent(http.StatusNoContent)
	}, Auth(testSecret))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + signToken(t, testSecret, "lib-1", "librarian"), http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other", "lib-1", "librarian"), http.StatusUnauthorized},
		{"unknown role", "Bearer " + signToken(t, testSecret, "lib-1", "janitor"), http.StatusUnauthorized},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if tc.header != "" {
			req.Header.Set(echo.HeaderAuthorization, tc.header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
	if seen.ID != "lib-1" || seen.Role != actor.RoleLibrarian {
		t.Fatalf("actor = %+v", seen)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	e.PATCH("/books/:book_id/status", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, Auth(testSecret), RequireRole(actor.RoleAdmin))

	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusNoContent},
		{"librarian", http.StatusForbidden},
		{"reader", http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPatch, "/books/b1/status", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, testSecret, "u-1", tc.role))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s: want %d, got %d", tc.role, tc.want, rec.Code)
		}
	}
}

func TestRequireRole_NoActor(t *testing.T) {
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireRole(actor.RoleAdmin))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}
