package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"library-circulation/internal/domain/actor"
	"library-circulation/internal/infrastructure/auth"
)

const actorKey = "circulation.actor"

// Auth resolves the bearer token into an actor.Actor and stores it on the
// echo context. Requests without a valid token stop here with 401.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			a, err := auth.ValidateToken(secret, strings.TrimSpace(token))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			SetActor(c, a)
			return next(c)
		}
	}
}

func SetActor(c echo.Context, a actor.Actor) { c.Set(actorKey, a) }

// ActorFrom returns the actor placed by Auth.
func ActorFrom(c echo.Context) (actor.Actor, bool) {
	a, ok := c.Get(actorKey).(actor.Actor)
	return a, ok
}

// RequireRole lets through only actors holding one of roles. Must run after Auth.
func RequireRole(roles ...actor.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a, ok := ActorFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			}
			for _, r := range roles {
				if a.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "role " + string(a.Role) + " may not do this"})
		}
	}
}
