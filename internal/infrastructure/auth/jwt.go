package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"library-circulation/internal/domain/actor"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by tokens issued by the identity service. The subject is
// the actor id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ValidateToken parses an HS256 token and resolves the actor it names.
func ValidateToken(secret, tokenStr string) (actor.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return actor.Actor{}, ErrInvalidToken
	}
	a := actor.Actor{ID: claims.Subject, Role: actor.Role(claims.Role)}
	if a.ID == "" || !a.Role.Valid() {
		return actor.Actor{}, fmt.Errorf("%w: missing subject or unknown role %q", ErrInvalidToken, claims.Role)
	}
	return a, nil
}
