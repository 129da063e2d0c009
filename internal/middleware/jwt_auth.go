package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo context key holding the authenticated user's id (uint).
const UserIDKey = "userID"

// TokenVerifier resolves a bearer token that is not a local JWT to a user id.
type TokenVerifier func(ctx context.Context, token string) (uint, error)

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// JWTAuthMiddleware checks for a valid bearer token and stores the caller's
// user id in the context. Tokens that are not valid local JWTs are handed to
// fallback when it is set.
func JWTAuthMiddleware(jwtSecret string, fallback TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims, err := ParseToken(tokenString, jwtSecret)
			if err == nil {
				c.Set("user", claims)
				c.Set(UserIDKey, claims.UserID)
				return next(c)
			}

			if fallback != nil {
				userID, ferr := fallback(c.Request().Context(), tokenString)
				if ferr == nil {
					c.Set(UserIDKey, userID)
					return next(c)
				}
			}

			if errors.Is(err, jwt.ErrSignatureInvalid) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token signature")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
	}
}

// ParseToken validates a locally issued HS256 token.
func ParseToken(tokenString, jwtSecret string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
