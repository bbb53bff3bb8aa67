package middleware

import (
	"context"
	"net/http"

	"bistro/internal/common"
	"bistro/internal/repositories"
	"bistro/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTConfig builds the echo-jwt configuration. After signature verification
// the caller's identity and staff flag are copied into the request context so
// every layer below the router sees an explicit identity, never a global.
func JWTConfig(jwtSecret string, userRepo repositories.UserRepository) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(jwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.TokenClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*services.TokenClaims)
			if !ok {
				return
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			if user, err := userRepo.GetByID(ctx, userID); err == nil {
				ctx = context.WithValue(ctx, common.UsernameKey, user.Username)
				ctx = context.WithValue(ctx, common.IsStaffKey, user.IsStaff)
			}
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}
