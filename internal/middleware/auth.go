package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Nerldy/hello-books-api/internal/models"
	"github.com/Nerldy/hello-books-api/internal/repo"
	"github.com/Nerldy/hello-books-api/internal/tokens"
)

const userContextKey = "auth_user"

type Auth struct {
	Repo  *repo.GormRepo
	Codec *tokens.Codec
}

func NewAuth(r *repo.GormRepo, c *tokens.Codec) *Auth {
	return &Auth{Repo: r, Codec: c}
}

// RequireAuth walks the request through missing header, malformed
// header, token decode, and identity resolution. Each failure keeps its
// own status and message, nothing collapses into a generic 401.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token is missing"})
		}

		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "malformed authorization header"})
		}

		userID, err := m.Codec.Decode(raw)
		if err != nil {
			if errors.Is(err, tokens.ErrExpiredToken) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token has expired. Please log in again"})
			}
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token is invalid"})
		}

		// Stateless tokens outlive their account only until this
		// re-lookup.
		user, err := m.Repo.FindByID(c.Request().Context(), userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
		if user == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token is invalid"})
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// AdminOnly rejects non-admin identities. Runs strictly after
// RequireAuth and before any handler side effect.
func (m *Auth) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := UserFromContext(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token is missing"})
		}
		if !user.IsAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin privileges required"})
		}
		return next(c)
	}
}

func UserFromContext(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userContextKey).(*models.User)
	return user, ok
}
