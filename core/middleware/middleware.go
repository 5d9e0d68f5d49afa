package middleware

import (
	"strings"

	"space-booking-api/core/controller"
	"space-booking-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	ContextUserID   = "user_id"
	ContextUserName = "user_name"
	ContextOrgID    = "org_id"
	ContextIsAdmin  = "is_admin"
)

// Middleware resolves the caller's identity from a bearer token. Session and
// tenant management live outside this service; the token is the boundary.
type Middleware struct {
	secret []byte
}

func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{secret: []byte(jwtSecret)}
}

type claims struct {
	Name    string `json:"name"`
	OrgID   string `json:"org_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			cl := &claims{}
			token, err := jwt.ParseWithClaims(raw, cl, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return m.secret, nil
			})
			if err != nil || !token.Valid {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Invalid or expired token")
			}

			userID, err := uuid.Parse(cl.Subject)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Invalid subject claim")
			}
			orgID, err := uuid.Parse(cl.OrgID)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Invalid org claim")
			}

			c.Set(ContextUserID, userID)
			c.Set(ContextUserName, cl.Name)
			c.Set(ContextOrgID, orgID)
			c.Set(ContextIsAdmin, cl.IsAdmin)
			return next(c)
		}
	}
}

// AdminOnly guards mutations reserved for organization administrators.
func (m *Middleware) AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsAdmin(c) {
				return controller.NewErrorResponse(403, errors.ErrForbidden, "Administrator role required")
			}
			return next(c)
		}
	}
}

func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextUserID).(uuid.UUID)
	return id, ok
}

func GetUserName(c echo.Context) string {
	name, _ := c.Get(ContextUserName).(string)
	return name
}

func GetOrgID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextOrgID).(uuid.UUID)
	return id, ok
}

func IsAdmin(c echo.Context) bool {
	isAdmin, _ := c.Get(ContextIsAdmin).(bool)
	return isAdmin
}
