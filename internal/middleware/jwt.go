package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// HostIDKey is the context key under which HostAuth stores the calling
// host's identifier (the token subject).
const HostIDKey = "host_id"

// HostAuth returns an Echo middleware that validates the Bearer token a
// host runtime presents on the tool routes.  Tokens must be HS256 signed
// with secret and carry a non-empty subject.  An empty secret disables the
// check and every caller is treated as host "anonymous".
func HostAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				c.Set(HostIDKey, "anonymous")
				return next(c)
			}
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			sub, err := tok.Claims.GetSubject()
			if err != nil || sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			c.Set(HostIDKey, sub)
			return next(c)
		}
	}
}

func currentHostID(c echo.Context) string {
	if s, ok := c.Get(HostIDKey).(string); ok && s != "" {
		return s
	}
	return "anon"
}
