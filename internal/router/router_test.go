package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/billetweb-booking/internal/config"
	"github.com/iliyamo/billetweb-booking/internal/handler"
	"github.com/iliyamo/billetweb-booking/internal/middleware"
	"github.com/iliyamo/billetweb-booking/internal/tool"
)

func newServer(secret string, rl config.RateLimitConfig) *echo.Echo {
	e := echo.New()
	reg := tool.NewRegistry()
	reg.Register(tool.BuyTicketsDescriptor(tool.DefaultProfile()), nil)
	RegisterRoutes(e)
	RegisterTools(e, handler.NewToolHandler(reg, nil),
		middleware.HostAuth(secret),
		middleware.NewTokenBucket(rl, nil, nil),
	)
	return e
}

func get(e *echo.Echo, path string) int {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestHealthIsPublic(t *testing.T) {
	t.Parallel()
	e := newServer("secret", config.RateLimitConfig{})
	assert.Equal(t, http.StatusOK, get(e, "/healthz"))
	assert.Equal(t, http.StatusUnauthorized, get(e, "/v1/tools"))
}

func TestToolRoutesAreRateLimited(t *testing.T) {
	t.Parallel()
	e := newServer("", config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            time.Hour,
		Prefix:         "rl",
	})
	assert.Equal(t, http.StatusOK, get(e, "/v1/tools"))
	assert.Equal(t, http.StatusTooManyRequests, get(e, "/v1/tools"))
	assert.Equal(t, http.StatusOK, get(e, "/healthz"))
}
