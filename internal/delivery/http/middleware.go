package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"main/domain/entity"
	"main/internal/config"
	"main/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const sessionContextKey = "session"

type SessionResolver interface {
	// Resolve turns a session cookie value into a live session.
	Resolve(ctx context.Context, cookieValue string) (*entity.Session, error)
	// CookieName returns the name of the session cookie.
	CookieName() string
}

// RequireRoles is the single authorization gate for every privileged route.
// The session is resolved synchronously before the handler runs, so handlers
// never wait on login state. With no roles given it only requires a login;
// otherwise the session must carry at least one of the required role names.
//
// Browsers asking for HTML are redirected to /login; API clients get a JSON
// 401/403.
func RequireRoles(sessions SessionResolver, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessions.CookieName())
			if err != nil || cookie.Value == "" {
				return deny(c, http.StatusUnauthorized)
			}

			session, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				return deny(c, http.StatusUnauthorized)
			}

			if len(roles) > 0 && !session.HasAnyRole(roles...) {
				return deny(c, http.StatusForbidden)
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// deny redirects HTML clients to the login page and answers API clients with JSON.
func deny(c echo.Context, code int) error {
	accept := c.Request().Header.Get("Accept")
	if strings.Contains(accept, "text/html") {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	if code == http.StatusForbidden {
		return echo.NewHTTPError(code, "Forbidden")
	}
	return echo.NewHTTPError(code, "Unauthorized")
}

// SessionFromContext returns the session attached by RequireRoles, or nil.
func SessionFromContext(c echo.Context) *entity.Session {
	s, _ := c.Get(sessionContextKey).(*entity.Session)
	return s
}

// MetricsMiddleware records request duration per method, route and status.
func MetricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			m.RequestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
				strconv.Itoa(status),
			).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// RateLimitMiddleware caps requests per client IP inside a fixed window,
// counted in Redis so limits hold across gateway instances.
func RateLimitMiddleware(client *redis.Client, cfg *config.RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("rate:%s:%s", c.Path(), c.RealIP())
			ctx := c.Request().Context()

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				// Redis being down should not lock users out.
				return next(c)
			}
			if count == 1 {
				client.Expire(ctx, key, cfg.Window)
			}
			if count > int64(cfg.Limit) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too Many Requests")
			}
			return next(c)
		}
	}
}
