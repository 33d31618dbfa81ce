package authHandler

import (
	"context"
	"net/http"

	"main/domain/entity"
	"main/internal/backend"
	"main/internal/metrics"
	"main/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Backend  Backend
	Sessions Sessions
	Metrics  *metrics.Metrics
}

type Backend interface {
	//Login authenticates against the commerce backend.
	Login(ctx context.Context, username, password string) (*backend.Envelope, error)

	//RefreshToken exchanges a refresh token for a fresh pair.
	RefreshToken(ctx context.Context, refreshToken, username string) (*backend.Envelope, error)

	//UpdateUser replaces a user's profile fields.
	UpdateUser(ctx context.Context, token string, u entity.User) (*backend.Envelope, error)

	//CreateUser registers a new account.
	CreateUser(ctx context.Context, u entity.User, password string) (*backend.Envelope, error)
}

type Sessions interface {
	Create(ctx context.Context, user entity.User, tokens backend.TokenPair) (*entity.Session, error)
	Resolve(ctx context.Context, cookieValue string) (*entity.Session, error)
	Refresh(ctx context.Context, s *entity.Session, tokens backend.TokenPair) error
	Save(ctx context.Context, s *entity.Session) error
	Destroy(ctx context.Context, sessionID uuid.UUID) error
	Cookie(s *entity.Session) (*http.Cookie, error)
	ExpiredCookie() *http.Cookie
	CookieName() string
}

func NewAuthHandler(b Backend, s Sessions, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{Backend: b, Sessions: s, Metrics: m}
}

// DTOs
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginPayload is the backend's login payload: the user record plus tokens.
type loginPayload struct {
	entity.User
	backend.TokenPair
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	v := validation.Violations{}
	validation.Required("username", req.Username, v)
	validation.Required("password", req.Password, v)
	if !v.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]any{"status": "failed", "reason": "validation", "violations": v})
	}

	env, err := h.Backend.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		h.Metrics.LoginAttempts.WithLabelValues("error").Inc()
		return err
	}
	if !env.OK() {
		h.Metrics.LoginAttempts.WithLabelValues("failed").Inc()
		return c.JSON(http.StatusUnauthorized, env)
	}

	var payload loginPayload
	if err := env.Decode(&payload); err != nil {
		return err
	}

	session, err := h.Sessions.Create(c.Request().Context(), payload.User, payload.TokenPair)
	if err != nil {
		return err
	}
	cookie, err := h.Sessions.Cookie(session)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	h.Metrics.LoginAttempts.WithLabelValues("success").Inc()
	// Tokens stay server-side; the browser only learns who it is.
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "success",
		"payload": payload.User,
	})
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Register creates a new account upstream. No session is opened; the
// browser logs in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	v := validation.Violations{}
	validation.Required("username", req.Username, v)
	validation.Required("password", req.Password, v)
	validation.Required("email", req.Email, v)
	if req.Phone != "" && !validation.ValidPhone(req.Phone) {
		v["phone"] = "invalid"
	}
	if !v.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]any{"status": "failed", "reason": "validation", "violations": v})
	}

	env, err := h.Backend.CreateUser(c.Request().Context(), entity.User{
		Email:    req.Email,
		Username: req.Username,
		Fullname: req.Fullname,
		Phone:    req.Phone,
		Address:  req.Address,
	}, req.Password)
	if err != nil {
		return err
	}
	if !env.OK() {
		return c.JSON(http.StatusUnprocessableEntity, env)
	}
	return c.JSON(http.StatusCreated, env)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.Sessions.CookieName()); err == nil && cookie.Value != "" {
		if session, err := h.Sessions.Resolve(c.Request().Context(), cookie.Value); err == nil {
			if err := h.Sessions.Destroy(c.Request().Context(), session.ID); err != nil {
				return err
			}
		}
	}
	c.SetCookie(h.Sessions.ExpiredCookie())
	return c.NoContent(http.StatusNoContent)
}

type UpdateProfileRequest struct {
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Profile returns who the session belongs to. The gate has already resolved
// the session by the time this runs.
func (h *AuthHandler) Profile(c echo.Context) error {
	session, ok := c.Get("session").(*entity.Session)
	if !ok || session == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status": "success",
		"payload": map[string]any{
			"id":       session.UserID,
			"username": session.Username,
			"fullname": session.Fullname,
			"roles":    session.Roles,
		},
	})
}

// UpdateProfile pushes profile changes upstream and replaces the stored
// session fields wholesale on success.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	session, ok := c.Get("session").(*entity.Session)
	if !ok || session == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	v := validation.Violations{}
	validation.Required("email", req.Email, v)
	if req.Phone != "" && !validation.ValidPhone(req.Phone) {
		v["phone"] = "invalid"
	}
	if !v.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]any{"status": "failed", "reason": "validation", "violations": v})
	}

	env, err := h.Backend.UpdateUser(c.Request().Context(), session.AccessToken, entity.User{
		ID:       session.UserID,
		Email:    req.Email,
		Username: session.Username,
		Fullname: req.Fullname,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}
	if !env.OK() {
		return c.JSON(http.StatusUnprocessableEntity, env)
	}

	session.Fullname = req.Fullname
	if err := h.Sessions.Save(c.Request().Context(), session); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(h.Sessions.CookieName())
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	session, err := h.Sessions.Resolve(c.Request().Context(), cookie.Value)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	env, err := h.Backend.RefreshToken(c.Request().Context(), session.RefreshToken, session.Username)
	if err != nil {
		return err
	}
	if !env.OK() {
		// The backend rejected the refresh token: the session is dead.
		if err := h.Sessions.Destroy(c.Request().Context(), session.ID); err != nil {
			return err
		}
		c.SetCookie(h.Sessions.ExpiredCookie())
		return c.JSON(http.StatusUnauthorized, env)
	}

	var tokens backend.TokenPair
	if err := env.Decode(&tokens); err != nil {
		return err
	}
	if err := h.Sessions.Refresh(c.Request().Context(), session, tokens); err != nil {
		return err
	}
	fresh, err := h.Sessions.Cookie(session)
	if err != nil {
		return err
	}
	c.SetCookie(fresh)
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}
