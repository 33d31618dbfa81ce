package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"main/domain/entity"
	"main/internal/backend"
	"main/internal/config"
	"main/pkg/customerrors"
	"main/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Manager owns the session lifecycle: created at login, replaced wholesale on
// refresh, destroyed at logout. Sessions live in Redis under a TTL equal to
// the refresh-token TTL; the browser holds only a signed HttpOnly cookie with
// the session ID, so tokens and roles never leave the gateway.
type Manager struct {
	cfg config.SessionConfig
	rdb *redis.Client
	jwt *jwt.JWTManager
	log *slog.Logger
}

func NewManager(cfg config.SessionConfig, rdb *redis.Client, log *slog.Logger) *Manager {
	return &Manager{
		cfg: cfg,
		rdb: rdb,
		jwt: jwt.NewJWTManager(cfg.Secret, cfg.RefreshTokenTTL),
		log: log,
	}
}

// Create stores a fresh session for a logged-in user and returns it.
func (m *Manager) Create(ctx context.Context, user entity.User, tokens backend.TokenPair) (*entity.Session, error) {
	now := time.Now()
	s := &entity.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		Username:     user.Username,
		Fullname:     user.Fullname,
		Roles:        user.Roles,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.cfg.RefreshTokenTTL),
	}
	if err := m.store(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Resolve turns a session cookie value into a live session. It fails for
// forged or expired cookies and for sessions already evicted from the store.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (*entity.Session, error) {
	sessionID, err := m.jwt.VerifySessionToken(cookieValue)
	if err != nil {
		return nil, customerrors.ErrSessionNotFound
	}
	raw, err := m.rdb.Get(ctx, keyPrefix+sessionID.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			m.log.Error("session lookup failed", "session_id", sessionID, "error", err)
		}
		return nil, customerrors.ErrSessionNotFound
	}
	var s entity.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, customerrors.ErrSessionNotFound
	}
	if s.UserID <= 0 {
		return nil, customerrors.ErrSessionNotFound
	}
	return &s, nil
}

// Refresh replaces the session's token pair and lifetime wholesale,
// keeping the session ID so the cookie stays valid.
func (m *Manager) Refresh(ctx context.Context, s *entity.Session, tokens backend.TokenPair) error {
	now := time.Now()
	s.AccessToken = tokens.AccessToken
	s.RefreshToken = tokens.RefreshToken
	s.CreatedAt = now
	s.ExpiresAt = now.Add(m.cfg.RefreshTokenTTL)
	return m.store(ctx, s)
}

// Save persists in-place profile changes without touching the token pair.
func (m *Manager) Save(ctx context.Context, s *entity.Session) error {
	return m.store(ctx, s)
}

// Destroy removes the session from the store.
func (m *Manager) Destroy(ctx context.Context, sessionID uuid.UUID) error {
	return m.rdb.Del(ctx, keyPrefix+sessionID.String()).Err()
}

func (m *Manager) store(ctx context.Context, s *entity.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return m.rdb.Set(ctx, keyPrefix+s.ID.String(), raw, m.cfg.RefreshTokenTTL).Err()
}

// CookieName returns the configured name of the session cookie.
func (m *Manager) CookieName() string { return m.cfg.CookieName }

// Cookie builds the signed session cookie for a session. HttpOnly and
// SameSite are always set so scripts never see the value.
func (m *Manager) Cookie(s *entity.Session) (*http.Cookie, error) {
	token, err := m.jwt.NewSessionToken(s.ID)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.ExpiresAt,
	}, nil
}

// ExpiredCookie returns a cookie that clears the session in the browser.
func (m *Manager) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	}
}
