package authHandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"main/domain/entity"
	"main/internal/backend"
	"main/internal/metrics"
	"main/pkg/customerrors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	loginEnv    *backend.Envelope
	refreshEnv  *backend.Envelope
	loginCalls  int
	updatedUser *entity.User
	createdUser *entity.User
}

func (f *fakeBackend) Login(context.Context, string, string) (*backend.Envelope, error) {
	f.loginCalls++
	return f.loginEnv, nil
}

func (f *fakeBackend) RefreshToken(context.Context, string, string) (*backend.Envelope, error) {
	return f.refreshEnv, nil
}

func (f *fakeBackend) UpdateUser(_ context.Context, _ string, u entity.User) (*backend.Envelope, error) {
	f.updatedUser = &u
	return &backend.Envelope{Status: "success"}, nil
}

func (f *fakeBackend) CreateUser(_ context.Context, u entity.User, _ string) (*backend.Envelope, error) {
	f.createdUser = &u
	return &backend.Envelope{Status: "success"}, nil
}

type fakeSessions struct {
	created   *entity.Session
	resolved  *entity.Session
	saved     *entity.Session
	destroyed []uuid.UUID
	refreshed bool
}

func (f *fakeSessions) Create(_ context.Context, user entity.User, tokens backend.TokenPair) (*entity.Session, error) {
	f.created = &entity.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		Username:     user.Username,
		Roles:        user.Roles,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    time.Now().Add(20 * time.Minute),
	}
	return f.created, nil
}

func (f *fakeSessions) Resolve(context.Context, string) (*entity.Session, error) {
	if f.resolved == nil {
		return nil, customerrors.ErrSessionNotFound
	}
	return f.resolved, nil
}

func (f *fakeSessions) Refresh(_ context.Context, s *entity.Session, tokens backend.TokenPair) error {
	f.refreshed = true
	s.AccessToken = tokens.AccessToken
	s.RefreshToken = tokens.RefreshToken
	return nil
}

func (f *fakeSessions) Save(_ context.Context, s *entity.Session) error {
	f.saved = s
	return nil
}

func (f *fakeSessions) Destroy(_ context.Context, sessionID uuid.UUID) error {
	f.destroyed = append(f.destroyed, sessionID)
	return nil
}

func (f *fakeSessions) Cookie(s *entity.Session) (*http.Cookie, error) {
	return &http.Cookie{Name: "session", Value: "signed-" + s.ID.String(), HttpOnly: true}, nil
}

func (f *fakeSessions) ExpiredCookie() *http.Cookie {
	return &http.Cookie{Name: "session", Value: "", Expires: time.Unix(0, 0)}
}

func (f *fakeSessions) CookieName() string { return "session" }

func post(t *testing.T, h echo.HandlerFunc, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func newHandler(b Backend, s Sessions) *AuthHandler {
	return NewAuthHandler(b, s, metrics.NewMetrics(prometheus.NewRegistry()))
}

func TestLogin_SuccessSetsCookieAndHidesTokens(t *testing.T) {
	payload := `{"id":1,"username":"ivan","fullname":"Ivan Ivanov","roles":["Admin"],"accessToken":"at-1","refreshToken":"rt-1"}`
	fb := &fakeBackend{loginEnv: &backend.Envelope{Status: "success", Payload: json.RawMessage(payload)}}
	fs := &fakeSessions{}
	h := newHandler(fb, fs)

	rec := post(t, h.Login, `{"username":"ivan","password":"secret"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, fs.created)
	assert.Equal(t, "at-1", fs.created.AccessToken)
	assert.Equal(t, []string{"Admin"}, fs.created.Roles)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)

	assert.NotContains(t, rec.Body.String(), "at-1", "backend tokens never reach the browser")
	assert.NotContains(t, rec.Body.String(), "rt-1")
	assert.Contains(t, rec.Body.String(), "ivan")
}

func TestLogin_BadCredentialsRelayed(t *testing.T) {
	fb := &fakeBackend{loginEnv: &backend.Envelope{Status: "failed", Reason: "wrong password"}}
	fs := &fakeSessions{}
	h := newHandler(fb, fs)

	rec := post(t, h.Login, `{"username":"ivan","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, fs.created)
	assert.Contains(t, rec.Body.String(), "wrong password")
}

func TestLogin_EmptyFieldsNeverReachBackend(t *testing.T) {
	fb := &fakeBackend{}
	h := newHandler(fb, &fakeSessions{})

	for _, body := range []string{
		`{"username":"","password":"secret"}`,
		`{"username":"ivan","password":""}`,
		`{}`,
	} {
		rec := post(t, h.Login, body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	assert.Zero(t, fb.loginCalls)
}

func TestRegister_SuccessCreated(t *testing.T) {
	fb := &fakeBackend{}
	h := newHandler(fb, &fakeSessions{})

	body := `{"username":"ivan","password":"secret","email":"ivan@example.com","phone":"+359888123456"}`
	rec := post(t, h.Register, body, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, fb.createdUser)
	assert.Equal(t, "ivan", fb.createdUser.Username)
}

func TestRegister_BadPhoneNeverReachesBackend(t *testing.T) {
	fb := &fakeBackend{}
	h := newHandler(fb, &fakeSessions{})

	body := `{"username":"ivan","password":"secret","email":"ivan@example.com","phone":"555-1234"}`
	rec := post(t, h.Register, body, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fb.createdUser)
}

func TestLogout_DestroysSessionAndClearsCookie(t *testing.T) {
	live := &entity.Session{ID: uuid.New(), UserID: 1, Username: "ivan"}
	fs := &fakeSessions{resolved: live}
	h := newHandler(&fakeBackend{}, fs)

	rec := post(t, h.Logout, "", &http.Cookie{Name: "session", Value: "signed"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uuid.UUID{live.ID}, fs.destroyed)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Expires.Before(time.Now()))
}

func TestLogout_WithoutSessionStillClearsCookie(t *testing.T) {
	fs := &fakeSessions{}
	h := newHandler(&fakeBackend{}, fs)

	rec := post(t, h.Logout, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, fs.destroyed)
}

func TestRefresh_ReplacesTokensWholesale(t *testing.T) {
	live := &entity.Session{ID: uuid.New(), UserID: 1, Username: "ivan", RefreshToken: "rt-old"}
	fs := &fakeSessions{resolved: live}
	fb := &fakeBackend{refreshEnv: &backend.Envelope{
		Status:  "success",
		Payload: json.RawMessage(`{"accessToken":"at-new","refreshToken":"rt-new"}`),
	}}
	h := newHandler(fb, fs)

	rec := post(t, h.Refresh, "", &http.Cookie{Name: "session", Value: "signed"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, fs.refreshed)
	assert.Equal(t, "at-new", live.AccessToken)
	assert.Equal(t, "rt-new", live.RefreshToken)
}

func TestRefresh_RejectedTokenKillsSession(t *testing.T) {
	live := &entity.Session{ID: uuid.New(), UserID: 1, Username: "ivan", RefreshToken: "rt-old"}
	fs := &fakeSessions{resolved: live}
	fb := &fakeBackend{refreshEnv: &backend.Envelope{Status: "failed", Reason: "token expired"}}
	h := newHandler(fb, fs)

	rec := post(t, h.Refresh, "", &http.Cookie{Name: "session", Value: "signed"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []uuid.UUID{live.ID}, fs.destroyed)
}

func putProfile(t *testing.T, h *AuthHandler, session *entity.Session, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set("session", session)
	}
	if err := h.UpdateProfile(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestUpdateProfile_InvalidPhoneNeverReachesBackend(t *testing.T) {
	fb := &fakeBackend{}
	h := newHandler(fb, &fakeSessions{})
	live := &entity.Session{ID: uuid.New(), UserID: 1, Username: "ivan", AccessToken: "at-1"}

	rec := putProfile(t, h, live, `{"email":"ivan@example.com","phone":"12345"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fb.updatedUser)
}

func TestUpdateProfile_SuccessSavesSession(t *testing.T) {
	fb := &fakeBackend{}
	fs := &fakeSessions{}
	h := newHandler(fb, fs)
	live := &entity.Session{ID: uuid.New(), UserID: 1, Username: "ivan", Fullname: "Ivan", AccessToken: "at-1"}

	rec := putProfile(t, h, live, `{"email":"ivan@example.com","fullname":"Ivan Petrov","phone":"0888123456"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, fb.updatedUser)
	assert.Equal(t, int64(1), fb.updatedUser.ID)
	assert.Equal(t, "Ivan Petrov", fb.updatedUser.Fullname)

	require.NotNil(t, fs.saved)
	assert.Equal(t, "Ivan Petrov", fs.saved.Fullname)
}

func TestUpdateProfile_WithoutSessionUnauthorized(t *testing.T) {
	h := newHandler(&fakeBackend{}, &fakeSessions{})

	rec := putProfile(t, h, nil, `{"email":"ivan@example.com"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_NoCookieUnauthorized(t *testing.T) {
	h := newHandler(&fakeBackend{}, &fakeSessions{})

	rec := post(t, h.Refresh, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
