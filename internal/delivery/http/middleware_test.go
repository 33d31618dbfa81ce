package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/domain/entity"
	"main/pkg/customerrors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver stands in for the session manager: any cookie value present in
// sessions resolves, everything else is a dead session.
type fakeResolver struct {
	sessions map[string]*entity.Session
}

func (f *fakeResolver) Resolve(_ context.Context, cookieValue string) (*entity.Session, error) {
	if s, ok := f.sessions[cookieValue]; ok {
		return s, nil
	}
	return nil, customerrors.ErrSessionNotFound
}

func (f *fakeResolver) CookieName() string { return "session" }

func gateRequest(t *testing.T, resolver SessionResolver, cookie string, accept string, roles ...string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: cookie})
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var sessionSeen *entity.Session
	handler := RequireRoles(resolver, roles...)(func(c echo.Context) error {
		sessionSeen = SessionFromContext(c)
		require.NotNil(t, sessionSeen, "gated handler must see the session")
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestRequireRoles_AdminAllowed(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*entity.Session{
		"good": {UserID: 1, Username: "ivan", Roles: []string{"Admin"}},
	}}

	rec, err := gateRequest(t, resolver, "good", "", "Admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_SecondaryRoleAllowed(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*entity.Session{
		"good": {UserID: 2, Username: "mod", Roles: []string{"Moderator"}},
	}}

	_, err := gateRequest(t, resolver, "good", "", "Admin", "Moderator")
	require.NoError(t, err)
}

func TestRequireRoles_NoRolesDenied(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*entity.Session{
		"good": {UserID: 3, Username: "plain", Roles: nil},
	}}

	_, err := gateRequest(t, resolver, "good", "", "Admin")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireRoles_WrongRoleDenied(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*entity.Session{
		"good": {UserID: 4, Username: "cust", Roles: []string{"Customer"}},
	}}

	_, err := gateRequest(t, resolver, "good", "", "Admin")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireRoles_MissingCookieDenied(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*entity.Session{}}

	_, err := gateRequest(t, resolver, "", "", "Admin")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireRoles_DeadSessionDenied(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*entity.Session{}}

	_, err := gateRequest(t, resolver, "stale-or-forged", "", "Admin")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireRoles_HTMLClientsRedirectToLogin(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*entity.Session{}}

	rec, err := gateRequest(t, resolver, "", "text/html", "Admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireRoles_LoginOnlyWhenNoRolesRequired(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*entity.Session{
		"good": {UserID: 5, Username: "cust", Roles: []string{"Customer"}},
	}}

	rec, err := gateRequest(t, resolver, "good", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
