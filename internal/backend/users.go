package backend

import (
	"context"
	"fmt"
	"net/http"

	"main/domain/entity"
)

// Login authenticates against the backend and returns the raw envelope; on
// success the payload holds the user record plus a token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*Envelope, error) {
	if err := checkRequired(username, password); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/user/login", "", map[string]string{
		"username": username,
		"password": password,
	})
}

// RefreshToken exchanges an expired access token for a fresh pair.
func (c *Client) RefreshToken(ctx context.Context, refreshToken, username string) (*Envelope, error) {
	if err := checkRequired(refreshToken, username); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/refreshToken", "", map[string]string{
		"token":    refreshToken,
		"username": username,
	})
}

// GetUsers lists all users. Admin only upstream, so the token is required.
func (c *Client) GetUsers(ctx context.Context, token string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, "/user", token, nil)
}

// CreateUser registers a new account. Public endpoint.
func (c *Client) CreateUser(ctx context.Context, u entity.User, password string) (*Envelope, error) {
	if err := checkRequired(u.Email, u.Username, password); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/user", "", map[string]any{
		"email":    u.Email,
		"username": u.Username,
		"fullname": u.Fullname,
		"phone":    u.Phone,
		"address":  u.Address,
		"password": password,
	})
}

// UpdateUser replaces a user's profile fields.
func (c *Client) UpdateUser(ctx context.Context, token string, u entity.User) (*Envelope, error) {
	if err := checkID(u.ID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, "/user", token, u)
}

// GetUserRoles fetches the role names assigned to a user.
func (c *Client) GetUserRoles(ctx context.Context, token string, userID int64) (*Envelope, error) {
	if err := checkID(userID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/user/roles/%d", userID), token, nil)
}

// AddUserRole assigns a role to a user.
func (c *Client) AddUserRole(ctx context.Context, token string, userID int64, role string) (*Envelope, error) {
	if err := checkID(userID); err != nil {
		return nil, err
	}
	if err := checkRequired(role); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/user/role/add", token, map[string]any{
		"user_id": userID,
		"role":    role,
	})
}

// UnassignUserRoles removes every role binding for a user.
func (c *Client) UnassignUserRoles(ctx context.Context, token string, userID int64) (*Envelope, error) {
	if err := checkID(userID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/roles/unassign/user/%d", userID), token, nil)
}

// DeleteUser removes the user record itself. Dependent records must already be
// gone; use cascade.Orchestrator for the full sequence.
func (c *Client) DeleteUser(ctx context.Context, token string, userID int64) (*Envelope, error) {
	if err := checkID(userID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/user/delete/%d", userID), token, nil)
}
