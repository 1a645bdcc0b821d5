package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/domain/model"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// POST /auth/login/
func (c *Client) Login(ctx context.Context, username string, password string) (string, error) {
	var out loginResponse
	if err := c.doJSON(ctx, "login", http.MethodPost, "/auth/login/", "", nil, loginRequest{Username: username, Password: password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// GET /users/
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var users []model.User
	if err := c.doJSON(ctx, "list users", http.MethodGet, "/users/", token, nil, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// PUT /users/{id}/
func (c *Client) UpdateUser(ctx context.Context, token string, userID int64, in model.UserUpdate) (model.User, error) {
	var u model.User
	path := fmt.Sprintf("/users/%d/", userID)
	if err := c.doJSON(ctx, "update user", http.MethodPut, path, token, nil, in, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}
