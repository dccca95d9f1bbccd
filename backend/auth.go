package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/festival-transit/pandal-hopper/model"
)

// Credentials is the result of a successful signup or login.
type Credentials struct {
	Token  string
	UserID string
}

// SignUp registers a new account and returns its session credentials.
func (c *Client) SignUp(ctx context.Context, username, email, password string) (Credentials, error) {
	return c.postAuth(ctx, "/auth/signup", signupRequestDTO{
		Username: username,
		Email:    email,
		Password: password,
	})
}

// Login authenticates an existing account.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	return c.postAuth(ctx, "/auth/login", loginRequestDTO{
		Email:    email,
		Password: password,
	})
}

func (c *Client) postAuth(ctx context.Context, path string, payload any) (Credentials, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Credentials{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Credentials{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", model.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		var e errorDTO
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && (e.Message != "" || e.Error != "") {
			msg := e.Message
			if msg == "" {
				msg = e.Error
			}
			return Credentials{}, fmt.Errorf("auth failed: %s", msg)
		}
		return Credentials{}, fmt.Errorf("auth failed: HTTP %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Credentials{}, fmt.Errorf("%w: HTTP %d from %s", model.ErrNetwork, resp.StatusCode, path)
	}

	var dto loginResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return Credentials{}, fmt.Errorf("%w: decoding %s: %v", model.ErrNetwork, path, err)
	}
	if dto.JWT == "" {
		return Credentials{}, fmt.Errorf("auth response missing token")
	}
	return Credentials{Token: dto.JWT, UserID: dto.UserID}, nil
}
