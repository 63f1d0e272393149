// Package client is a typed HTTP client for the notevault API. It
// holds the access/refresh pair from a login and transparently
// retries one rotation when the access token is rejected.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrServer       = errors.New("server error")
)

type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// User is the public identity view returned by the server.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Note mirrors the server's note representation.
type Note struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"ownerId"`
	Content string `json:"content"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates an account. It does not log the client in.
func (c *Client) Register(username, email, password string) (*User, error) {
	user := &User{}
	err := c.call(http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, user, false)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates and stores the returned token pair on the client.
func (c *Client) Login(email, password string) error {
	pair := &tokenPair{}
	err := c.call(http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, pair, false)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	c.mu.Unlock()
	return nil
}

// Refresh exchanges the stored refresh token for a new pair.
func (c *Client) Refresh() error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()
	if refresh == "" {
		return ErrUnauthorized
	}

	pair := &tokenPair{}
	err := c.call(http.MethodPost, "/api/refresh", map[string]string{
		"refreshToken": refresh,
	}, pair, false)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	c.mu.Unlock()
	return nil
}

// Logout revokes the stored refresh token server-side and clears the
// local pair.
func (c *Client) Logout() error {
	err := c.authed(http.MethodPost, "/api/logout", nil, nil)

	c.mu.Lock()
	c.accessToken = ""
	c.refreshToken = ""
	c.mu.Unlock()
	return err
}

func (c *Client) CreateNote(content string) (*Note, error) {
	note := &Note{}
	if err := c.authed(http.MethodPost, "/api/notes", map[string]string{"content": content}, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (c *Client) Notes() ([]Note, error) {
	notes := []Note{}
	if err := c.authed(http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) Note(id int64) (*Note, error) {
	note := &Note{}
	if err := c.authed(http.MethodGet, fmt.Sprintf("/api/notes/%d", id), nil, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (c *Client) UpdateNote(id int64, content string) (*Note, error) {
	note := &Note{}
	if err := c.authed(http.MethodPut, fmt.Sprintf("/api/notes/%d", id), map[string]string{"content": content}, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (c *Client) DeleteNote(id int64) error {
	return c.authed(http.MethodDelete, fmt.Sprintf("/api/notes/%d", id), nil, nil)
}

func (c *Client) CountNotes() (int, error) {
	response := struct {
		Count int `json:"count"`
	}{}
	if err := c.authed(http.MethodGet, "/api/notes/count", nil, &response); err != nil {
		return 0, err
	}
	return response.Count, nil
}

// authed performs an authenticated call, rotating the token pair once
// if the server rejects the access token.
func (c *Client) authed(method, path string, body any, response any) error {
	err := c.call(method, path, body, response, true)
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}

	if refreshErr := c.Refresh(); refreshErr != nil {
		return err
	}
	return c.call(method, path, body, response, true)
}

func (c *Client) call(method, path string, body any, response any, withAuth bool) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("couldn't encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("couldn't build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		c.mu.Lock()
		token := c.accessToken
		c.mu.Unlock()
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %v", err)
	}
	defer res.Body.Close()

	if err := statusError(res.StatusCode); err != nil {
		return err
	}

	if response != nil {
		if err := json.NewDecoder(res.Body).Decode(response); err != nil {
			return fmt.Errorf("couldn't decode response: %v", err)
		}
	}
	return nil
}

func statusError(code int) error {
	switch {
	case code < 400:
		return nil
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code < 500:
		return ErrBadRequest
	default:
		return ErrServer
	}
}
