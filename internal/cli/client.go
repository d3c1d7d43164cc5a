package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotModified signals a 304 response to an update
var ErrNotModified = errors.New("nothing to update")

// accessTokenCookie and refreshTokenCookie name the server's pair
const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// Client is an HTTP client for the catalog API. It carries the stored
// token pair as cookies and picks up rotated pairs from responses.
type Client struct {
	baseURL    string
	tokens     StoredTokens
	onRotation func(StoredTokens) error
	httpClient *http.Client
}

// NewClient creates a new API client. onRotation is invoked whenever
// the server attaches a fresh token pair to a response.
func NewClient(baseURL string, tokens StoredTokens, onRotation func(StoredTokens) error) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		onRotation: onRotation,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ErrorResponse is the error body returned by the API
type ErrorResponse struct {
	Message string `json:"message"`
}

// Do performs an HTTP request
func (c *Client) Do(method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens.AccessToken != "" {
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: c.tokens.AccessToken})
	}
	if c.tokens.RefreshToken != "" {
		req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: c.tokens.RefreshToken})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.captureTokens(resp); err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNotModified {
		return ErrNotModified
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return errors.New(errResp.Message)
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// captureTokens records a rotated token pair attached to the response
func (c *Client) captureTokens(resp *http.Response) error {
	rotated := c.tokens
	changed := false
	for _, cookie := range resp.Cookies() {
		switch cookie.Name {
		case accessTokenCookie:
			rotated.AccessToken = cookie.Value
			changed = true
		case refreshTokenCookie:
			rotated.RefreshToken = cookie.Value
			changed = true
		}
	}
	if !changed {
		return nil
	}

	c.tokens = rotated
	if c.onRotation != nil {
		return c.onRotation(rotated)
	}
	return nil
}

// Get performs a GET request
func (c *Client) Get(path string, result any) error {
	return c.Do(http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(path string, body, result any) error {
	return c.Do(http.MethodPost, path, body, result)
}

// Patch performs a PATCH request
func (c *Client) Patch(path string, body, result any) error {
	return c.Do(http.MethodPatch, path, body, result)
}

// Delete performs a DELETE request
func (c *Client) Delete(path string) error {
	return c.Do(http.MethodDelete, path, nil, nil)
}
