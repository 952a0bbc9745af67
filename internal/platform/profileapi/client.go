// Package profileapi is an HTTP client for an upstream profile service.
// It backs the profile cache when this install proxies a hosted backend
// instead of serving profiles from local storage.
package profileapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tapcard/internal/domain"
	"tapcard/internal/onboarding"
)

// ErrNotFound indicates the upstream has no profile for the requested ID.
var ErrNotFound = errors.New("profile not found")

// Client talks to the upstream profile API.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient builds a client for the given base URL. A nil httpc uses a
// default client with a 30s timeout.
func NewClient(baseURL, token string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, token: token, httpc: httpc}
}

// GetProfile fetches a single profile by ID.
func (c *Client) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	var profile domain.Profile
	path := "/api/profiles/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// Submit sends a completed onboarding draft upstream and returns the
// profile the upstream created for it.
func (c *Client) Submit(ctx context.Context, draft onboarding.Draft) (domain.Profile, error) {
	payload := struct {
		FullName       string               `json:"full_name"`
		Links          []domain.Link        `json:"links,omitempty"`
		ProfilePicture string               `json:"profile_picture,omitempty"`
		ThemeID        string               `json:"theme_id"`
		Organization   *domain.Organization `json:"organization,omitempty"`
	}{
		FullName:       draft.FullName,
		Links:          draft.Links,
		ProfilePicture: draft.ProfilePicture,
		ThemeID:        draft.Theme.ID,
		Organization:   draft.Organization,
	}
	var profile domain.Profile
	if err := c.do(ctx, http.MethodPost, "/api/profiles", payload, &profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("profile api: %s %s returned %d", method, path, resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}
