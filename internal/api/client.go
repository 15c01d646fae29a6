package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/opsmirror/ddexport/internal/config"
	"github.com/opsmirror/ddexport/internal/http"
	"github.com/opsmirror/ddexport/internal/resources"
)

// maxErrorBodyBytes caps how much of an error response body is kept in
// the failure reason.
const maxErrorBodyBytes = 512

// Client is an authenticated Datadog API client scoped to one
// credential bundle (one site + key pair).
type Client struct {
	httpClient *nethttp.Client
	baseURL    string
	apiKey     string
	appKey     string
}

// NewClient creates an API client from a credential bundle.
func NewClient(creds *config.Credentials) (*Client, error) {
	httpClient, err := http.ConfigureHTTPClient(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}

	// Shared client plumbing only: retries are deliberately disabled,
	// a failed category is recorded and the batch moves on.
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	return &Client{
		httpClient: retryClient.StandardClient(),
		baseURL:    strings.TrimSuffix(creds.APIBaseURL(), "/"),
		apiKey:     creds.APIKey,
		appKey:     creds.AppKey,
	}, nil
}

// BaseURL returns the resolved API endpoint for this client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs an authenticated GET against an API path and returns the
// raw response body. Non-200 statuses come back as *UpstreamError; a
// 200 with a body that is not valid JSON comes back as
// ErrMalformedResponse.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("DD-API-KEY", c.apiKey)
	req.Header.Set("DD-APPLICATION-KEY", c.appKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w from GET %s", ErrMalformedResponse, path)
	}
	return body, nil
}

// FetchCategory retrieves the raw JSON payload for one resource
// category.
func (c *Client) FetchCategory(ctx context.Context, category resources.Category) ([]byte, error) {
	return c.Get(ctx, category.Endpoint())
}
