// Package client implements the CapyDB API client. A Client is scoped to
// a project; use DB and Collection to reach document operations and
// semantic search.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/capydb/capydb-go/config"
	"github.com/capydb/capydb-go/internal"
)

var log = internal.GetLogger()

const (
	DefaultHTTPTimeout      = 10 * time.Second
	DefaultMaxRetryAttempts = 3
)

// Client talks to the CapyDB API for a single project.
type Client struct {
	projectID string
	apiKey    string
	baseURL   string
	http      *http.Client
}

// NewClient builds a client from configuration. The config is usually
// loaded via config.LoadConfig, which reads the CAPYDB_PROJECT_ID and
// CAPYDB_API_KEY environment variables.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.API.Timeout
	if timeout == 0 {
		timeout = DefaultHTTPTimeout
	}
	maxRetryAttempts := cfg.API.MaxRetryAttempts
	if maxRetryAttempts == 0 {
		maxRetryAttempts = DefaultMaxRetryAttempts
	}

	return &Client{
		projectID: cfg.Project.ID,
		apiKey:    cfg.Project.APIKey,
		baseURL:   cfg.API.BaseURL,
		http:      newRetryableHTTPClient(maxRetryAttempts, timeout).StandardClient(),
	}, nil
}

// DB returns a handle on a named database within the project.
func (c *Client) DB(name string) *Database {
	return &Database{client: c, name: name}
}

func newRetryableHTTPClient(retryMax int, timeout time.Duration) *retryablehttp.Client {
	retryableHTTPClient := retryablehttp.NewClient()
	retryableHTTPClient.RetryMax = retryMax
	retryableHTTPClient.HTTPClient.Timeout = timeout
	retryableHTTPClient.Logger = internal.NewLeveledLogrus(log)
	retryableHTTPClient.Backoff = retryablehttp.DefaultBackoff
	retryableHTTPClient.CheckRetry = retryPolicy

	return retryableHTTPClient
}

// retryPolicy is a retryablehttp.CheckRetry function. It is used to determine
// whether a request should be retried or not.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	// do not retry on context.Canceled or context.DeadlineExceeded
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	// Do not retry 400 errors: they signal validation failures the server
	// will reject identically every time
	if resp != nil && resp.StatusCode == 400 {
		return false, err
	}

	shouldRetry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	return shouldRetry, nil
}

// apiErrorBody is the error envelope returned by the CapyDB API.
type apiErrorBody struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// doRequest issues a JSON request and decodes a successful response into
// out. Failed responses are mapped onto the client error taxonomy.
func (c *Client) doRequest(
	ctx context.Context,
	method string,
	url string,
	payload any,
	out any,
) error {
	var body io.Reader = http.NoBody
	if payload != nil {
		p, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewBuffer(p)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errorBody apiErrorBody
		if err := json.Unmarshal(responseBody, &errorBody); err != nil || errorBody.Code == 0 {
			return newAPIError(resp.StatusCode, string(responseBody))
		}
		return newAPIError(errorBody.Code, errorBody.Message)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	return nil
}
