// Package host provides the JSON-over-HTTP RenderHost.
package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stencil-cli/internal/logger"
)

var hostLog = logger.For("host")

// Ensure Client implements the interface.
var _ driven.RenderHost = (*Client)(nil)

// ContentType is sent and accepted on every host call.
const ContentType = "application/json; charset=utf-8"

// maxErrorBody bounds how much of an error response is quoted.
const maxErrorBody = 512

// Config holds configuration for the host client.
type Config struct {
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient replaces the default client. Its timeout is left as is.
	HTTPClient *http.Client
}

// Client calls stencil methods on a rendering host.
type Client struct {
	client *http.Client
}

// NewClient creates a host client.
func NewClient(cfg Config) *Client {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{client: client}
}

// Boot establishes a session for the stencil at loc.
func (c *Client) Boot(ctx context.Context, loc domain.Location) (domain.BootResponse, error) {
	body, err := c.put(ctx, loc.Endpoint(domain.MethodBoot), domain.BootRequest{})
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		hostLog.Debug("boot %s: response is not json", loc.URL())
	}
	return domain.BootResponse(body), nil
}

// Render sends the content region and returns the replacement markup.
func (c *Client) Render(ctx context.Context, loc domain.Location, req domain.RenderRequest) (*domain.RenderResponse, error) {
	body, err := c.put(ctx, loc.Endpoint(domain.MethodRender), req)
	if err != nil {
		return nil, err
	}

	var resp domain.RenderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode render response: %w", err)
	}
	return &resp, nil
}

func (c *Client) put(ctx context.Context, url string, payload any) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", ContentType)
	req.Header.Set("Content-Type", ContentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, fmt.Errorf("%w: PUT %s: %d %s", domain.ErrHostStatus, url, resp.StatusCode, msg)
	}
	return body, nil
}
