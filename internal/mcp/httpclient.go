package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
)

// HTTPClient implements Calculator by calling the liftcalc JSON API.
// Used for remote MCP mode where the binary runs locally (stdio) but the
// calculators run on a shared server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies Calculator.
var _ Calculator = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		var e struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			apiErr.Kind, apiErr.Message = e.Kind, e.Error
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Estimate(ctx context.Context, req rpe.Request) (*Estimate, error) {
	var out Estimate
	if err := c.do(ctx, http.MethodPost, "/api/v1/e1rm", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type solveBody struct {
	plates.LoadRequest
	Strategy plates.Strategy `json:"strategy"`
}

func (c *HTTPClient) SolvePlates(ctx context.Context, req plates.LoadRequest, s plates.Strategy) (*Loadout, error) {
	var out Loadout
	if err := c.do(ctx, http.MethodPost, "/api/v1/plates/solve", solveBody{LoadRequest: req, Strategy: s}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RPETable(ctx context.Context, b rpe.Bias) (*RPETable, error) {
	var out RPETable
	if err := c.do(ctx, http.MethodGet, "/api/v1/rpe/"+url.PathEscape(b.String()), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Catalog(ctx context.Context) ([]plates.Class, error) {
	var out []plates.Class
	if err := c.do(ctx, http.MethodGet, "/api/v1/plates/catalog", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
