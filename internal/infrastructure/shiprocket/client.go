package shiprocket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/domain/shipping"
)

// defaultBaseURL is the provider's public API endpoint
const defaultBaseURL = "https://apiv2.shiprocket.in"

// maxResponseSize bounds the auth response body (1MB)
const maxResponseSize = 1 << 20

// Client implements the shipping provider port against the Shiprocket API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ shipping.Provider = (*Client)(nil)

// Config holds client settings.
type Config struct {
	// BaseURL overrides the provider endpoint; used by tests
	BaseURL string
	// TimeoutSeconds bounds each HTTP call
	TimeoutSeconds int
}

// NewClient creates a shipping provider client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger:     logger,
	}
}

// Authenticate exchanges the account email and password for an API token.
func (c *Client) Authenticate(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("shiprocket: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/external/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("shiprocket: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shipping.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("shiprocket: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("shipping provider login rejected",
			zap.Int("status", resp.StatusCode))
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: HTTP %d", shipping.ErrAuthFailed, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: HTTP %d", shipping.ErrUnavailable, resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", shipping.ErrInvalidResponse, err)
	}
	if result.Token == "" {
		return "", fmt.Errorf("%w: no token in response", shipping.ErrInvalidResponse)
	}
	return result.Token, nil
}
