// ABOUTME: HTTP client for the mission planner API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/uxsforge/mission-planner/backend/models"
)

const apiPrefix = "/api/v1"

// Client is the API client for the mission planner backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status   string         `json:"status"`
	Cache    CacheStatus    `json:"cache"`
	Registry RegistryStatus `json:"registry"`
}

// CacheStatus represents comms cache state in health response
type CacheStatus struct {
	Enabled      bool `json:"enabled"`
	CommsEntries int  `json:"comms_entries"`
}

// RegistryStatus counts designs and plans the backend has seen
type RegistryStatus struct {
	Designs int `json:"designs"`
	Plans   int `json:"plans"`
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// ValidatePlatform calls POST /api/v1/platforms/validate
func (c *Client) ValidatePlatform(ctx context.Context, input models.ValidatePlatformRequest) (*models.ValidatePlatformResponse, error) {
	var out models.ValidatePlatformResponse
	if err := c.do(ctx, http.MethodPost, "/platforms/validate", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeComms calls POST /api/v1/comms/analyze
func (c *Client) AnalyzeComms(ctx context.Context, input models.CommsAnalysisRequest) (*models.CommsAnalysis, error) {
	var out models.CommsAnalysis
	if err := c.do(ctx, http.MethodPost, "/comms/analyze", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logistics calls POST /api/v1/missions/logistics
func (c *Client) Logistics(ctx context.Context, input models.LogisticsRequest) (*models.MissionLogistics, error) {
	var out models.MissionLogistics
	if err := c.do(ctx, http.MethodPost, "/missions/logistics", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Feasibility calls POST /api/v1/feasibility
func (c *Client) Feasibility(ctx context.Context, input models.FeasibilityRequest) (*models.FeasibilityReport, error) {
	var out models.FeasibilityReport
	if err := c.do(ctx, http.MethodPost, "/feasibility", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends a JSON request to path under the API prefix and decodes the
// response into out. A nil body sends no payload.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts transport errors into user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if errResp.Details != "" {
		return fmt.Errorf("backend error: %s: %s", errResp.Error, errResp.Details)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}
