package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kadirpekel/coopcheck/safety"
)

// ============================================================================
// A2A CLIENT - Call the food safety service
// ============================================================================

// ClientConfig contains configuration for the A2A client
type ClientConfig struct {
	ServerURL string
	Timeout   time.Duration
	Agent     AgentInfo
}

// Client is an A2A protocol client for the food safety service. Connection
// and protocol errors are returned to the caller; nothing is retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	agent      AgentInfo
}

// NewClient creates a new A2A protocol client
func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	baseURL := cfg.ServerURL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	agent := cfg.Agent
	if agent.AgentID == "" {
		agent = AgentInfo{
			AgentID: "chicken-food-safety-client",
			Name:    "Chicken Food Safety Client",
			Version: ProtocolVersion,
		}
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		agent:      agent,
	}
}

// CheckFood sends a food safety check request and returns the classification.
// The server's reply is rejected unless its correlation ID matches the
// request ID.
func (c *Client) CheckFood(ctx context.Context, foodItem string) (*safety.Result, error) {
	recipient := &AgentInfo{
		AgentID: "chicken-food-safety-service",
		Name:    "Chicken Food Safety Service",
	}

	request, err := NewRequest(c.agent, recipient, foodItem)
	if err != nil {
		return nil, fmt.Errorf("failed to build request envelope: %w", err)
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request envelope: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+CheckEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", fmt.Sprintf("%s/%s", c.agent.Name, c.agent.Version))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server error: %s - %s", resp.Status, string(raw))
	}

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}

	if err := ValidateResponse(&envelope, request.ID); err != nil {
		return nil, fmt.Errorf("invalid A2A response: %w", err)
	}

	var payload ResponsePayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response payload: %w", err)
	}

	if !payload.Success {
		if payload.Error != nil {
			return nil, &ServiceError{Code: payload.Error.Code, Message: payload.Error.Message}
		}
		return nil, &ServiceError{Code: ErrorCodeInternal, Message: "request failed without error detail"}
	}

	if payload.Result == nil {
		return nil, fmt.Errorf("response payload is missing result")
	}

	return payload.Result, nil
}

// Discover fetches the service directory from the server
func (c *Client) Discover(ctx context.Context) (*ServiceDirectory, error) {
	var directory ServiceDirectory
	if err := c.getJSON(ctx, DiscoveryEndpoint, &directory); err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	return &directory, nil
}

// Health checks server liveness
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.getJSON(ctx, HealthEndpoint, &status); err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	return &status, nil
}

// getJSON performs a GET request and decodes the JSON response into out
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %s - %s", resp.Status, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
