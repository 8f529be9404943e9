package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
)

// EngineClient provides a client interface to a running engine over HTTP
type EngineClient struct {
	httpClient *http.Client
	baseURL    string
}

// Response types (mirrors engine JSON responses)

type HealthResponse struct {
	Status string `json:"status"`
}

type FarmResponse struct {
	ID        uint64        `json:"id"`
	Owner     string        `json:"owner"`
	SessionID string        `json:"sessionId"`
	Farm      farm.Snapshot `json:"farm"`
}

// NewEngineClient creates a client for the engine at the given base URL
func NewEngineClient(baseURL string) *EngineClient {
	return &EngineClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// HealthCheck verifies the engine is running and responsive
func (c *EngineClient) HealthCheck(ctx context.Context) (*HealthResponse, error) {
	var response HealthResponse
	if err := c.get(ctx, "/health", &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetFarm fetches the persisted snapshot of a farm
func (c *EngineClient) GetFarm(ctx context.Context, id uint64) (*FarmResponse, error) {
	var response FarmResponse
	if err := c.get(ctx, fmt.Sprintf("/farms/%d", id), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *EngineClient) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach engine at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Engine errors carry a JSON body with a single error field
		var engineErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &engineErr); err == nil && engineErr.Error != "" {
			return fmt.Errorf("engine error (status %d): %s", resp.StatusCode, engineErr.Error)
		}
		return fmt.Errorf("engine error (status %d)", resp.StatusCode)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
