package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/farmchain-go/internal/adapters/metrics"
	"github.com/andrescamacho/farmchain-go/internal/domain/ports"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
	"github.com/andrescamacho/farmchain-go/pkg/wei"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxRetries  = 3
	defaultBackoffBase = 500 * time.Millisecond
	defaultRateLimit   = 20.0
	defaultBurst       = 20

	breakerMaxFailures = 5
	breakerCooldown    = 30 * time.Second
)

// ChainGatewayClient talks to the chain gateway, the HTTP service
// fronting the token, inventory and farm registry contracts plus the
// withdrawal signer. It implements every chain-facing port. One
// instance is shared by all requests; the rate limiter and circuit
// breaker protect the gateway across the whole process.
type ChainGatewayClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

var (
	_ ports.Chain     = (*ChainGatewayClient)(nil)
	_ ports.Signer    = (*ChainGatewayClient)(nil)
	_ ports.Wallet    = (*ChainGatewayClient)(nil)
	_ ports.Whitelist = (*ChainGatewayClient)(nil)
)

// NewChainGatewayClient creates a gateway client with default settings.
// Rate limit: 20 requests per second with burst of 20.
// Retry: max 3 attempts with 500ms exponential backoff + jitter.
func NewChainGatewayClient(baseURL string) *ChainGatewayClient {
	return NewChainGatewayClientWithConfig(
		baseURL,
		defaultRateLimit,
		defaultBurst,
		defaultMaxRetries,
		defaultBackoffBase,
		defaultTimeout,
		nil, // Use RealClock by default
	)
}

// NewChainGatewayClientWithConfig creates a gateway client with custom
// configuration. If clock is nil, uses RealClock for production.
func NewChainGatewayClientWithConfig(
	baseURL string,
	requestsPerSecond float64,
	burst int,
	maxRetries int,
	backoffBase time.Duration,
	timeout time.Duration,
	clock shared.Clock,
) *ChainGatewayClient {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ChainGatewayClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		breaker:     NewCircuitBreaker(breakerMaxFailures, breakerCooldown, clock),
		baseURL:     baseURL,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		clock:       clock,
	}
}

// LoadBalance returns the wallet's token balance in wei
func (c *ChainGatewayClient) LoadBalance(ctx context.Context, address shared.Address) (*big.Int, error) {
	var response struct {
		Balance string `json:"balance"`
	}

	if err := c.call(ctx, "balance", "GET", "/balance/"+address.Value(), nil, &response); err != nil {
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}

	value, err := wei.Parse(response.Balance)
	if err != nil {
		return nil, fmt.Errorf("gateway returned invalid balance: %w", err)
	}
	return value, nil
}

// LoadInventory returns wei amounts positionally in the catalog's
// ascending on-chain ID order
func (c *ChainGatewayClient) LoadInventory(ctx context.Context, address shared.Address) ([]*big.Int, error) {
	var response struct {
		Holdings []string `json:"holdings"`
	}

	if err := c.call(ctx, "inventory", "GET", "/inventory/"+address.Value(), nil, &response); err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	holdings := make([]*big.Int, len(response.Holdings))
	for i, raw := range response.Holdings {
		value, err := wei.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("gateway returned invalid holding at position %d: %w", i, err)
		}
		holdings[i] = value
	}
	return holdings, nil
}

// OwnerOf returns the current owner of a farm NFT
func (c *ChainGatewayClient) OwnerOf(ctx context.Context, farmID shared.FarmID) (shared.Address, error) {
	var response struct {
		Owner string `json:"owner"`
	}

	path := fmt.Sprintf("/farms/%d/owner", farmID.Value())
	if err := c.call(ctx, "owner_of", "GET", path, nil, &response); err != nil {
		return shared.Address{}, fmt.Errorf("failed to resolve farm owner: %w", err)
	}

	owner, err := shared.NewAddress(response.Owner)
	if err != nil {
		return shared.Address{}, fmt.Errorf("gateway returned invalid owner: %w", err)
	}
	return owner, nil
}

// Verify checks a wallet signature over a message
func (c *ChainGatewayClient) Verify(ctx context.Context, address shared.Address, signature string, message string) (bool, error) {
	body := map[string]string{
		"address":   address.Value(),
		"signature": signature,
		"message":   message,
	}
	var response struct {
		Valid bool `json:"valid"`
	}

	if err := c.call(ctx, "verify", "POST", "/verify", body, &response); err != nil {
		return false, fmt.Errorf("failed to verify signature: %w", err)
	}
	return response.Valid, nil
}

// WithdrawSignature asks the signer to authorize a withdrawal
func (c *ChainGatewayClient) WithdrawSignature(ctx context.Context, payload ports.WithdrawPayload) (ports.WithdrawSignature, error) {
	body := map[string]interface{}{
		"sender":    payload.Sender.Value(),
		"farmId":    payload.FarmID.Value(),
		"sessionId": payload.SessionID.Value(),
		"sfl":       payload.SFL.String(),
		"ids":       payload.IDs,
		"amounts":   payload.Amounts,
		"taxBps":    payload.TaxBps,
	}
	var response struct {
		Signature string `json:"signature"`
		Deadline  int64  `json:"deadline"`
	}

	if err := c.call(ctx, "sign_withdraw", "POST", "/withdraw/sign", body, &response); err != nil {
		return ports.WithdrawSignature{}, fmt.Errorf("failed to sign withdrawal: %w", err)
	}
	return ports.WithdrawSignature{Signature: response.Signature, Deadline: response.Deadline}, nil
}

// Contains reports whether an address is cleared for mainnet syncs
func (c *ChainGatewayClient) Contains(ctx context.Context, address shared.Address) (bool, error) {
	var response struct {
		Allowed bool `json:"allowed"`
	}

	if err := c.call(ctx, "whitelist", "GET", "/whitelist/"+address.Value(), nil, &response); err != nil {
		return false, fmt.Errorf("failed to check whitelist: %w", err)
	}
	return response.Allowed, nil
}

// call wraps one gateway request with the circuit breaker and records
// its metric. Exhausted retries and an open circuit both surface as
// ExternalUnavailableError so the save pipeline can tell clients to
// resubmit.
func (c *ChainGatewayClient) call(ctx context.Context, metric, method, path string, body interface{}, result interface{}) error {
	started := c.clock.Now()
	err := c.breaker.Call(func() error {
		return c.request(ctx, method, path, body, result)
	})
	elapsed := c.clock.Now().Sub(started).Seconds()

	if err != nil {
		metrics.RecordChainRequest(metric, "error", elapsed)
		if errors.Is(err, ErrCircuitOpen) {
			return shared.NewExternalUnavailableError(err)
		}
		var retryable *retryableError
		if errors.As(err, &retryable) {
			return shared.NewExternalUnavailableError(err)
		}
		return err
	}

	metrics.RecordChainRequest(metric, "success", elapsed)
	return nil
}

// request executes one gateway call with exponential backoff + jitter
// retries. Network errors, 429 and 5xx responses are retryable; other
// 4xx responses are not.
func (c *ChainGatewayClient) request(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		// Prepare request body
		var reqBody io.Reader
		if body != nil {
			jsonData, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("failed to marshal request body: %w", err)
			}
			reqBody = bytes.NewBuffer(jsonData)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Network error - retryable
			lastErr = &retryableError{
				message: fmt.Errorf("network error: %w", err).Error(),
			}

			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}

			c.clock.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		// 429 Too Many Requests - retryable, honoring Retry-After
		if resp.StatusCode == http.StatusTooManyRequests {
			var retryAfterDuration time.Duration
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, err := strconv.Atoi(retryAfter); err == nil {
					retryAfterDuration = time.Duration(seconds) * time.Second
				}
			}

			lastErr = &retryableError{
				message:    "rate limited (429)",
				retryAfter: retryAfterDuration,
			}

			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}

			backoffDelay := addJitter(c.backoffBase * time.Duration(1<<attempt))
			if retryAfterDuration > 0 {
				// Use the server-provided Retry-After without jitter
				backoffDelay = retryAfterDuration
			}
			c.clock.Sleep(backoffDelay)
			continue
		}

		// 5xx server errors - retryable
		if resp.StatusCode >= 500 {
			lastErr = &retryableError{
				message: fmt.Sprintf("gateway error (%d)", resp.StatusCode),
			}

			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}

			c.clock.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
			continue
		}

		// Remaining 4xx client errors - NOT retryable
		if resp.StatusCode >= 400 {
			return fmt.Errorf("gateway error (status %d): %s", resp.StatusCode, string(respBody))
		}

		if result != nil {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}

		return nil
	}

	// All retries exhausted
	if lastErr != nil {
		return fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return fmt.Errorf("max retries exceeded")
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}

// addJitter adds random jitter to a duration to avoid thundering herd
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64() // 0.5 to 1.5
	return time.Duration(float64(d) * jitter)
}
