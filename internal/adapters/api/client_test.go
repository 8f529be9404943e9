package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/farmchain-go/internal/adapters/api"
	"github.com/andrescamacho/farmchain-go/internal/domain/ports"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

const testWallet = "0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223"

// newTestClient builds a gateway client with tight timings so retry
// paths run instantly under the mock clock.
func newTestClient(baseURL string, maxRetries int) (*api.ChainGatewayClient, *shared.MockClock) {
	clock := shared.NewMockClock(time.Date(2022, 3, 14, 12, 0, 0, 0, time.UTC))
	client := api.NewChainGatewayClientWithConfig(
		baseURL,
		1000, // requests per second
		1000, // burst
		maxRetries,
		time.Millisecond,
		5*time.Second,
		clock,
	)
	return client, clock
}

func testAddress(t *testing.T) shared.Address {
	t.Helper()
	address, err := shared.NewAddress(testWallet)
	require.NoError(t, err)
	return address
}

func TestLoadBalanceParsesWei(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/balance/"+testWallet, r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"balance": "1500000000000000000"})
	}))
	defer server.Close()
	client, _ := newTestClient(server.URL, 0)

	// Act
	balance, err := client.LoadBalance(context.Background(), testAddress(t))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Cmp(big.NewInt(1500000000000000000)))
}

func TestLoadBalanceRejectsMalformedAmount(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"balance": "not-a-number"})
	}))
	defer server.Close()
	client, _ := newTestClient(server.URL, 0)

	// Act
	_, err := client.LoadBalance(context.Background(), testAddress(t))

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid balance")
}

func TestLoadInventoryKeepsPositions(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventory/"+testWallet, r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string][]string{
			"holdings": {"0", "3000000000000000000", "0", "2"},
		})
	}))
	defer server.Close()
	client, _ := newTestClient(server.URL, 0)

	// Act
	holdings, err := client.LoadInventory(context.Background(), testAddress(t))

	// Assert
	require.NoError(t, err)
	require.Len(t, holdings, 4)
	assert.Equal(t, 0, holdings[0].Sign())
	assert.Equal(t, 0, holdings[1].Cmp(big.NewInt(3000000000000000000)))
	assert.Equal(t, 0, holdings[3].Cmp(big.NewInt(2)))
}

func TestOwnerOfResolvesAddress(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/farms/42/owner", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"owner": testWallet})
	}))
	defer server.Close()
	client, _ := newTestClient(server.URL, 0)
	farmID, err := shared.NewFarmID(42)
	require.NoError(t, err)

	// Act
	owner, err := client.OwnerOf(context.Background(), farmID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, testWallet, owner.Value())
}

func TestVerifySendsSignedMessage(t *testing.T) {
	// Arrange
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/verify", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		_ = json.NewEncoder(w).Encode(map[string]bool{"valid": true})
	}))
	defer server.Close()
	client, _ := newTestClient(server.URL, 0)

	// Act
	valid, err := client.Verify(context.Background(), testAddress(t), "0xsig", "farm:42:session:0xabc")

	// Assert
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, testWallet, received["address"])
	assert.Equal(t, "0xsig", received["signature"])
	assert.Equal(t, "farm:42:session:0xabc", received["message"])
}

func TestWithdrawSignatureForwardsPayload(t *testing.T) {
	// Arrange
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/withdraw/sign", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"signature": "0xsigned",
			"deadline":  1700000600,
		})
	}))
	defer server.Close()
	client, _ := newTestClient(server.URL, 0)
	farmID, err := shared.NewFarmID(7)
	require.NoError(t, err)
	session := shared.NewSessionToken()
	payload := ports.WithdrawPayload{
		Sender:    testAddress(t),
		FarmID:    farmID,
		SessionID: session,
		SFL:       decimal.RequireFromString("50"),
		IDs:       []int{13},
		Amounts:   []string{"3000000000000000000"},
		TaxBps:    2500,
	}

	// Act
	signature, err := client.WithdrawSignature(context.Background(), payload)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0xsigned", signature.Signature)
	assert.Equal(t, int64(1700000600), signature.Deadline)
	assert.Equal(t, testWallet, received["sender"])
	assert.Equal(t, float64(7), received["farmId"])
	assert.Equal(t, session.Value(), received["sessionId"])
	assert.Equal(t, "50", received["sfl"])
	assert.Equal(t, float64(2500), received["taxBps"])
}

func TestWhitelistLookup(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/whitelist/"+testWallet, r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]bool{"allowed": false})
	}))
	defer server.Close()
	client, _ := newTestClient(server.URL, 0)

	// Act
	allowed, err := client.Contains(context.Background(), testAddress(t))

	// Assert
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRetriesServerErrorsThenSucceeds(t *testing.T) {
	// Arrange
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"balance": "10"})
	}))
	defer server.Close()
	client, _ := newTestClient(server.URL, 3)

	// Act
	balance, err := client.LoadBalance(context.Background(), testAddress(t))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 0, balance.Cmp(big.NewInt(10)))
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	// Arrange
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "no such wallet", http.StatusBadRequest)
	}))
	defer server.Close()
	client, _ := newTestClient(server.URL, 3)

	// Act
	_, err := client.LoadBalance(context.Background(), testAddress(t))

	// Assert
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, err.Error(), "status 400")
	var unavailable *shared.ExternalUnavailableError
	assert.False(t, errors.As(err, &unavailable))
}

func TestExhaustedRetriesSurfaceAsUnavailable(t *testing.T) {
	// Arrange
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	client, _ := newTestClient(server.URL, 2)

	// Act
	_, err := client.LoadBalance(context.Background(), testAddress(t))

	// Assert
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
	var unavailable *shared.ExternalUnavailableError
	assert.True(t, errors.As(err, &unavailable))
}

func TestRetryAfterHeaderIsHonored(t *testing.T) {
	// Arrange
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"balance": "10"})
	}))
	defer server.Close()
	client, clock := newTestClient(server.URL, 2)
	started := clock.Now()

	// Act
	_, err := client.LoadBalance(context.Background(), testAddress(t))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	// Server-provided delay is used verbatim, without jitter
	assert.Equal(t, 2*time.Second, clock.Now().Sub(started))
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	// Arrange
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	client, _ := newTestClient(server.URL, 0)
	address := testAddress(t)

	// Act: five failing calls trip the breaker
	for i := 0; i < 5; i++ {
		_, err := client.LoadBalance(context.Background(), address)
		require.Error(t, err)
	}
	_, err := client.LoadBalance(context.Background(), address)

	// Assert: the sixth call never reaches the gateway
	require.Error(t, err)
	assert.Equal(t, int32(5), calls.Load())
	var unavailable *shared.ExternalUnavailableError
	assert.True(t, errors.As(err, &unavailable))
	assert.ErrorIs(t, err, api.ErrCircuitOpen)
}

func TestCircuitRecoversAfterCooldown(t *testing.T) {
	// Arrange
	var failing atomic.Bool
	failing.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"balance": "10"})
	}))
	defer server.Close()
	client, clock := newTestClient(server.URL, 0)
	address := testAddress(t)
	for i := 0; i < 5; i++ {
		_, _ = client.LoadBalance(context.Background(), address)
	}

	// Act: gateway heals, cooldown elapses, next call probes half-open
	failing.Store(false)
	clock.Advance(31 * time.Second)
	balance, err := client.LoadBalance(context.Background(), address)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Cmp(big.NewInt(10)))
}
