package httpapi_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/farmchain-go/internal/adapters/httpapi"
	"github.com/andrescamacho/farmchain-go/internal/adapters/metrics"
	"github.com/andrescamacho/farmchain-go/internal/application/auth"
	"github.com/andrescamacho/farmchain-go/internal/application/mediator"
	"github.com/andrescamacho/farmchain-go/internal/application/setup"
	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
	"github.com/andrescamacho/farmchain-go/test/helpers"
)

const apiOwner = "0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223"
const apiStranger = "0x8ba1f109551bd432803012645ac136ddd64dba72"

type apiFixture struct {
	url    string
	farms  *helpers.MockFarmRepository
	chain  *helpers.MockChain
	wallet *helpers.MockWallet
	signer *helpers.MockSigner
	clock  *shared.MockClock
	farm   *farm.Farm
}

// newAPIFixture runs the real route tree, mediator and handlers over
// mocks. The wallet accepts the signature "0xgood" only.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	farmID := shared.MustNewFarmID(42)
	owner := shared.MustNewAddress(apiOwner)

	f, err := farm.NewFarm(farmID, owner)
	require.NoError(t, err)
	f.State().SetItem(catalog.SunflowerSeed, decimal.NewFromInt(2))

	farms := helpers.NewMockFarmRepository()
	farms.AddFarm(f)

	chain := helpers.NewMockChain()
	chain.SetOwner(farmID, owner)

	wallet := helpers.NewMockWallet()
	wallet.Allow("0xgood")

	signer := helpers.NewMockSigner()
	clock := shared.NewMockClock(time.Date(2022, 3, 14, 12, 0, 0, 0, time.UTC))

	m := mediator.NewMediator()
	m.Use(auth.SignatureMiddleware(wallet))
	registry := setup.NewHandlerRegistry(farms, helpers.NewMockEventStore(), chain, signer, nil, clock)
	require.NoError(t, registry.RegisterFarmHandlers(m))

	server := httptest.NewServer(httpapi.NewServer(m, nil).Handler())
	t.Cleanup(server.Close)

	return &apiFixture{
		url:    server.URL,
		farms:  farms,
		chain:  chain,
		wallet: wallet,
		signer: signer,
		clock:  clock,
		farm:   f,
	}
}

func encodeActions(t *testing.T, batch []actions.Action) json.RawMessage {
	t.Helper()
	encoded := make([]json.RawMessage, len(batch))
	for i, a := range batch {
		b, err := actions.Encode(a)
		require.NoError(t, err)
		encoded[i] = b
	}
	b, err := json.Marshal(encoded)
	require.NoError(t, err)
	return b
}

func (fx *apiFixture) saveBody(t *testing.T, batch []actions.Action) map[string]interface{} {
	t.Helper()
	return map[string]interface{}{
		"farmId":    fx.farm.ID().Value(),
		"sender":    apiOwner,
		"sessionId": fx.farm.Session().Value(),
		"signature": "0xgood",
		"actions":   encodeActions(t, batch),
	}
}

func doPost(t *testing.T, url string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func doGet(t *testing.T, url string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestHealthEndpoint(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)

	// Act
	status, body := doGet(t, fx.url+"/health")

	// Assert
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestSaveEndpointCommitsBatch(t *testing.T) {
	// Arrange: plant, wait out growth, harvest and sell one sunflower
	fx := newAPIFixture(t)
	planted := fx.clock.Now()
	fx.clock.Advance(70 * time.Second)
	batch := []actions.Action{
		actions.Plant{Index: 3, Item: catalog.SunflowerSeed, CreatedAt: planted},
		actions.Harvest{Index: 3, CreatedAt: planted.Add(61 * time.Second)},
		actions.Sell{Item: catalog.Sunflower, Amount: decimal.NewFromInt(1), CreatedAt: planted.Add(63 * time.Second)},
	}

	// Act
	status, body := doPost(t, fx.url+"/save", fx.saveBody(t, batch))

	// Assert
	require.Equal(t, http.StatusOK, status)
	snapshot, ok := body["farm"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "0.02", snapshot["balance"])
	assert.NotEqual(t, fx.farm.Session().Value(), body["sessionId"])
	assert.NotEmpty(t, body["sessionId"])
}

func TestSaveRejectsBadSignature(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)
	payload := fx.saveBody(t, nil)
	payload["actions"] = json.RawMessage("[]")
	payload["signature"] = "0xforged"

	// Act
	status, body := doPost(t, fx.url+"/save", payload)

	// Assert
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "invalid signature", body["error"])
}

func TestSaveRejectsMissingFields(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)
	payload := fx.saveBody(t, nil)
	payload["actions"] = json.RawMessage("[]")
	delete(payload, "sessionId")

	// Act
	status, body := doPost(t, fx.url+"/save", payload)

	// Assert
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "invalid request")
}

func TestSaveRejectsMalformedBody(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)
	resp, err := http.Post(fx.url+"/save", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	defer resp.Body.Close()

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveRejectsUnknownActionTag(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)
	payload := fx.saveBody(t, nil)
	payload["actions"] = json.RawMessage(`[{"type":"item.duplicated","createdAt":"2022-03-14T12:00:00Z"}]`)

	// Act
	status, body := doPost(t, fx.url+"/save", payload)

	// Assert
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "action 0")
}

func TestMissingAndForeignFarmsAreIndistinguishable(t *testing.T) {
	// Arrange: one save names a farm that does not exist, the other a
	// farm the sender does not own
	fx := newAPIFixture(t)

	missing := fx.saveBody(t, nil)
	missing["actions"] = json.RawMessage("[]")
	missing["farmId"] = 999

	foreign := fx.saveBody(t, nil)
	foreign["actions"] = json.RawMessage("[]")
	foreign["sender"] = apiStranger

	// Act
	missingStatus, missingBody := doPost(t, fx.url+"/save", missing)
	foreignStatus, foreignBody := doPost(t, fx.url+"/save", foreign)

	// Assert: identical status and body, so responses cannot be used
	// to probe which farms exist
	assert.Equal(t, http.StatusNotFound, missingStatus)
	assert.Equal(t, http.StatusNotFound, foreignStatus)
	assert.Equal(t, "Farm does not exist", missingBody["error"])
	assert.Equal(t, missingBody, foreignBody)
}

func TestSaveWithStaleSessionConflicts(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)
	payload := fx.saveBody(t, nil)
	payload["actions"] = json.RawMessage("[]")
	payload["sessionId"] = shared.NewSessionToken().Value()

	// Act
	status, body := doPost(t, fx.url+"/save", payload)

	// Assert
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Concurrent save detected", body["error"])
}

func TestSaveWithFutureActionRejected(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)
	batch := []actions.Action{
		actions.Plant{Index: 0, Item: catalog.SunflowerSeed, CreatedAt: fx.clock.Now().Add(2 * time.Minute)},
	}

	// Act
	status, body := doPost(t, fx.url+"/save", fx.saveBody(t, batch))

	// Assert
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Event cannot be in the future", body["error"])
}

func TestChainOutageMapsToServiceUnavailable(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)
	fx.chain.OwnerErr = shared.NewExternalUnavailableError(errors.New("gateway timeout"))
	payload := fx.saveBody(t, nil)
	payload["actions"] = json.RawMessage("[]")

	// Act
	status, body := doPost(t, fx.url+"/save", payload)

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "External service unavailable", body["error"])
}

func TestWithdrawEndpointReturnsAuthorization(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)
	payload := map[string]interface{}{
		"farmId":    fx.farm.ID().Value(),
		"sender":    apiOwner,
		"sessionId": fx.farm.Session().Value(),
		"signature": "0xgood",
		"sfl":       "50",
		"ids":       []int{catalog.MustItem(catalog.Wood).ID},
		"amounts":   []string{"3000000000000000000"},
	}

	// Act
	status, body := doPost(t, fx.url+"/withdraw", payload)

	// Assert
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0xsigned", body["signature"])
	assert.Equal(t, float64(1700000600), body["deadline"])

	require.Len(t, fx.signer.Payloads, 1)
	assert.Equal(t, int64(2500), fx.signer.Payloads[0].TaxBps)
}

func TestWithdrawRejectsNonWithdrawableItem(t *testing.T) {
	// Arrange: seeds never leave the farm
	fx := newAPIFixture(t)
	payload := map[string]interface{}{
		"farmId":    fx.farm.ID().Value(),
		"sender":    apiOwner,
		"sessionId": fx.farm.Session().Value(),
		"signature": "0xgood",
		"sfl":       "0",
		"ids":       []int{catalog.MustItem(catalog.SunflowerSeed).ID},
		"amounts":   []string{"1"},
	}

	// Act
	status, body := doPost(t, fx.url+"/withdraw", payload)

	// Assert
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "cannot be withdrawn")
}

func TestGetFarmReturnsSnapshot(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)

	// Act
	status, body := doGet(t, fx.url+"/farms/42")

	// Assert
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, apiOwner, body["owner"])
	assert.Equal(t, fx.farm.Session().Value(), body["sessionId"])

	snapshot, ok := body["farm"].(map[string]interface{})
	require.True(t, ok)
	inventory, ok := snapshot["inventory"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2", inventory["Sunflower Seed"])
}

func TestGetFarmUnknownID(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)

	// Act
	status, body := doGet(t, fx.url+"/farms/999")

	// Assert
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Farm does not exist", body["error"])
}

func TestGetFarmRejectsNonNumericID(t *testing.T) {
	// Arrange
	fx := newAPIFixture(t)

	// Act
	status, _ := doGet(t, fx.url+"/farms/not-a-number")

	// Assert
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMetricsEndpointWhenEnabled(t *testing.T) {
	// Arrange: the route is only mounted when a registry exists
	metrics.InitRegistry()
	fx := newAPIFixture(t)

	// Act
	resp, err := http.Get(fx.url + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	_, readErr := io.ReadAll(resp.Body)

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, readErr)
}
