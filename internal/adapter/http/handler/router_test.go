package handler

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"treasury-ledger/config"
	"treasury-ledger/internal/adapter/http/middleware"
	"treasury-ledger/internal/adapter/storage/journal"
	"treasury-ledger/internal/adapter/storage/memory"
	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/service"
	"treasury-ledger/pkg/crypto"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router *gin.Engine
	nonce  atomic.Uint64
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()
	repos := service.Repositories{
		Vaults:     memory.NewVaultRepo(store),
		Children:   memory.NewChildAccountRepo(store),
		Payouts:    memory.NewPayoutRepo(store),
		Mints:      memory.NewMintRepo(store),
		Events:     memory.NewEventRepo(store),
		Native:     memory.NewNativeLedger(store),
		Tokens:     memory.NewTokenLedger(store),
		Transactor: store,
	}
	jrnl := journal.New(journal.NewMemoryDB())
	deriver := domain.NewDeriver(crypto.AddressFromPubKey([]byte("router-test-program")))
	notifier := service.NewEventNotifier(log, jrnl)

	router := SetupRouter(RouterDeps{
		VaultSvc:       service.NewVaultService(repos, deriver, notifier, log),
		DepositSvc:     service.NewDepositService(repos, deriver, notifier, log),
		PayoutSvc:      service.NewPayoutService(repos, deriver, notifier, log),
		ExchangeSvc:    service.NewExchangeService(repos, deriver, notifier, log),
		AccountSvc:     service.NewAccountService(repos.Native, store, log),
		SigSvc:         service.NewSchnorrSignatureService(),
		NonceStore:     memory.NewNonceStore(),
		TokenSvc:       service.NewJWTTokenService("test-secret", time.Hour, "treasury-ledger"),
		SignatureAuth:  middleware.DefaultSignatureAuthConfig(),
		Journal:        jrnl,
		HealthCheckers: nil,
		FaucetEnabled:  true,
		Mode:           gin.TestMode,
		Logger:         log,
	})
	return &testAPI{router: router}
}

func (a *testAPI) do(t *testing.T, key *crypto.PrivateKey, method, path string, body any) (int, map[string]interface{}) {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	if key != nil {
		ts := time.Now().Unix()
		nonce := strconv.FormatUint(a.nonce.Add(1), 10)
		canonical := service.NewSchnorrSignatureService().BuildCanonicalString(method, req.URL.Path, ts, nonce, string(raw))
		digest := crypto.Hash([]byte(canonical))
		sig, err := key.Sign(digest.Bytes())
		require.NoError(t, err)
		req.Header.Set(middleware.HeaderPublicKey, hex.EncodeToString(key.PublicKey()))
		req.Header.Set(middleware.HeaderSignature, hex.EncodeToString(sig))
		req.Header.Set(middleware.HeaderTimestamp, strconv.FormatInt(ts, 10))
		req.Header.Set(middleware.HeaderNonce, nonce)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func newKey(t *testing.T) *crypto.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}

func dataOf(resp map[string]interface{}) map[string]interface{} {
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func TestRouter_TreasuryFlow(t *testing.T) {
	api := newTestAPI(t)
	admin, dest, depositor, buyer := newKey(t), newKey(t), newKey(t), newKey(t)

	for _, k := range []*crypto.PrivateKey{depositor, buyer} {
		code, _ := api.do(t, k, http.MethodPost, "/api/v1/faucet", map[string]any{"amount": 1000})
		require.Equal(t, http.StatusOK, code)
	}

	code, resp := api.do(t, admin, http.MethodPost, "/api/v1/vaults", map[string]any{
		"admin_destination":    dest.Address().String(),
		"exchange_numerator":   2,
		"exchange_denominator": 1,
		"max_supply":           1000,
	})
	require.Equal(t, http.StatusCreated, code, resp)
	vault := dataOf(resp)["address"].(string)
	base := "/api/v1/vaults/" + vault

	code, resp = api.do(t, admin, http.MethodPost, base+"/mint", nil)
	require.Equal(t, http.StatusCreated, code, resp)

	code, resp = api.do(t, buyer, http.MethodPost, base+"/purchases", map[string]any{"sol_amount": 100})
	require.Equal(t, http.StatusCreated, code, resp)
	assert.Equal(t, float64(200), dataOf(resp)["val_amount"])

	code, resp = api.do(t, nil, http.MethodGet, base+"/tokens/"+buyer.Address().String(), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(200), dataOf(resp)["balance"])

	code, resp = api.do(t, depositor, http.MethodPost, base+"/deposits", map[string]any{"amount": 500})
	require.Equal(t, http.StatusOK, code, resp)
	child := dataOf(resp)["address"].(string)

	code, resp = api.do(t, admin, http.MethodPost, base+"/payouts", map[string]any{"child": child, "amount": 500, "nonce": 1})
	require.Equal(t, http.StatusCreated, code, resp)
	payout := dataOf(resp)["address"].(string)

	// Only the admin may execute.
	code, resp = api.do(t, depositor, http.MethodPost, base+"/payouts/"+payout+"/execute", map[string]any{
		"child": child, "recipient": depositor.Address().String(),
	})
	assert.Equal(t, http.StatusForbidden, code, resp)

	code, resp = api.do(t, admin, http.MethodPost, base+"/payouts/"+payout+"/execute", map[string]any{
		"child": child, "recipient": depositor.Address().String(),
	})
	require.Equal(t, http.StatusOK, code, resp)
	assert.Equal(t, string(domain.PayoutStatusExecuted), dataOf(resp)["status"])

	code, resp = api.do(t, nil, http.MethodGet, "/api/v1/accounts/"+depositor.Address().String()+"/balance", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1000), dataOf(resp)["balance"])

	code, resp = api.do(t, nil, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(100), dataOf(resp)["treasury_balance"])
	assert.Equal(t, float64(500), dataOf(resp)["total_withdrawn"])

	code, resp = api.do(t, nil, http.MethodGet, base+"/events?limit=2", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), dataOf(resp)["count"])

	code, resp = api.do(t, nil, http.MethodGet, base+"/journal", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(6), dataOf(resp)["count"])
}

func TestRouter_SessionAndMyChildren(t *testing.T) {
	api := newTestAPI(t)
	admin, depositor := newKey(t), newKey(t)

	api.do(t, depositor, http.MethodPost, "/api/v1/faucet", map[string]any{"amount": 50})
	_, resp := api.do(t, admin, http.MethodPost, "/api/v1/vaults", map[string]any{
		"admin_destination": admin.Address().String(), "exchange_numerator": 1, "exchange_denominator": 1,
	})
	vault := dataOf(resp)["address"].(string)
	code, _ := api.do(t, depositor, http.MethodPost, fmt.Sprintf("/api/v1/vaults/%s/deposits", vault), map[string]any{"amount": 20})
	require.Equal(t, http.StatusOK, code)

	code, resp = api.do(t, depositor, http.MethodPost, "/api/v1/auth/session", nil)
	require.Equal(t, http.StatusCreated, code, resp)
	token := dataOf(resp)["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/children", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), depositor.Address().String())
}

func TestRouter_UnsignedMutationRejected(t *testing.T) {
	api := newTestAPI(t)

	code, resp := api.do(t, nil, http.MethodPost, "/api/v1/vaults", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "SEC_001", resp["error_code"])
}

func TestRouter_DefaultConfigHidesFaucet(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	store := memory.NewStore()
	router := SetupRouter(RouterDeps{
		AccountSvc:    service.NewAccountService(memory.NewNativeLedger(store), store, zerolog.Nop()),
		SigSvc:        service.NewSchnorrSignatureService(),
		NonceStore:    memory.NewNonceStore(),
		FaucetEnabled: cfg.Ledger.FaucetEnabled,
		Mode:          gin.TestMode,
		Logger:        zerolog.Nop(),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/faucet", bytes.NewBufferString(`{"amount":1000}`)))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_FaucetDisabled(t *testing.T) {
	router := SetupRouter(RouterDeps{
		SigSvc:     service.NewSchnorrSignatureService(),
		NonceStore: memory.NewNonceStore(),
		Mode:       gin.TestMode,
		Logger:     zerolog.Nop(),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/faucet", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
