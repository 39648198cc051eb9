package middleware

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"treasury-ledger/internal/adapter/storage/memory"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/internal/core/ports/mocks"
	"treasury-ledger/internal/service"
	"treasury-ledger/pkg/crypto"
	"treasury-ledger/pkg/types"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signedRouter(sigSvc ports.SignatureService, nonceStore ports.NonceStore) *gin.Engine {
	router := gin.New()
	router.POST("/test", SignatureAuth(sigSvc, nonceStore, DefaultSignatureAuthConfig(), zerolog.Nop()), func(c *gin.Context) {
		signer, _ := Signer(c)
		c.JSON(200, gin.H{"signer": signer.String()})
	})
	return router
}

func signedRequest(t *testing.T, key *crypto.PrivateKey, ts int64, nonce, body string) *http.Request {
	t.Helper()
	canonical := service.NewSchnorrSignatureService().BuildCanonicalString(http.MethodPost, "/test", ts, nonce, body)
	digest := crypto.Hash([]byte(canonical))
	sig, err := key.Sign(digest.Bytes())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(body)))
	req.Header.Set(HeaderPublicKey, hex.EncodeToString(key.PublicKey()))
	req.Header.Set(HeaderSignature, hex.EncodeToString(sig))
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderNonce, nonce)
	return req
}

func TestSignatureAuth_MissingPublicKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := signedRouter(mocks.NewMockSignatureService(ctrl), mocks.NewMockNonceStore(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_001")
}

func TestSignatureAuth_MissingSignatureHeaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := signedRouter(mocks.NewMockSignatureService(ctrl), mocks.NewMockNonceStore(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set(HeaderPublicKey, "02ab")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_002")
}

func TestSignatureAuth_ExpiredTimestamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := signedRouter(mocks.NewMockSignatureService(ctrl), mocks.NewMockNonceStore(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set(HeaderPublicKey, "02ab")
	req.Header.Set(HeaderSignature, "abcd")
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(time.Now().Add(-5*time.Minute).Unix(), 10))
	req.Header.Set(HeaderNonce, "n1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_003")
}

func TestSignatureAuth_BadSignatureSkipsNonce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sigSvc := mocks.NewMockSignatureService(ctrl)
	nonceStore := mocks.NewMockNonceStore(ctrl)
	router := signedRouter(sigSvc, nonceStore)

	sigSvc.EXPECT().BuildCanonicalString(http.MethodPost, "/test", gomock.Any(), "n1", `{"amount":1}`).Return("canonical")
	sigSvc.EXPECT().Verify(gomock.Any(), "canonical", gomock.Any()).Return(types.Address{}, false)
	// no nonce consumption for unauthenticated requests

	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(`{"amount":1}`)))
	req.Header.Set(HeaderPublicKey, "02ab")
	req.Header.Set(HeaderSignature, "abcd")
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(time.Now().Unix(), 10))
	req.Header.Set(HeaderNonce, "n1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_002")
}

func TestSignatureAuth_NonceStoreDegraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	nonceStore := mocks.NewMockNonceStore(ctrl)
	nonceStore.EXPECT().CheckAndSet(gomock.Any(), key.Address().String(), "n1", 120*time.Second).
		Return(false, errors.New("redis down"))
	router := signedRouter(service.NewSchnorrSignatureService(), nonceStore)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, key, time.Now().Unix(), "n1", "{}"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignatureAuth_SuccessAndReplay(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	router := signedRouter(service.NewSchnorrSignatureService(), memory.NewNonceStore())
	ts := time.Now().Unix()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, key, ts, "n1", `{"amount":5}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), key.Address().String())

	// Same nonce again is a replay
	w = httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, key, ts, "n1", `{"amount":5}`))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_004")

	// Tampered body fails verification
	req := signedRequest(t, key, ts, "n2", `{"amount":5}`)
	req.Body = io.NopCloser(strings.NewReader(`{"amount":500}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := gin.New()
	router.GET("/me", JWTAuth(mocks.NewMockTokenService(ctrl), zerolog.Nop()), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_002")
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenSvc := mocks.NewMockTokenService(ctrl)
	tokenSvc.EXPECT().Validate("bad").Return(nil, errors.New("expired"))

	router := gin.New()
	router.GET("/me", JWTAuth(tokenSvc, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	subject := types.Address{0x42}
	tokenSvc := mocks.NewMockTokenService(ctrl)
	tokenSvc.EXPECT().Validate("good").Return(&ports.TokenClaims{Subject: subject}, nil)

	var got types.Address
	router := gin.New()
	router.GET("/me", JWTAuth(tokenSvc, zerolog.Nop()), func(c *gin.Context) {
		got, _ = Subject(c)
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, subject, got)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(200, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRecovery_PanicRecovered(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(zerolog.Nop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}
