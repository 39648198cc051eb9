package service

import (
	"testing"

	"treasury-ledger/pkg/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signCanonical(t *testing.T, key *crypto.PrivateKey, payload string) []byte {
	t.Helper()
	digest := crypto.Hash([]byte(payload))
	sig, err := key.Sign(digest.Bytes())
	require.NoError(t, err)
	return sig
}

func TestSchnorrSignatureService_Verify(t *testing.T) {
	svc := NewSchnorrSignatureService()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	payload := svc.BuildCanonicalString("POST", "/api/v1/vaults", 1708092000, "n-1", `{"max_supply":1000}`)
	sig := signCanonical(t, key, payload)

	signer, ok := svc.Verify(key.PublicKey(), payload, sig)
	require.True(t, ok)
	assert.Equal(t, key.Address(), signer)
}

func TestSchnorrSignatureService_VerifyFails_TamperedPayload(t *testing.T) {
	svc := NewSchnorrSignatureService()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig := signCanonical(t, key, "POST|/api/v1/vaults|1|n|{}")

	_, ok := svc.Verify(key.PublicKey(), "POST|/api/v1/vaults|1|n|{\"x\":1}", sig)
	assert.False(t, ok)
}

func TestSchnorrSignatureService_VerifyFails_OtherKey(t *testing.T) {
	svc := NewSchnorrSignatureService()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig := signCanonical(t, key, "payload")

	_, ok := svc.Verify(other.PublicKey(), "payload", sig)
	assert.False(t, ok)

	_, ok = svc.Verify([]byte{0x02, 0x01}, "payload", sig)
	assert.False(t, ok, "malformed public key must not verify")
}

func TestSchnorrSignatureService_BuildCanonicalString(t *testing.T) {
	svc := NewSchnorrSignatureService()

	assert.Equal(t,
		`POST|/api/v1/vaults/ab/deposits|1708092000|abc123|{"amount":500}`,
		svc.BuildCanonicalString("POST", "/api/v1/vaults/ab/deposits", 1708092000, "abc123", `{"amount":500}`))
	assert.Equal(t, "GET|/api/v1/me/children|1708092000|nonce1|",
		svc.BuildCanonicalString("GET", "/api/v1/me/children", 1708092000, "nonce1", ""))
}

func TestHMACPayloadSigner_SignAndVerify(t *testing.T) {
	svc := NewHMACPayloadSigner()
	payload := `{"kind":"PAYOUT_EXECUTED","amount":500}`

	signature := svc.Sign("webhook-secret", payload)

	assert.Regexp(t, `^[0-9a-f]{64}$`, signature)
	assert.True(t, svc.Verify("webhook-secret", payload, signature))
	assert.False(t, svc.Verify("wrong-secret", payload, signature))
	assert.False(t, svc.Verify("webhook-secret", payload+" ", signature))
	assert.Equal(t, signature, svc.Sign("webhook-secret", payload))
}
