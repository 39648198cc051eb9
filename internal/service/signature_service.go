package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"treasury-ledger/pkg/crypto"
	"treasury-ledger/pkg/types"
)

// SchnorrSignatureService implements ports.SignatureService over secp256k1
// Schnorr signatures of the BLAKE3 digest of the canonical string.
type SchnorrSignatureService struct{}

// NewSchnorrSignatureService creates a new SchnorrSignatureService.
func NewSchnorrSignatureService() *SchnorrSignatureService {
	return &SchnorrSignatureService{}
}

// BuildCanonicalString constructs the canonical payload for signing.
// Format: METHOD|PATH|TIMESTAMP|NONCE|BODY
func (s *SchnorrSignatureService) BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string {
	return fmt.Sprintf("%s|%s|%d|%s|%s", method, path, timestamp, nonce, body)
}

// Verify checks signature over payload and returns the signer's address.
func (s *SchnorrSignatureService) Verify(publicKey []byte, payload string, signature []byte) (types.Address, bool) {
	digest := crypto.Hash([]byte(payload))
	if !crypto.VerifySignature(digest.Bytes(), signature, publicKey) {
		return types.Address{}, false
	}
	return crypto.AddressFromPubKey(publicKey), true
}

// HMACPayloadSigner implements ports.PayloadSigner using HMAC-SHA256.
type HMACPayloadSigner struct{}

// NewHMACPayloadSigner creates a new HMAC-SHA256 payload signer.
func NewHMACPayloadSigner() *HMACPayloadSigner {
	return &HMACPayloadSigner{}
}

// Sign computes HMAC-SHA256 of payload using secretKey.
// Returns lowercase hex-encoded signature.
func (s *HMACPayloadSigner) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks signature in constant time.
func (s *HMACPayloadSigner) Verify(secretKey string, payload string, signature string) bool {
	expected := s.Sign(secretKey, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
