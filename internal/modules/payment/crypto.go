package payment

import (
	"crypto/cipher"
	"crypto/des"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

const SignatureVersion = "HMAC_SHA256_V1"

// Signer implements the gateway's HMAC_SHA256_V1 scheme: the merchant key
// encrypts the order number with 3DES-CBC (zero IV, manual zero padding,
// no auto padding) to derive a per-order key, which then HMAC-SHA256s the
// base64 parameter blob.
type Signer struct {
	key []byte
}

func NewSigner(base64Key string) (*Signer, error) {
	raw, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return nil, fmt.Errorf("secret key is not valid base64: %w", err)
	}
	if len(raw) != 24 {
		return nil, fmt.Errorf("secret key must decode to 24 bytes, got %d", len(raw))
	}
	return &Signer{key: raw}, nil
}

func (s *Signer) deriveKey(orderNumber string) ([]byte, error) {
	block, err := des.NewTripleDESCipher(s.key)
	if err != nil {
		return nil, err
	}

	data := []byte(orderNumber)
	if rem := len(data) % block.BlockSize(); rem != 0 {
		data = append(data, make([]byte, block.BlockSize()-rem)...)
	}

	iv := make([]byte, block.BlockSize())
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)
	return out, nil
}

// Sign returns the base64 signature over the already-encoded parameter blob.
func (s *Signer) Sign(orderNumber, merchantParamsB64 string) (string, error) {
	key, err := s.deriveKey(orderNumber)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(merchantParamsB64))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Verify recomputes the signature from the parameter blob's own Ds_Order and
// compares in constant time. The gateway posts URL-safe base64, the merchant
// side produces standard base64, so both are normalized first.
func (s *Signer) Verify(merchantParamsB64, signature string) error {
	params, err := DecodeMerchantParams(merchantParamsB64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if params.Order == "" {
		return fmt.Errorf("%w: missing Ds_Order", ErrInvalidSignature)
	}

	expected, err := s.Sign(params.Order, merchantParamsB64)
	if err != nil {
		return err
	}
	if !hmac.Equal(normalizeSignature(expected), normalizeSignature(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func normalizeSignature(sig string) []byte {
	sig = strings.ReplaceAll(sig, "+", "-")
	sig = strings.ReplaceAll(sig, "/", "_")
	sig = strings.TrimRight(sig, "=")
	return []byte(sig)
}
