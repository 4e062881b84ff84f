package payment

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 24 ASCII bytes, the 3DES key length the gateway hands out
var testSecretKey = base64.StdEncoding.EncodeToString([]byte("123456789012345678901234"))

func encodeParams(t *testing.T, params map[string]string) string {
	t.Helper()
	raw, err := json.Marshal(params)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

func TestNewSigner_KeyValidation(t *testing.T) {
	_, err := NewSigner("not base64!!!")
	assert.Error(t, err)

	short := base64.StdEncoding.EncodeToString([]byte("too short"))
	_, err = NewSigner(short)
	assert.Error(t, err)

	_, err = NewSigner(testSecretKey)
	assert.NoError(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	signer, err := NewSigner(testSecretKey)
	require.NoError(t, err)

	paramsB64 := encodeParams(t, map[string]string{
		"Ds_Order":    "260828120000",
		"Ds_Amount":   "28500",
		"Ds_Response": "0000",
	})

	sig, err := signer.Sign("260828120000", paramsB64)
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	assert.NoError(t, signer.Verify(paramsB64, sig))
}

func TestVerify_AcceptsURLSafeSignature(t *testing.T) {
	signer, err := NewSigner(testSecretKey)
	require.NoError(t, err)

	paramsB64 := encodeParams(t, map[string]string{"Ds_Order": "260828120000"})
	sig, err := signer.Sign("260828120000", paramsB64)
	require.NoError(t, err)

	urlSafe := strings.TrimRight(strings.ReplaceAll(strings.ReplaceAll(sig, "+", "-"), "/", "_"), "=")
	assert.NoError(t, signer.Verify(paramsB64, urlSafe))
}

func TestVerify_RejectsTamperedPayload(t *testing.T) {
	signer, err := NewSigner(testSecretKey)
	require.NoError(t, err)

	paramsB64 := encodeParams(t, map[string]string{
		"Ds_Order":  "260828120000",
		"Ds_Amount": "28500",
	})
	sig, err := signer.Sign("260828120000", paramsB64)
	require.NoError(t, err)

	tampered := encodeParams(t, map[string]string{
		"Ds_Order":  "260828120000",
		"Ds_Amount": "1",
	})
	assert.ErrorIs(t, signer.Verify(tampered, sig), ErrInvalidSignature)
}

func TestVerify_RejectsFlippedSignature(t *testing.T) {
	signer, err := NewSigner(testSecretKey)
	require.NoError(t, err)

	paramsB64 := encodeParams(t, map[string]string{"Ds_Order": "260828120000"})
	sig, err := signer.Sign("260828120000", paramsB64)
	require.NoError(t, err)

	flipped := []byte(sig)
	if flipped[0] == 'A' {
		flipped[0] = 'B'
	} else {
		flipped[0] = 'A'
	}
	assert.ErrorIs(t, signer.Verify(paramsB64, string(flipped)), ErrInvalidSignature)
}

func TestVerify_RejectsWrongKey(t *testing.T) {
	signer, err := NewSigner(testSecretKey)
	require.NoError(t, err)
	other, err := NewSigner(base64.StdEncoding.EncodeToString([]byte("432109876543210987654321")))
	require.NoError(t, err)

	paramsB64 := encodeParams(t, map[string]string{"Ds_Order": "260828120000"})
	sig, err := other.Sign("260828120000", paramsB64)
	require.NoError(t, err)

	assert.ErrorIs(t, signer.Verify(paramsB64, sig), ErrInvalidSignature)
}

func TestVerify_RejectsMissingOrder(t *testing.T) {
	signer, err := NewSigner(testSecretKey)
	require.NoError(t, err)

	paramsB64 := encodeParams(t, map[string]string{"Ds_Amount": "28500"})
	assert.ErrorIs(t, signer.Verify(paramsB64, "whatever"), ErrInvalidSignature)
}

func TestDeriveKey_ZeroPadsToBlockSize(t *testing.T) {
	signer, err := NewSigner(testSecretKey)
	require.NoError(t, err)

	// 12-char order pads to 16, 8-char order needs no padding
	k12, err := signer.deriveKey("260828120000")
	require.NoError(t, err)
	assert.Len(t, k12, 16)

	k8, err := signer.deriveKey("26082812")
	require.NoError(t, err)
	assert.Len(t, k8, 8)
}
