package crypto

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACPRFMatchesStdlib(t *testing.T) {
	prf, ok := CreatePRF(PRFHmacSHA1)
	require.True(t, ok)

	key := []byte("a shared secret")
	data := []byte("Ni|Nr")
	prf.SetKey(key)
	got := prf.Compute(data)

	mac := hmac.New(sha1.New, key)
	mac.Write(data)
	want := mac.Sum(nil)

	assert.Equal(t, want, got)
	assert.Equal(t, sha1.Size, prf.KeySize())
}

func TestXCBCPRFKeyTruncation(t *testing.T) {
	prf1, ok := CreatePRF(PRFAES128XCBC)
	require.True(t, ok)
	prf2, ok := CreatePRF(PRFAES128XCBC)
	require.True(t, ok)

	longKey := bytes.Repeat([]byte{0x5A}, 32)
	truncated := longKey[:16]

	prf1.SetKey(longKey)
	prf2.SetKey(truncated)

	data := []byte("some data to authenticate across several blocks of input")
	assert.Equal(t, prf1.Compute(data), prf2.Compute(data), "XCBC must use only the first 16 bytes of a longer key")
	assert.Equal(t, 16, prf1.KeySize())
	assert.Equal(t, 16, prf1.BlockSize())
}

func TestXCBCPRFDeterministic(t *testing.T) {
	prf, ok := CreatePRF(PRFAES128XCBC)
	require.True(t, ok)
	prf.SetKey(bytes.Repeat([]byte{0x01}, 16))

	a := prf.Compute([]byte("message one"))
	b := prf.Compute([]byte("message one"))
	assert.Equal(t, a, b)

	c := prf.Compute([]byte("message two"))
	assert.NotEqual(t, a, c)
}

func TestAdjustKeyLength(t *testing.T) {
	key := bytes.Repeat([]byte{0x09}, 32)

	adjusted := AdjustKeyLength(PRFAES128XCBC, key)
	assert.Len(t, adjusted, 16)
	assert.Equal(t, key[:16], adjusted)

	unchanged := AdjustKeyLength(PRFHmacSHA1, key)
	assert.Equal(t, key, unchanged)
}

func TestIntegrityToPRFAndHash(t *testing.T) {
	prfID, ok := IntegrityToPRF(AuthHmacSHA1_96)
	require.True(t, ok)
	assert.Equal(t, PRFHmacSHA1, prfID)

	hashID, ok := IntegrityToHash(AuthHmacSHA1_96)
	require.True(t, ok)
	assert.Equal(t, HashSHA1, hashID)

	_, ok = IntegrityToHash(AuthAESXCBC_96)
	assert.False(t, ok, "AES-XCBC has no hash mapping")
}
