package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESCBCRoundTrip(t *testing.T) {
	c, ok := CreateCipher(EncrAESCBC, 16)
	require.True(t, ok)

	key := bytes.Repeat([]byte{0x11}, 16)
	iv := bytes.Repeat([]byte{0x22}, c.BlockSize())
	plain := bytes.Repeat([]byte{0x00, 0x01, 0x02, 0x03}, 4) // 16 bytes, one block

	enc, err := c.NewCBCEncrypter(key, iv)
	require.NoError(t, err)
	cipherText := make([]byte, len(plain))
	enc.CryptBlocks(cipherText, plain)

	dec, err := c.NewCBCDecrypter(key, iv)
	require.NoError(t, err)
	recovered := make([]byte, len(cipherText))
	dec.CryptBlocks(recovered, cipherText)

	assert.Equal(t, plain, recovered)
	assert.NotEqual(t, plain, cipherText)
}

func Test3DESKeySize(t *testing.T) {
	c, ok := CreateCipher(Encr3DESCBC, 24)
	require.True(t, ok)
	assert.Equal(t, 24, c.KeySize())
	assert.Equal(t, 8, c.BlockSize())
}

func TestCamelliaAndBlowfishRegistered(t *testing.T) {
	_, ok := CreateCipher(EncrCamelliaCBC, 16)
	assert.True(t, ok)
	_, ok = CreateCipher(EncrBlowfishCBC, 16)
	assert.True(t, ok)
}

func TestUnsupportedCipher(t *testing.T) {
	_, ok := CreateCipher(CipherUndefined, 16)
	assert.False(t, ok)
}
