package keymat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChunfengMu/ikev1-keymat/crypto"
)

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// Property 6: after destroy, every previously held secret buffer contains
// only zero bytes.
func TestKeyMaterial_Property6_Zeroization(t *testing.T) {
	dh := &fixedDH{group: crypto.MODP1024, myPublic: []byte("local-public-value"), sharedSec: rfc2409GXY()}
	km := Create(RoleInitiator)
	require.NoError(t, km.DeriveIkeKeys(s1Input(dh)))

	skeyidBuf := km.skeyid.Bytes()
	skeyidDBuf := km.skeyidD.Bytes()
	skeyidABuf := km.skeyidA.Bytes()
	cipherKeyBuf := km.cipher.key.Bytes()
	phase1IVBuf := km.ivs.phase1.iv.Bytes()

	km.GetIV(99)
	phase2IVBuf := km.ivs.phase2[0].iv.Bytes()

	km.Destroy()

	assert.True(t, isAllZero(skeyidBuf))
	assert.True(t, isAllZero(skeyidDBuf))
	assert.True(t, isAllZero(skeyidABuf))
	assert.True(t, isAllZero(cipherKeyBuf))
	assert.True(t, isAllZero(phase1IVBuf))
	assert.True(t, isAllZero(phase2IVBuf))
}

func TestKeyMaterial_DestroyTwiceIsSafe(t *testing.T) {
	dh := &fixedDH{group: crypto.MODP1024, myPublic: []byte("local-public-value"), sharedSec: rfc2409GXY()}
	km := Create(RoleInitiator)
	require.NoError(t, km.DeriveIkeKeys(s1Input(dh)))

	km.Destroy()
	assert.NotPanics(t, func() { km.Destroy() })
}

func TestCipherFacade_EncryptDecryptRoundTrip(t *testing.T) {
	dh := &fixedDH{group: crypto.MODP1024, myPublic: []byte("local-public-value"), sharedSec: rfc2409GXY()}
	km := Create(RoleInitiator)
	require.NoError(t, km.DeriveIkeKeys(s1Input(dh)))

	facade := km.Cipher()
	assert.Equal(t, 0, facade.ICVSize())
	assert.Equal(t, 0, facade.IVSize())

	iv := km.GetIV(0)
	plain := []byte("a short IKE payload needing padding")

	ciphertext, icv, err := facade.Encrypt(iv, plain)
	require.NoError(t, err)
	assert.Empty(t, icv)
	assert.Equal(t, 0, len(ciphertext)%facade.BlockSize())

	recovered, err := facade.Decrypt(iv, ciphertext, icv)
	require.NoError(t, err)
	assert.Equal(t, plain, recovered)
}

func TestCipherFacade_DecryptMalformedLengthNeverFails(t *testing.T) {
	dh := &fixedDH{group: crypto.MODP1024, myPublic: []byte("local-public-value"), sharedSec: rfc2409GXY()}
	km := Create(RoleInitiator)
	require.NoError(t, km.DeriveIkeKeys(s1Input(dh)))

	facade := km.Cipher()
	iv := km.GetIV(0)

	// A ciphertext shorter than one block has no aligned prefix to decrypt,
	// but per spec.md §4.3 decrypt always succeeds — there is no ICV to
	// have rejected it.
	plain, err := facade.Decrypt(iv, []byte{0x01, 0x02, 0x03}, nil)
	require.NoError(t, err)
	assert.Empty(t, plain)
}

func TestKeyMaterial_IVChainContractThroughKeyMaterial(t *testing.T) {
	dh := &fixedDH{group: crypto.MODP1024, myPublic: []byte("local-public-value"), sharedSec: rfc2409GXY()}
	km := Create(RoleInitiator)
	require.NoError(t, km.DeriveIkeKeys(s1Input(dh)))

	iv0 := km.GetIV(1)
	block := bytes.Repeat([]byte{0x77}, km.Cipher().BlockSize())
	km.UpdateIV(1, block)
	km.ConfirmIV(1)

	assert.Equal(t, block, km.GetIV(1))
	assert.NotEqual(t, iv0, km.GetIV(1))
}
