package keymat

import (
	"github.com/pkg/errors"

	"github.com/ChunfengMu/ikev1-keymat/crypto"
)

// CipherFacade presents the negotiated Phase-1 cipher the way spec.md §4.3
// requires: an AEAD-shaped surface (encrypt/decrypt, block_size, icv_size,
// iv_size, key_size) even though IKEv1 Phase-1 encryption carries no
// integrity check of its own. It is modeled directly on the teacher's
// crypto/cipher.go simpleCipher, which wraps a plain CBC cipher behind the
// same Cipher interface the IKEv2 side uses for its genuinely-AEAD
// transforms — here icv_size and iv_size are always reported as zero,
// documented at the type rather than re-derived at each call site.
type CipherFacade interface {
	BlockSize() int
	// ICVSize is always 0: Phase-1 encryption carries no integrity check
	// (spec.md §4.3).
	ICVSize() int
	// IVSize is always 0: the facade takes an explicit IV per call instead
	// of owning one, since IVChain already manages IV lifetime.
	IVSize() int
	KeySize() int

	// Encrypt pads plaintext with PKCS#7-style block padding and returns the
	// ciphertext; no ICV is appended (icv is always the empty slice, to
	// satisfy the AEAD-shaped contract without implying an actual check).
	Encrypt(iv, plaintext []byte) (ciphertext, icv []byte, err error)
	// Decrypt always succeeds: there is nothing to authenticate (spec.md
	// §4.3). A ciphertext whose length isn't a whole number of blocks is
	// decrypted on its block-aligned prefix rather than rejected — it is
	// never a reported error by itself.
	Decrypt(iv, ciphertext, icv []byte) (plaintext []byte, err error)
}

type cbcCipherFacade struct {
	cipher crypto.BlockCipher
	key    secret
}

func newCBCCipherFacade(cipher crypto.BlockCipher, key secret) *cbcCipherFacade {
	return &cbcCipherFacade{cipher: cipher, key: key}
}

func (f *cbcCipherFacade) BlockSize() int { return f.cipher.BlockSize() }
func (f *cbcCipherFacade) ICVSize() int   { return 0 }
func (f *cbcCipherFacade) IVSize() int    { return 0 }
func (f *cbcCipherFacade) KeySize() int   { return f.cipher.KeySize() }

func (f *cbcCipherFacade) Encrypt(iv, plaintext []byte) ([]byte, []byte, error) {
	bs := f.cipher.BlockSize()
	padded := pkcs7Pad(plaintext, bs)
	enc, err := f.cipher.NewCBCEncrypter(f.key.Bytes(), iv)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cipher facade: encrypt")
	}
	out := make([]byte, len(padded))
	enc.CryptBlocks(out, padded)
	return out, nil, nil
}

func (f *cbcCipherFacade) Decrypt(iv, ciphertext, _ []byte) ([]byte, error) {
	bs := f.cipher.BlockSize()
	aligned := ciphertext[:len(ciphertext)-len(ciphertext)%bs]
	if len(aligned) == 0 {
		return nil, nil
	}
	dec, err := f.cipher.NewCBCDecrypter(f.key.Bytes(), iv)
	if err != nil {
		return nil, errors.Wrap(err, "cipher facade: decrypt")
	}
	out := make([]byte, len(aligned))
	dec.CryptBlocks(out, aligned)
	return pkcs7Unpad(out, bs), nil
}

func (f *cbcCipherFacade) destroy() {
	f.key.Scrub()
}

// pkcs7Pad appends standard PKCS#7 padding so plaintext becomes a multiple
// of blockSize, always adding at least one padding block when already
// aligned (matching the teacher's cipher padding convention).
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// pkcs7Unpad strips PKCS#7 padding. Per the facade's no-integrity-check
// contract, a malformed pad value is tolerated by returning the buffer
// unstripped rather than raising an error — there is no ICV to have
// rejected the ciphertext earlier, so silently returning something is
// preferable to guessing at a "correct" length.
func pkcs7Unpad(data []byte, blockSize int) []byte {
	if len(data) == 0 {
		return data
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return data
	}
	return data[:len(data)-padLen]
}
