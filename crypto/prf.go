package crypto

import (
	"crypto/aes"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/pkg/errors"
)

// PRF is a keyed pseudo-random function, the capability interface behind
// §9's "Polymorphism over crypto primitives" design note. Implementations
// are stateless other than the key set by SetKey.
type PRF interface {
	ID() PRFID
	SetKey(key []byte)
	// Compute returns prf(key, data) using the key installed by SetKey.
	Compute(data []byte) []byte
	// KeySize reports the key length this PRF prefers (its output size for
	// HMAC constructions); BlockSize reports its underlying block size.
	// DeriveIkeKeys rejects a PRF whose BlockSize < KeySize, since SKEYID
	// output expansion is not implemented.
	KeySize() int
	BlockSize() int
}

// CreatePRF instantiates a PRF primitive, or returns (nil, false) if the
// algorithm isn't supported — mirroring the "owned primitive or null handle"
// contract of spec.md §6.
func CreatePRF(id PRFID) (PRF, bool) {
	switch id {
	case PRFHmacMD5:
		return newHMACPRF(id, md5.New, md5.Size), true
	case PRFHmacSHA1:
		return newHMACPRF(id, sha1.New, sha1.Size), true
	case PRFHmacSHA2_256:
		return newHMACPRF(id, sha256.New, sha256.Size), true
	case PRFHmacSHA2_384:
		return newHMACPRF(id, sha512.New384, sha512.Size384), true
	case PRFHmacSHA2_512:
		return newHMACPRF(id, sha512.New, sha512.Size), true
	case PRFAES128XCBC:
		return newXCBCPRF(), true
	default:
		return nil, false
	}
}

// IntegrityToPRF implements the AlgorithmMap row "Integrity ID -> PRF ID"
// from spec.md §6, used when a proposal negotiates an integrity algorithm
// but no explicit PRF.
func IntegrityToPRF(id IntegrityID) (PRFID, bool) {
	switch id {
	case AuthHmacSHA1_96:
		return PRFHmacSHA1, true
	case AuthHmacSHA2_256_128:
		return PRFHmacSHA2_256, true
	case AuthHmacSHA2_384_192:
		return PRFHmacSHA2_384, true
	case AuthHmacSHA2_512_256:
		return PRFHmacSHA2_512, true
	case AuthHmacMD5_96:
		return PRFHmacMD5, true
	case AuthAESXCBC_96:
		return PRFAES128XCBC, true
	default:
		return PRFUndefined, false
	}
}

// IntegrityToHash implements the AlgorithmMap row "Integrity ID -> Hash ID",
// used to select the Phase-1 hasher. AES-XCBC has no hash mapping.
func IntegrityToHash(id IntegrityID) (HashID, bool) {
	switch id {
	case AuthHmacSHA1_96:
		return HashSHA1, true
	case AuthHmacSHA2_256_128:
		return HashSHA256, true
	case AuthHmacSHA2_384_192:
		return HashSHA384, true
	case AuthHmacSHA2_512_256:
		return HashSHA512, true
	case AuthHmacMD5_96:
		return HashMD5, true
	default:
		return HashUndefined, false
	}
}

// AdjustKeyLength applies RFC 3664's fixed-key semantics for AES-XCBC key
// derivation: all other PRFs take the key unchanged.
func AdjustKeyLength(id PRFID, key []byte) []byte {
	if id == PRFAES128XCBC && len(key) > 16 {
		return key[:16]
	}
	return key
}

// hmacPRF implements PRF over crypto/hmac, exactly as the teacher's
// cipher_suites.go macPrf does ("for hmac based prf, preferred key size is
// size of output").
type hmacPRF struct {
	id     PRFID
	newer  func() hash.Hash
	size   int
	key    []byte
	blockB int
}

func newHMACPRF(id PRFID, newer func() hash.Hash, size int) *hmacPRF {
	return &hmacPRF{id: id, newer: newer, size: size, blockB: newer().BlockSize()}
}

func (p *hmacPRF) ID() PRFID          { return p.id }
func (p *hmacPRF) SetKey(key []byte)  { p.key = key }
func (p *hmacPRF) KeySize() int       { return p.size }
func (p *hmacPRF) BlockSize() int     { return p.blockB }
func (p *hmacPRF) Compute(data []byte) []byte {
	mac := hmac.New(p.newer, p.key)
	mac.Write(data)
	return mac.Sum(nil)
}

// xcbcPRF implements PRF-AES128-XCBC per RFC 3664/4434: a CBC-MAC over AES
// with three derived sub-keys (K1 for the MAC itself, K2/K3 folded into the
// final block). There is no ecosystem package for this in the retrieval
// pack, so it is hand-built on top of stdlib crypto/aes — see DESIGN.md.
type xcbcPRF struct {
	key []byte
}

func newXCBCPRF() *xcbcPRF { return &xcbcPRF{} }

func (p *xcbcPRF) ID() PRFID      { return PRFAES128XCBC }
func (p *xcbcPRF) SetKey(key []byte) {
	// RFC 3664 fixed-key semantics: truncate to 16 bytes, as adjustKeylen
	// does in the original strongSwan source.
	if len(key) > 16 {
		key = key[:16]
	}
	if len(key) < 16 {
		padded := make([]byte, 16)
		copy(padded, key)
		key = padded
	}
	p.key = key
}
func (p *xcbcPRF) KeySize() int   { return 16 }
func (p *xcbcPRF) BlockSize() int { return aes.BlockSize }

// xcbcSeed1/2/3 are the constant blocks 0x01..01, 0x02..02 and 0x03..03
// that deriveSubkeys AES-encrypts under the caller's 128-bit key to obtain
// K1/K2/K3, per RFC 3664 §4.
var (
	xcbcSeed1 = [16]byte{0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01}
	xcbcSeed2 = [16]byte{0x02, 0x02, 0x02, 0x02, 0x02, 0x02, 0x02, 0x02, 0x02, 0x02, 0x02, 0x02, 0x02, 0x02, 0x02, 0x02}
	xcbcSeed3 = [16]byte{0x03, 0x03, 0x03, 0x03, 0x03, 0x03, 0x03, 0x03, 0x03, 0x03, 0x03, 0x03, 0x03, 0x03, 0x03, 0x03}
)

func (p *xcbcPRF) deriveSubkeys() (k1, k2, k3 [16]byte, err error) {
	block, err := aes.NewCipher(p.key)
	if err != nil {
		return k1, k2, k3, errors.Wrap(err, "xcbc: deriving sub-keys")
	}
	block.Encrypt(k1[:], xcbcSeed1[:])
	block.Encrypt(k2[:], xcbcSeed2[:])
	block.Encrypt(k3[:], xcbcSeed3[:])
	return k1, k2, k3, nil
}

func (p *xcbcPRF) Compute(data []byte) []byte {
	k1, k2, k3, err := p.deriveSubkeys()
	if err != nil {
		// key was validated in SetKey; a derivation failure here can only
		// mean the key length invariant was violated by a caller bypassing
		// SetKey, which is a programmer error.
		panic(err)
	}
	mBlock, err := aes.NewCipher(k1[:])
	if err != nil {
		panic(err)
	}

	const blockSize = aes.BlockSize
	var e [blockSize]byte // CBC chaining state, starts at zero IV

	full := len(data) / blockSize
	if len(data) > 0 && len(data)%blockSize == 0 {
		full--
	}
	for i := 0; i < full; i++ {
		xorBlock(e[:], data[i*blockSize:(i+1)*blockSize])
		mBlock.Encrypt(e[:], e[:])
	}

	// Final (possibly partial) block, folded with K2 (exact multiple) or K3
	// (padded with 0x80 followed by zeros).
	rem := data[full*blockSize:]
	var last [blockSize]byte
	var pad [blockSize]byte
	if len(rem) == blockSize {
		copy(last[:], rem)
		xorBlock(last[:], k2[:])
	} else {
		copy(pad[:], rem)
		pad[len(rem)] = 0x80
		copy(last[:], pad[:])
		xorBlock(last[:], k3[:])
	}
	xorBlock(e[:], last[:])
	mBlock.Encrypt(e[:], e[:])
	return append([]byte(nil), e[:]...)
}

func xorBlock(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
