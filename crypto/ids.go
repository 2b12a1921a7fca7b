// Package crypto is the cryptographic primitive registry consumed by the
// keymat engine: it supplies concrete PRF, hasher, block-cipher and
// Diffie-Hellman implementations behind small capability interfaces, the way
// a host's "crypto provider" would. Nothing outside this package knows how a
// PRF or a cipher is actually computed.
package crypto

import "fmt"

// PRFID identifies a pseudo-random function as negotiated in an IKE
// proposal (RFC 2409 Appendix A / RFC 4868 for the SHA-2 variants).
type PRFID uint16

const (
	PRFUndefined PRFID = iota
	PRFHmacMD5
	PRFHmacSHA1
	PRFHmacSHA2_256
	PRFHmacSHA2_384
	PRFHmacSHA2_512
	PRFAES128XCBC
)

func (p PRFID) String() string {
	switch p {
	case PRFHmacMD5:
		return "PRF_HMAC_MD5"
	case PRFHmacSHA1:
		return "PRF_HMAC_SHA1"
	case PRFHmacSHA2_256:
		return "PRF_HMAC_SHA2_256"
	case PRFHmacSHA2_384:
		return "PRF_HMAC_SHA2_384"
	case PRFHmacSHA2_512:
		return "PRF_HMAC_SHA2_512"
	case PRFAES128XCBC:
		return "PRF_AES128_XCBC"
	default:
		return fmt.Sprintf("PRF_UNDEFINED(%d)", uint16(p))
	}
}

// IntegrityID identifies the negotiated integrity (authentication)
// transform of an IKE proposal.
type IntegrityID uint16

const (
	IntegrityUndefined IntegrityID = iota
	AuthHmacMD5_96
	AuthHmacSHA1_96
	AuthHmacSHA2_256_128
	AuthHmacSHA2_384_192
	AuthHmacSHA2_512_256
	AuthAESXCBC_96
)

func (a IntegrityID) String() string {
	switch a {
	case AuthHmacMD5_96:
		return "AUTH_HMAC_MD5_96"
	case AuthHmacSHA1_96:
		return "AUTH_HMAC_SHA1_96"
	case AuthHmacSHA2_256_128:
		return "AUTH_HMAC_SHA2_256_128"
	case AuthHmacSHA2_384_192:
		return "AUTH_HMAC_SHA2_384_192"
	case AuthHmacSHA2_512_256:
		return "AUTH_HMAC_SHA2_512_256"
	case AuthAESXCBC_96:
		return "AUTH_AES_XCBC_96"
	default:
		return fmt.Sprintf("AUTH_UNDEFINED(%d)", uint16(a))
	}
}

// HashID identifies a hash algorithm used for Phase-1 IV generation.
type HashID uint16

const (
	HashUndefined HashID = iota
	HashMD5
	HashSHA1
	HashSHA256
	HashSHA384
	HashSHA512
)

func (h HashID) String() string {
	switch h {
	case HashMD5:
		return "HASH_MD5"
	case HashSHA1:
		return "HASH_SHA1"
	case HashSHA256:
		return "HASH_SHA256"
	case HashSHA384:
		return "HASH_SHA384"
	case HashSHA512:
		return "HASH_SHA512"
	default:
		return fmt.Sprintf("HASH_UNDEFINED(%d)", uint16(h))
	}
}

// CipherID identifies a Phase-1 encryption transform.
type CipherID uint16

const (
	CipherUndefined CipherID = iota
	EncrAESCBC
	Encr3DESCBC
	EncrCamelliaCBC
	EncrBlowfishCBC
)

func (c CipherID) String() string {
	switch c {
	case EncrAESCBC:
		return "ENCR_AES_CBC"
	case Encr3DESCBC:
		return "ENCR_3DES_CBC"
	case EncrCamelliaCBC:
		return "ENCR_CAMELLIA_CBC"
	case EncrBlowfishCBC:
		return "ENCR_BLOWFISH_CBC"
	default:
		return fmt.Sprintf("ENCR_UNDEFINED(%d)", uint16(c))
	}
}

// DHGroupID identifies a Diffie-Hellman group (RFC 2409 Appendix A / RFC 3526).
type DHGroupID uint16

const (
	DHGroupUndefined DHGroupID = iota
	MODP768
	MODP1024
	MODP1536
	MODP2048
)

func (d DHGroupID) String() string {
	switch d {
	case MODP768:
		return "MODP_768"
	case MODP1024:
		return "MODP_1024"
	case MODP1536:
		return "MODP_1536"
	case MODP2048:
		return "MODP_2048"
	default:
		return fmt.Sprintf("MODP_UNDEFINED(%d)", uint16(d))
	}
}
