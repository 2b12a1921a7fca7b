package keymat

import (
	"encoding/binary"

	"github.com/go-kit/kit/log/level"

	"github.com/ChunfengMu/ikev1-keymat/crypto"
)

// AuthClass identifies the authentication method an IKE SA negotiated.
// Only PSK is implemented; every other value fails with
// ErrAuthClassUnsupported, per spec.md §4.1 step 4 and the Open Questions
// in §9 ("PUBKEY authentication paths fall through to failure ... treat as
// unsupported").
type AuthClass int

const (
	AuthClassUndefined AuthClass = iota
	AuthClassPSK
	AuthClassPubKey
)

// DerivationInput bundles derive_ike_keys' parameters (spec.md §4.1), mirroring
// the teacher's style of passing a single params struct into IsaCreate
// rather than a long positional argument list.
type DerivationInput struct {
	Proposal  Proposal
	DH        crypto.DH
	PeerDHPub []byte
	NonceI    []byte
	NonceR    []byte
	SpiI      uint64
	SpiR      uint64
	AuthClass AuthClass
	PSK       []byte
}

// DeriveIkeKeys runs the RFC 2409 §5 derivation chain once, populating km's
// secret fields and cipher facade. A second call on an already-derived
// KeyMaterial fails with ErrAlreadyDerived (invariant 6).
func (km *KeyMaterial) DeriveIkeKeys(in DerivationInput) error {
	if km.derived {
		return errF(ErrAlreadyDerived, "derive_ike_keys already ran for this KeyMaterial")
	}

	// Step 1: select PRF.
	prfID, ok := in.Proposal.PRF()
	if !ok {
		integrityID, hasIntegrity := in.Proposal.Integrity()
		if !hasIntegrity {
			return errF(ErrNoPrfSelected, "proposal carries neither a PRF nor an integrity algorithm")
		}
		prfID, ok = crypto.IntegrityToPRF(integrityID)
		if !ok {
			return errF(ErrNoPrfSelected, "no PRF mapping for integrity algorithm %s", integrityID)
		}
	}
	prf, ok := km.registry.CreatePRF(prfID)
	if !ok {
		return errF(ErrPrfUnavailable, "crypto registry cannot instantiate %s", prfID)
	}

	// Step 2: reject PRFs that would need SKEYID-level output expansion.
	if prf.BlockSize() < prf.KeySize() {
		return errF(ErrPrfExpansionRequired, "%s block size %d < key size %d", prfID, prf.BlockSize(), prf.KeySize())
	}

	// Step 3: obtain g^xy.
	gxy, err := in.DH.SharedSecret(in.PeerDHPub)
	if err != nil {
		return errF(ErrDhFailed, "%v", err)
	}
	gxySecret := newSecret(gxy)
	defer gxySecret.Scrub()

	// Step 4: compute SKEYID per auth class. The adjusted PSK is an owned,
	// zeroizing secret copy (SPEC_FULL.md's "PSK copy" instance of the
	// secret-memory discipline) rather than an alias into the caller's
	// in.PSK, and is scrubbed on every return path once SKEYID is derived.
	var pskSecret secret
	switch in.AuthClass {
	case AuthClassPSK:
		if len(in.PSK) == 0 {
			return errF(ErrMissingPsk, "PSK auth class requires a pre-shared key")
		}
		adjusted := crypto.AdjustKeyLength(prfID, in.PSK) // step 5
		pskSecret = newSecret(append([]byte(nil), adjusted...))
	default:
		return errF(ErrAuthClassUnsupported, "auth class %d is not implemented", in.AuthClass)
	}
	defer pskSecret.Scrub()

	prf.SetKey(pskSecret.Bytes())
	skeyid := newSecret(append([]byte(nil), prf.Compute(concat(in.NonceI, in.NonceR))...))

	// Step 6: derive the chain, keyed by SKEYID.
	ckyI := be64(in.SpiI)
	ckyR := be64(in.SpiR)

	prf.SetKey(skeyid.Bytes())
	skeyidD := newSecret(append([]byte(nil), prf.Compute(concat(gxySecret.Bytes(), ckyI[:], ckyR[:], []byte{0x00}))...))

	prf.SetKey(skeyid.Bytes())
	skeyidA := newSecret(append([]byte(nil), prf.Compute(concat(skeyidD.Bytes(), gxySecret.Bytes(), ckyI[:], ckyR[:], []byte{0x01}))...))

	prf.SetKey(skeyid.Bytes())
	skeyidE := newSecret(append([]byte(nil), prf.Compute(concat(skeyidA.Bytes(), gxySecret.Bytes(), ckyI[:], ckyR[:], []byte{0x02}))...))

	cipherID, keySizeBytes, ok := in.Proposal.Encryption()
	if !ok {
		skeyid.Scrub()
		skeyidD.Scrub()
		skeyidA.Scrub()
		skeyidE.Scrub()
		return errF(ErrNoEncryptionSelected, "proposal carries no encryption transform")
	}

	// Step 7: expand SKEYID_e into Ka via Appendix B.
	ka := expandAppendixB(prf, skeyidE, keySizeBytes)
	skeyidE.Scrub()

	// Step 8: instantiate the cipher and wrap it in the facade.
	blockCipher, ok := km.registry.CreateCipher(cipherID, keySizeBytes)
	if !ok {
		ka.Scrub()
		skeyid.Scrub()
		skeyidD.Scrub()
		skeyidA.Scrub()
		return errF(ErrCipherUnavailable, "crypto registry cannot instantiate %s", cipherID)
	}

	// Step 9: select the Phase-1 hasher.
	integrityID, ok := in.Proposal.Integrity()
	if !ok {
		ka.Scrub()
		skeyid.Scrub()
		skeyidD.Scrub()
		skeyidA.Scrub()
		return errF(ErrNoHashSelected, "proposal carries no integrity algorithm")
	}
	hashID, ok := crypto.IntegrityToHash(integrityID)
	if !ok {
		ka.Scrub()
		skeyid.Scrub()
		skeyidD.Scrub()
		skeyidA.Scrub()
		return errF(ErrNoHashSelected, "no hash mapping for integrity algorithm %s", integrityID)
	}
	hasher, ok := km.registry.CreateHasher(hashID)
	if !ok {
		ka.Scrub()
		skeyid.Scrub()
		skeyidD.Scrub()
		skeyidA.Scrub()
		return errF(ErrHashUnavailable, "crypto registry cannot instantiate %s", hashID)
	}

	// Step 10: compute the initial Phase-1 IV.
	localPub := in.DH.MyPublicValue()
	var gxi, gxr []byte
	if km.role == RoleInitiator {
		gxi, gxr = localPub, in.PeerDHPub
	} else {
		gxi, gxr = in.PeerDHPub, localPub
	}
	blockSize := blockCipher.BlockSize()
	phase1IV := hasher.Sum(concat(gxi, gxr))
	if len(phase1IV) > blockSize {
		phase1IV = phase1IV[:blockSize]
	}

	// Commit: all steps succeeded, populate km.
	km.prfID = prfID
	km.prf = prf
	km.hasher = hasher
	km.cipher = newCBCCipherFacade(blockCipher, ka)
	km.skeyid = skeyid
	km.skeyidD = skeyidD
	km.skeyidA = skeyidA
	km.ivs.blockSize = blockSize
	km.ivs.hasher = hasher.Sum
	km.ivs.phase1.mid = 0
	km.ivs.phase1.iv = newSecret(append([]byte(nil), phase1IV...))
	km.derived = true

	level.Debug(km.logger).Log("msg", "derived IKEv1 Phase-1 key material", "prf", prfID, "cipher", cipherID, "hash", hashID)
	return nil
}

// expandAppendixB implements RFC 2409 Appendix B: if SKEYID_e is already at
// least keySizeBytes long, truncate it; otherwise repeatedly apply prf
// keyed by SKEYID_e to build K1 | K2 | ... until long enough.
func expandAppendixB(prf crypto.PRF, skeyidE secret, keySizeBytes int) secret {
	e := skeyidE.Bytes()
	if len(e) >= keySizeBytes {
		ka := make([]byte, keySizeBytes)
		copy(ka, e)
		return newSecret(ka)
	}

	prf.SetKey(e)
	expanded := make([]byte, 0, keySizeBytes+prf.KeySize())
	block := prf.Compute([]byte{0x00})
	expanded = append(expanded, block...)
	for len(expanded) < keySizeBytes {
		block = prf.Compute(block)
		expanded = append(expanded, block...)
	}
	return newSecret(expanded[:keySizeBytes])
}

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func be64(v uint64) [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b
}
