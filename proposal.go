package keymat

import "github.com/ChunfengMu/ikev1-keymat/crypto"

// Proposal exposes the selected algorithms for a negotiated SA, per
// spec.md §6's downward interface: "get_algorithm(transform_type) ->
// (alg_id, key_size_bits) | absent". The IKE SA payload negotiation that
// produces a Proposal is out of scope (spec.md §1); this engine only
// consumes the result, modeled on the teacher's protocol.Transforms map
// (protocol/transforms.go) narrowed to the four transform kinds the keymat
// core cares about.
type Proposal interface {
	// Encryption returns the negotiated cipher and its key size in bytes.
	Encryption() (id crypto.CipherID, keySizeBytes int, ok bool)
	// Integrity returns the negotiated integrity (authentication) algorithm.
	Integrity() (id crypto.IntegrityID, ok bool)
	// PRF returns the explicitly negotiated PRF, if the proposal carries
	// one; absent when the host relies on AlgorithmMap's integrity->PRF
	// fallback (spec.md §4.1 step 1).
	PRF() (id crypto.PRFID, ok bool)
	// DHGroup returns the negotiated Diffie-Hellman group.
	DHGroup() (id crypto.DHGroupID, ok bool)
}

// StaticProposal is a Proposal built directly from a fixed algorithm set.
type StaticProposal struct {
	CipherID      crypto.CipherID
	CipherKeyBits int
	IntegrityID   crypto.IntegrityID
	PRFID         crypto.PRFID // zero value (PRFUndefined) means "not set"
	DHGroupID     crypto.DHGroupID
}

var _ Proposal = StaticProposal{}

func (p StaticProposal) Encryption() (crypto.CipherID, int, bool) {
	if p.CipherID == crypto.CipherUndefined {
		return 0, 0, false
	}
	return p.CipherID, p.CipherKeyBits / 8, true
}

func (p StaticProposal) Integrity() (crypto.IntegrityID, bool) {
	if p.IntegrityID == crypto.IntegrityUndefined {
		return 0, false
	}
	return p.IntegrityID, true
}

func (p StaticProposal) PRF() (crypto.PRFID, bool) {
	if p.PRFID == crypto.PRFUndefined {
		return 0, false
	}
	return p.PRFID, true
}

func (p StaticProposal) DHGroup() (crypto.DHGroupID, bool) {
	if p.DHGroupID == crypto.DHGroupUndefined {
		return 0, false
	}
	return p.DHGroupID, true
}
