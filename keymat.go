package keymat

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/ChunfengMu/ikev1-keymat/crypto"
)

// Role identifies which side of the exchange a KeyMaterial was created for;
// it governs which DH public value is g^xi vs. g^xr in the initial Phase-1
// IV computation (spec.md §4.1 step 10).
type Role int

const (
	RoleInitiator Role = iota
	RoleResponder
)

// KeyMaterial is the single stateful object spec.md §2 describes: one
// instance per IKE SA, owning the SKEYID family, the negotiated PRF/hasher/
// cipher primitives, and the chained IV state. Its shape mirrors the
// teacher's Tkm struct (tkm.go) — a flat receiver-method object holding
// every piece of session key state — generalized from IKEv2's key schedule
// to IKEv1 Phase-1 derivation.
type KeyMaterial struct {
	role Role

	registry crypto.Registry
	logger   log.Logger

	derived bool

	prfID  crypto.PRFID
	prf    crypto.PRF
	hasher crypto.Hasher
	cipher *cbcCipherFacade

	skeyid  secret
	skeyidD secret
	skeyidA secret

	ivs ivChain
}

// Option configures a KeyMaterial at construction time, following the
// functional-options idiom the teacher uses for its Conn/Session
// constructors (conn.go, session.go).
type Option func(*KeyMaterial)

// WithRegistry overrides the crypto registry; the default is
// crypto.DefaultRegistry.
func WithRegistry(r crypto.Registry) Option {
	return func(km *KeyMaterial) { km.registry = r }
}

// WithLogger overrides the go-kit logger; the default discards all output.
func WithLogger(l log.Logger) Option {
	return func(km *KeyMaterial) { km.logger = l }
}

// Create constructs an empty KeyMaterial for the given role. No secret
// state exists until DeriveIkeKeys succeeds (spec.md §3 "Lifecycle").
func Create(role Role, opts ...Option) *KeyMaterial {
	km := &KeyMaterial{
		role:     role,
		registry: crypto.DefaultRegistry,
		logger:   log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(km)
	}
	return km
}

// Role reports the role this KeyMaterial was created with.
func (km *KeyMaterial) Role() Role { return km.role }

// Derived reports whether DeriveIkeKeys has already succeeded.
func (km *KeyMaterial) Derived() bool { return km.derived }

// Cipher returns the negotiated CipherFacade. Valid only after derivation.
func (km *KeyMaterial) Cipher() CipherFacade { return km.cipher }

// CreateDH is a pass-through to the crypto registry (spec.md §6 upward
// interface "create_dh(group) -> DH"), convenient for hosts that want the
// KeyMaterial to be the single entry point for primitive construction.
func (km *KeyMaterial) CreateDH(group crypto.DHGroupID) (crypto.DH, bool) {
	return km.registry.CreateDH(group)
}

// GetIV returns a copy of the current IV for mid (spec.md §4.2 get_iv).
func (km *KeyMaterial) GetIV(mid uint32) []byte {
	return km.ivs.getIV(mid)
}

// UpdateIV stages lastBlock as the pending IV for mid (spec.md §4.2
// update_iv).
func (km *KeyMaterial) UpdateIV(mid uint32, lastBlock []byte) {
	km.ivs.updateIV(mid, lastBlock)
}

// ConfirmIV promotes the pending IV for mid to current (spec.md §4.2
// confirm_iv).
func (km *KeyMaterial) ConfirmIV(mid uint32) {
	km.ivs.confirmIV(mid)
}

// Destroy scrubs every secret buffer this KeyMaterial owns: the SKEYID
// family, the cipher's key, and every IV slot (spec.md §3 invariant 5,
// "Lifecycle"). It is safe to call more than once.
func (km *KeyMaterial) Destroy() {
	level.Debug(km.logger).Log("msg", "destroying key material", "role", km.role)
	km.skeyid.Scrub()
	km.skeyidD.Scrub()
	km.skeyidA.Scrub()
	if km.cipher != nil {
		km.cipher.destroy()
	}
	km.ivs.destroy(km.logger)
}
