package crypto

// Registry is the crypto registry interface spec.md §6 calls a "downward
// interface": something the host environment provides so the keymat engine
// never has to know how a PRF, hasher, cipher or DH group is actually
// computed. DefaultRegistry below is the concrete, process-local
// implementation this module ships so the engine can be built and tested
// end-to-end; a host embedding the engine may supply any other Registry
// (e.g. one backed by a hardware security module) without the keymat
// package changing at all.
type Registry interface {
	CreatePRF(id PRFID) (PRF, bool)
	CreateHasher(id HashID) (Hasher, bool)
	CreateCipher(id CipherID, keySizeBytes int) (BlockCipher, bool)
	CreateDH(id DHGroupID) (DH, bool)
}

type defaultRegistry struct{}

func (defaultRegistry) CreatePRF(id PRFID) (PRF, bool) { return CreatePRF(id) }
func (defaultRegistry) CreateHasher(id HashID) (Hasher, bool) { return CreateHasher(id) }
func (defaultRegistry) CreateCipher(id CipherID, keySizeBytes int) (BlockCipher, bool) {
	return CreateCipher(id, keySizeBytes)
}
func (defaultRegistry) CreateDH(id DHGroupID) (DH, bool) { return CreateDH(id) }

// DefaultRegistry is the stdlib/ecosystem-backed Registry implementation:
// HMAC-based PRFs and hashers, AES/3DES/Camellia/Blowfish CBC ciphers, and
// MODP Diffie-Hellman groups.
var DefaultRegistry Registry = defaultRegistry{}
