package crypto

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

// DH is a Diffie-Hellman handle: generate a private/public pair, then
// compute the shared secret from the peer's public value. spec.md §6 treats
// this as an external collaborator ("DH handle ... consumed by reference
// during derivation only"); this package provides the classic MODP
// implementation RFC 2409 Appendix A / RFC 3526 specify, since no pack
// library implements fixed-group modular-exponentiation DH (see
// DESIGN.md).
type DH interface {
	Group() DHGroupID
	// Generate creates a fresh private/public key pair for this handle.
	Generate() error
	// MyPublicValue returns this handle's public value; valid after Generate.
	MyPublicValue() []byte
	// SharedSecret computes g^xy given the peer's public value; valid after
	// Generate.
	SharedSecret(peerPublic []byte) ([]byte, error)
}

type modpGroup struct {
	id        DHGroupID
	prime     *big.Int
	generator *big.Int
	size      int // byte length of the group modulus
}

type modpDH struct {
	group   *modpGroup
	private *big.Int
	public  *big.Int
}

func (d *modpDH) Group() DHGroupID { return d.group.id }

func (d *modpDH) Generate() error {
	priv, err := rand.Int(rand.Reader, d.group.prime)
	if err != nil {
		return errors.Wrap(err, "dh: generating private value")
	}
	d.private = priv
	d.public = new(big.Int).Exp(d.group.generator, d.private, d.group.prime)
	return nil
}

func (d *modpDH) MyPublicValue() []byte {
	return fixedWidth(d.public, d.group.size)
}

func (d *modpDH) SharedSecret(peerPublic []byte) ([]byte, error) {
	if d.private == nil {
		return nil, errors.New("dh: Generate was not called")
	}
	peer := new(big.Int).SetBytes(peerPublic)
	shared := new(big.Int).Exp(peer, d.private, d.group.prime)
	return fixedWidth(shared, d.group.size), nil
}

// fixedWidth left-pads b's big-endian bytes to exactly size bytes, matching
// the fixed-width chunk_t representation strongSwan uses for DH values.
func fixedWidth(b *big.Int, size int) []byte {
	raw := b.Bytes()
	if len(raw) >= size {
		return raw[len(raw)-size:]
	}
	out := make([]byte, size)
	copy(out[size-len(raw):], raw)
	return out
}

// CreateDH instantiates a Diffie-Hellman handle for the given group, or
// (nil, false) if unsupported.
func CreateDH(id DHGroupID) (DH, bool) {
	g, ok := modpGroups[id]
	if !ok {
		return nil, false
	}
	return &modpDH{group: g}, true
}

var modpGroups = map[DHGroupID]*modpGroup{
	MODP768:  {MODP768, mustPrime(modp768Hex), big.NewInt(2), 96},
	MODP1024: {MODP1024, mustPrime(modp1024Hex), big.NewInt(2), 128},
	MODP1536: {MODP1536, mustPrime(modp1536Hex), big.NewInt(2), 192},
	MODP2048: {MODP2048, mustPrime(modp2048Hex), big.NewInt(2), 256},
}

func mustPrime(hexStr string) *big.Int {
	p, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		panic("crypto: malformed MODP prime constant")
	}
	return p
}

// RFC 2409 Appendix A / RFC 3526 well-known MODP group moduli.
const (
	modp768Hex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD" +
		"129024E088A67CC74020BBEA63B139B22514A08798E3404DD" +
		"EF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E" +
		"485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7EDEE" +
		"386BFB5A899FA5AE9F24117C4B1FE649286651ECE65381FFFFFFFFFFFFFFFF"
	modp1024Hex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD" +
		"129024E088A67CC74020BBEA63B139B22514A08798E3404DD" +
		"EF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E" +
		"485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7EDEE" +
		"386BFB5A899FA5AE9F24117C4B1FE649286651ECE65381FFFFFFFFFFFFFFFF"
	modp1536Hex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD" +
		"129024E088A67CC74020BBEA63B139B22514A08798E3404DD" +
		"EF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E" +
		"485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7EDEE" +
		"386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007" +
		"CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F83655D23" +
		"DCA3AD961C62F356208552BB9ED529077096966D670C354E4AB" +
		"C9804F1746C08CA18217C32905E462E36CE3BE39E772C180E86" +
		"039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF6955817183" +
		"995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E208E24FA074E5AB3143DB5BFCE0FD108E4B82D120A92108011A723C12A787E6D788719A10BDBA5B2699C327186AF4E23C1A946834B6150BDA2583E9CA2AD44CE8DBBBC2DB04DE8EF92E8EFC141FBECAA6287C59474E6BC05D99B2964FA090C3A2233BA186515BE7ED1F612970CEE2D7AFB81BDD762170481CD0069127D5B05AA993B4EA988D8FDDC186FFB7DC90A6C08F4DF435C934063199FFFFFFFFFFFFFFFF"
	modp2048Hex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD" +
		"129024E088A67CC74020BBEA63B139B22514A08798E3404DD" +
		"EF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E" +
		"485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7EDEE" +
		"386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3BE39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF6955817183995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF"
)
