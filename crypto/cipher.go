package crypto

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/des"

	"github.com/dgryski/go-camellia"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blowfish"
)

// BlockCipher is the unauthenticated block-cipher capability the
// CipherFacade wraps (spec.md §4.3). It exposes raw CBC encrypt/decrypt over
// whole blocks; padding and IV management are the facade's job, not the
// cipher's.
type BlockCipher interface {
	ID() CipherID
	BlockSize() int
	KeySize() int
	// NewCBCEncrypter/NewCBCDecrypter bind key material; key must already be
	// exactly KeySize() bytes.
	NewCBCEncrypter(key, iv []byte) (stdcipher.BlockMode, error)
	NewCBCDecrypter(key, iv []byte) (stdcipher.BlockMode, error)
}

type blockCtor func(key []byte) (stdcipher.Block, error)

type stdBlockCipher struct {
	id        CipherID
	blockSize int
	keySize   int
	newBlock  blockCtor
}

func (c *stdBlockCipher) ID() CipherID  { return c.id }
func (c *stdBlockCipher) BlockSize() int { return c.blockSize }
func (c *stdBlockCipher) KeySize() int   { return c.keySize }

func (c *stdBlockCipher) NewCBCEncrypter(key, iv []byte) (stdcipher.BlockMode, error) {
	block, err := c.newBlock(key)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: building cipher.Block", c.id)
	}
	return stdcipher.NewCBCEncrypter(block, iv), nil
}

func (c *stdBlockCipher) NewCBCDecrypter(key, iv []byte) (stdcipher.BlockMode, error) {
	block, err := c.newBlock(key)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: building cipher.Block", c.id)
	}
	return stdcipher.NewCBCDecrypter(block, iv), nil
}

// CreateCipher instantiates a block cipher for the given transform and key
// size (in bytes), or (nil, false) if unsupported — the registry's "owned
// primitive or null handle" contract.
func CreateCipher(id CipherID, keySizeBytes int) (BlockCipher, bool) {
	switch id {
	case EncrAESCBC:
		return &stdBlockCipher{id, aes.BlockSize, keySizeBytes, aes.NewCipher}, true
	case Encr3DESCBC:
		return &stdBlockCipher{id, des.BlockSize, 24, func(key []byte) (stdcipher.Block, error) {
			return des.NewTripleDESCipher(key)
		}}, true
	case EncrCamelliaCBC:
		return &stdBlockCipher{id, camellia.BlockSize, keySizeBytes, func(key []byte) (stdcipher.Block, error) {
			return camellia.New(key)
		}}, true
	case EncrBlowfishCBC:
		return &stdBlockCipher{id, blowfish.BlockSize, keySizeBytes, func(key []byte) (stdcipher.Block, error) {
			return blowfish.NewCipher(key)
		}}, true
	default:
		return nil, false
	}
}
