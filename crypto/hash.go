package crypto

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// Hasher is the unkeyed hash capability used for Phase-1 and Phase-2 IV
// generation (spec.md §4.1 step 9, §4.2 generation rule).
type Hasher interface {
	ID() HashID
	Sum(data []byte) []byte
	Size() int
}

type stdHasher struct {
	id    HashID
	newer func() hash.Hash
	size  int
}

func (h *stdHasher) ID() HashID { return h.id }
func (h *stdHasher) Size() int  { return h.size }
func (h *stdHasher) Sum(data []byte) []byte {
	hh := h.newer()
	hh.Write(data)
	return hh.Sum(nil)
}

// CreateHasher instantiates a hash primitive, or (nil, false) if
// unsupported.
func CreateHasher(id HashID) (Hasher, bool) {
	switch id {
	case HashMD5:
		return &stdHasher{id, md5.New, md5.Size}, true
	case HashSHA1:
		return &stdHasher{id, sha1.New, sha1.Size}, true
	case HashSHA256:
		return &stdHasher{id, sha256.New, sha256.Size}, true
	case HashSHA384:
		return &stdHasher{id, sha512.New384, sha512.Size384}, true
	case HashSHA512:
		return &stdHasher{id, sha512.New, sha512.Size}, true
	default:
		return nil, false
	}
}
