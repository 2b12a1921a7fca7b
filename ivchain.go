package keymat

import (
	"encoding/binary"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// MaxIV is the bounded MRU cache capacity for Phase-2 IV slots (spec.md §3,
// invariant 3), matching strongSwan's keymat_v1.c #define MAX_IV 3.
const MaxIV = 3

// ivSlot is spec.md's IVSlot: the current IV for one message ID, plus a
// staged last_block awaiting confirm_iv.
type ivSlot struct {
	mid       uint32
	iv        secret
	lastBlock secret
}

func (s *ivSlot) scrub() {
	s.iv.Scrub()
	s.lastBlock.Scrub()
}

// ivChain owns the Phase-1 slot and the bounded MRU list of Phase-2 slots.
// It is a dedicated field on KeyMaterial rather than a freestanding object,
// matching the flat, single-owner shape of strongSwan's
// private_keymat_v1_t, where lookup_iv/generate_iv are private functions
// operating directly on the keymat's own fields (spec.md §9 "Phase-1 vs
// Phase-2 slots").
type ivChain struct {
	phase1    ivSlot
	phase2    []*ivSlot // head = most recently touched; len <= MaxIV
	blockSize int
	hasher    func(data []byte) []byte // Phase-1 hasher, bound after derivation
}

// lookup returns the slot for mid, creating (and generating its initial IV)
// if absent, and moving it to the head of the MRU list — a direct
// transliteration of keymat_v1.c's lookup_iv.
func (c *ivChain) lookup(mid uint32) *ivSlot {
	if mid == 0 {
		return &c.phase1
	}
	for i, s := range c.phase2 {
		if s.mid == mid {
			c.moveToFront(i)
			return s
		}
	}
	s := &ivSlot{mid: mid}
	c.generate(s)
	c.phase2 = append([]*ivSlot{s}, c.phase2...)
	if len(c.phase2) > MaxIV {
		evicted := c.phase2[len(c.phase2)-1]
		c.phase2 = c.phase2[:len(c.phase2)-1]
		evicted.scrub()
	}
	return s
}

func (c *ivChain) moveToFront(i int) {
	if i == 0 {
		return
	}
	s := c.phase2[i]
	c.phase2 = append(c.phase2[:i], c.phase2[i+1:]...)
	c.phase2 = append([]*ivSlot{s}, c.phase2...)
}

// generate computes the initial or chained IV for a slot, per spec.md §4.2
// "Generation rule":
//   - mid == 0, or the slot already has an IV and a staged last_block:
//     the new IV is the staged last_block (CBC chaining).
//   - otherwise (a newly created Phase-2 slot): the initial IV is
//     H(phase1_iv | mid_be32) truncated to the cipher block size.
func (c *ivChain) generate(s *ivSlot) {
	if s.mid == 0 || (!s.iv.Empty() && !s.lastBlock.Empty()) {
		s.iv.Scrub()
		s.iv = s.lastBlock
		s.lastBlock = secret{}
		return
	}
	var midBE [4]byte
	binary.BigEndian.PutUint32(midBE[:], s.mid)
	data := append(append([]byte(nil), c.phase1.iv.Bytes()...), midBE[:]...)
	iv := c.hasher(data)
	if len(iv) > c.blockSize {
		iv = iv[:c.blockSize]
	}
	s.iv = newSecret(iv)
}

// getIV returns a copy of the slot's current IV, creating the slot if
// necessary (spec.md §4.2 get_iv).
func (c *ivChain) getIV(mid uint32) []byte {
	s := c.lookup(mid)
	out := make([]byte, len(s.iv.Bytes()))
	copy(out, s.iv.Bytes())
	return out
}

// updateIV stages lastBlock on the slot for mid, creating it if absent
// (spec.md §4.2 update_iv). Calling it twice with the same block before a
// confirm is idempotent (property 5): the staged value is simply
// overwritten with an identical one.
func (c *ivChain) updateIV(mid uint32, lastBlock []byte) {
	s := c.lookup(mid)
	s.lastBlock.Scrub()
	cloned := make([]byte, len(lastBlock))
	copy(cloned, lastBlock)
	s.lastBlock = newSecret(cloned)
}

// confirmIV promotes the staged last_block to the slot's current IV
// (spec.md §4.2 confirm_iv).
func (c *ivChain) confirmIV(mid uint32) {
	s := c.lookup(mid)
	c.generate(s)
}

func (c *ivChain) destroy(logger log.Logger) {
	level.Debug(logger).Log("msg", "scrubbing IV chain", "phase2_slots", len(c.phase2))
	c.phase1.scrub()
	for _, s := range c.phase2 {
		s.scrub()
	}
	c.phase2 = nil
}
