package keymat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestIVChain builds an ivChain with a fixed block size and a
// deterministic stand-in hasher, without going through full derivation —
// the IV chain's contract (spec.md §4.2) is independent of how phase1_iv
// was originally computed.
func newTestIVChain() *ivChain {
	c := &ivChain{blockSize: 8}
	c.hasher = func(data []byte) []byte {
		sum := make([]byte, 8)
		for i, b := range data {
			sum[i%8] ^= b
		}
		return sum
	}
	c.phase1.mid = 0
	c.phase1.iv = newSecret(bytes.Repeat([]byte{0x42}, 8))
	return c
}

// Property 1: IV length always equals the block size.
func TestIVChain_Property1_IVLength(t *testing.T) {
	c := newTestIVChain()
	for _, mid := range []uint32{0, 1, 2, 3} {
		assert.Len(t, c.getIV(mid), 8)
	}
}

// Property 2: get_iv(0) always serves the Phase-1 slot, unaffected by
// Phase-2 operations.
func TestIVChain_Property2_Phase1Isolation(t *testing.T) {
	c := newTestIVChain()
	before := c.getIV(0)

	c.updateIV(7, bytes.Repeat([]byte{0x99}, 8))
	c.confirmIV(7)
	c.getIV(42)

	after := c.getIV(0)
	assert.Equal(t, before, after)
}

// Property 3: MRU bound of MaxIV Phase-2 slots, evicting least-recently-used.
func TestIVChain_Property3_MRUBound(t *testing.T) {
	c := newTestIVChain()
	c.getIV(1)
	c.getIV(2)
	c.getIV(3)
	c.getIV(4) // evicts mid 1, the least-recently-touched

	require.Len(t, c.phase2, MaxIV)
	for _, s := range c.phase2 {
		assert.NotEqual(t, uint32(1), s.mid)
	}
}

// Property 4: chain law — get_iv(mid) after update_iv(mid, B); confirm_iv(mid)
// equals B.
func TestIVChain_Property4_ChainLaw(t *testing.T) {
	c := newTestIVChain()
	c.getIV(5) // create the slot first

	block := bytes.Repeat([]byte{0xAB}, 8)
	c.updateIV(5, block)
	c.confirmIV(5)

	assert.Equal(t, block, c.getIV(5))
}

// Property 5: update idempotence — calling update_iv twice with the same
// block before confirm_iv behaves like a single call.
func TestIVChain_Property5_UpdateIdempotent(t *testing.T) {
	c1 := newTestIVChain()
	c1.getIV(5)
	block := bytes.Repeat([]byte{0xCD}, 8)
	c1.updateIV(5, block)
	c1.confirmIV(5)

	c2 := newTestIVChain()
	c2.getIV(5)
	c2.updateIV(5, block)
	c2.updateIV(5, block)
	c2.confirmIV(5)

	assert.Equal(t, c1.getIV(5), c2.getIV(5))
}

// S5 — MRU eviction: after touching MIDs 1..4, MID 1 is gone and a fresh
// get_iv(1) regenerates the initial-IV formula rather than returning stale
// state.
func TestIVChain_S5_MRUEviction(t *testing.T) {
	c := newTestIVChain()
	iv1First := c.getIV(1)
	c.getIV(2)
	c.getIV(3)
	c.getIV(4)

	iv1Second := c.getIV(1)
	assert.Equal(t, iv1First, iv1Second, "regenerated IV follows the same deterministic formula")

	require.Len(t, c.phase2, MaxIV)
}

// S6 — rollback: update_iv without a following confirm_iv leaves get_iv
// unchanged.
func TestIVChain_S6_Rollback(t *testing.T) {
	c := newTestIVChain()
	iv0 := c.getIV(5)

	c.updateIV(5, bytes.Repeat([]byte{0xFF}, 8))
	// no confirmIV call

	assert.Equal(t, iv0, c.getIV(5))
}

func TestIVChain_NoSharedMidBetweenSlots(t *testing.T) {
	c := newTestIVChain()
	c.getIV(1)
	c.getIV(1)
	assert.Len(t, c.phase2, 1, "re-touching the same mid must not create a duplicate slot")
}
