package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModpDHSharedSecretRoundTrip(t *testing.T) {
	for _, group := range []DHGroupID{MODP768, MODP1024, MODP1536, MODP2048} {
		group := group
		t.Run(group.String(), func(t *testing.T) {
			initiator, ok := CreateDH(group)
			require.True(t, ok)
			responder, ok := CreateDH(group)
			require.True(t, ok)

			require.NoError(t, initiator.Generate())
			require.NoError(t, responder.Generate())

			initiatorShared, err := initiator.SharedSecret(responder.MyPublicValue())
			require.NoError(t, err)
			responderShared, err := responder.SharedSecret(initiator.MyPublicValue())
			require.NoError(t, err)

			assert.Equal(t, initiatorShared, responderShared, "both sides must derive the same g^xy")
			assert.Equal(t, group, initiator.Group())
		})
	}
}

func TestModpDHSharedSecretWithoutGenerateFails(t *testing.T) {
	dh, ok := CreateDH(MODP1024)
	require.True(t, ok)

	_, err := dh.SharedSecret([]byte{0x02})
	assert.Error(t, err)
}

func TestCreateDHUnsupportedGroup(t *testing.T) {
	_, ok := CreateDH(DHGroupUndefined)
	assert.False(t, ok)
}
