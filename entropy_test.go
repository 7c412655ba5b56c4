package adeptkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildEntropy(t *testing.T) {
	var vendor [vendorLen]byte
	copy(vendor[:], "GenuineIntel")

	id := systemIdentity{
		VolumeSerial: 0x04030201,
		Vendor:       vendor,
		Signature:    0x000106A5,
		User:         []byte("alice"),
	}

	t.Run("fixed layout", func(t *testing.T) {
		got := buildEntropy(id)
		require.Len(t, got, entropyLen)

		want := append([]byte{0x04, 0x03, 0x02, 0x01}, []byte("GenuineIntel")...)
		want = append(want, 0x01, 0x06, 0xA5)
		want = append(want, []byte("alice")...)
		want = append(want, make([]byte, userLen-len("alice"))...)
		require.Equal(t, want, got)
	})

	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, buildEntropy(id), buildEntropy(id))
	})

	t.Run("long user name is truncated", func(t *testing.T) {
		long := id
		long.User = []byte("a-very-long-account-name")
		got := buildEntropy(long)
		require.Len(t, got, entropyLen)
		require.Equal(t, []byte("a-very-long-a"), got[entropyLen-userLen:])
	})

	t.Run("only the low three signature bytes contribute", func(t *testing.T) {
		other := id
		other.Signature = 0xFF0106A5
		require.Equal(t, buildEntropy(id), buildEntropy(other))
	})
}
