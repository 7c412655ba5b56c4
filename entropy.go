package adeptkey

import "encoding/binary"

// Entropy buffer layout. The DRM client seals the device key against
// exactly this 32-byte concatenation, so every field width is fixed:
// volume serial (4, big-endian), CPU vendor string (12), low three
// bytes of the CPU signature (3), user name (13, NUL-padded).
const (
	vendorLen    = 12
	signatureLen = 3
	userLen      = 13
	entropyLen   = 4 + vendorLen + signatureLen + userLen
)

// systemIdentity holds the machine- and account-specific inputs the
// entropy buffer is built from.
type systemIdentity struct {
	VolumeSerial uint32
	Vendor       [vendorLen]byte
	Signature    uint32
	User         []byte
}

// buildEntropy assembles the fixed-layout entropy buffer. It must
// reproduce bit-for-bit the value the client computed at activation
// time; the sealing facility authenticates it, so a mismatch fails the
// unwrap rather than producing a wrong key.
func buildEntropy(id systemIdentity) []byte {
	buf := make([]byte, 0, entropyLen)
	buf = binary.BigEndian.AppendUint32(buf, id.VolumeSerial)
	buf = append(buf, id.Vendor[:]...)

	var sig [4]byte
	binary.BigEndian.PutUint32(sig[:], id.Signature)
	buf = append(buf, sig[4-signatureLen:]...)

	return append(buf, fixWidth(id.User, userLen)...)
}

// fixWidth truncates or NUL-pads b to exactly n bytes.
func fixWidth(b []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, b)
	return out
}
