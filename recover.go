package adeptkey

import (
	"encoding/base64"
	"fmt"

	"github.com/limpdev/adeptkey/crypto"
)

// storeRecoverer implements the registry-backed recovery path. Its
// collaborators are function values so the OS-facing pieces (hardware
// probe, registry, DPAPI) can be substituted in tests; the production
// wiring lives in the platform file.
type storeRecoverer struct {
	identity  func() (systemIdentity, error)
	deviceKey func() ([]byte, error)
	openRoot  func() (credNode, error)
	unprotect func(ciphertext, entropy []byte) ([]byte, error)
}

func (r *storeRecoverer) recover() ([]byte, error) {
	id, err := r.identity()
	if err != nil {
		return nil, err
	}

	device, err := r.deviceKey()
	if err != nil {
		return nil, err
	}

	kek, err := r.unprotect(device, buildEntropy(id))
	if err != nil {
		return nil, ErrUnwrap{Reason: err.Error()}
	}

	root, err := r.openRoot()
	if err != nil {
		return nil, err
	}
	defer root.Close()

	wrapped, err := findLicenseKey(root)
	if err != nil {
		return nil, err
	}

	return finalizeUserKey(wrapped, kek)
}

// The decrypted license key carries a fixed-format 26-byte header
// written by the DRM client, followed by the key itself and trailing
// block-cipher padding.
const userKeyHeaderLen = 26

// maxPad is the cipher block size, the largest legal pad length.
const maxPad = 16

// finalizeUserKey base64-decodes the wrapped key, decrypts it in CBC
// mode with a zero IV (the sealing convention supplies no explicit
// IV), then strips the header and the trailing padding. The cipher is
// unauthenticated: a wrong key-encryption key yields garbage output,
// not a detected error. The pad length byte, however, is validated
// rather than trusted, since it comes from foreign input.
func finalizeUserKey(wrapped string, kek []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return nil, ErrUnwrap{Reason: fmt.Sprintf("malformed wrapped key: %v", err)}
	}

	plain, err := crypto.DecryptCBC(kek, raw)
	if err != nil {
		return nil, ErrUnwrap{Reason: err.Error()}
	}
	if len(plain) <= userKeyHeaderLen {
		return nil, ErrUnwrap{Reason: "decrypted key too short"}
	}

	pad := int(plain[len(plain)-1])
	if pad < 1 || pad > maxPad || len(plain)-pad < userKeyHeaderLen {
		return nil, ErrUnwrap{Reason: "invalid key padding"}
	}

	return plain[userKeyHeaderLen : len(plain)-pad], nil
}
