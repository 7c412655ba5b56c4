//go:build windows

package crypto

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// UnprotectData unwraps a DPAPI blob sealed to the current user
// account. The entropy is passed as the optional-entropy blob and is
// authenticated by the facility: it must match byte-for-byte what
// sealed the data, or the call fails. Wrong user, wrong machine,
// corrupted blob, and mismatched entropy are indistinguishable here;
// DPAPI reports them all as the same failure.
func UnprotectData(ciphertext, entropy []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, errors.New("empty ciphertext")
	}

	in := windows.DataBlob{Size: uint32(len(ciphertext)), Data: &ciphertext[0]}
	var entropyBlob *windows.DataBlob
	if len(entropy) > 0 {
		entropyBlob = &windows.DataBlob{Size: uint32(len(entropy)), Data: &entropy[0]}
	}

	var out windows.DataBlob
	if err := windows.CryptUnprotectData(&in, nil, entropyBlob, 0, nil, 0, &out); err != nil {
		return nil, fmt.Errorf("CryptUnprotectData: %w", err)
	}
	defer windows.LocalFree(windows.Handle(unsafe.Pointer(out.Data)))

	buf := unsafe.Slice(out.Data, out.Size)
	cp := make([]byte, len(buf))
	copy(cp, buf)
	return cp, nil
}
