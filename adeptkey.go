// Package adeptkey recovers the Adobe ADEPT user key from the local
// Adobe Digital Editions activation.
//
// Basic usage:
//
//	import "github.com/limpdev/adeptkey"
//
//	key, err := adeptkey.Retrieve()
//	if err != nil {
//		log.Fatal(err)
//	}
//	// key is the raw private license key (RSA, DER form)
//
// On Windows the key is reconstructed from the activation registry
// hive: a machine-bound entropy value is derived from the CPU and the
// system volume, the device key is unwrapped through DPAPI, and the
// private license key is located in the credential tree and decrypted
// with it. On macOS the key is read directly from activation.dat.
// Other platforms are not supported.
package adeptkey

import "fmt"

// Retrieve returns the raw private license key of the current user's
// Digital Editions activation. It reads only OS state, never writes,
// and is safe to call repeatedly.
func Retrieve() ([]byte, error) {
	r, err := newRecoverer()
	if err != nil {
		return nil, err
	}
	return r.recover()
}

// recoverer is the single contract both platform strategies implement.
type recoverer interface {
	recover() ([]byte, error)
}

// Error types for better error handling

type ErrUnsupportedPlatform struct {
	OS string
}

func (e ErrUnsupportedPlatform) Error() string {
	return fmt.Sprintf("adept key recovery not supported on %s", e.OS)
}

type ErrNotActivated struct{}

func (e ErrNotActivated) Error() string {
	return "Adobe Digital Editions not activated"
}

type ErrNotFound struct {
	What string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("could not locate %s", e.What)
}

type ErrUnwrap struct {
	Reason string
}

func (e ErrUnwrap) Error() string {
	return fmt.Sprintf("could not decrypt user key: %s", e.Reason)
}
