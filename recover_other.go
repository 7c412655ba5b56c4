//go:build !windows && !darwin

package adeptkey

import "runtime"

func newRecoverer() (recoverer, error) {
	return nil, ErrUnsupportedPlatform{OS: runtime.GOOS}
}
