//go:build windows && !amd64 && !386

package adeptkey

import "runtime"

// The activation entropy depends on x86 CPUID output; there is nothing
// equivalent to probe on other processor families.

func cpuVendor() ([vendorLen]byte, error) {
	return [vendorLen]byte{}, ErrUnsupportedPlatform{OS: runtime.GOOS + "/" + runtime.GOARCH}
}

func cpuSignature() (uint32, error) {
	return 0, ErrUnsupportedPlatform{OS: runtime.GOOS + "/" + runtime.GOARCH}
}
