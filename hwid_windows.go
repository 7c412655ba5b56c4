//go:build windows && (amd64 || 386)

package adeptkey

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// The CPU vendor string and signature must match what the DRM client
// observed at activation time, raw register contents included, so the
// probe executes the identification instruction directly instead of
// going through an OS abstraction. The instruction bytes live in the
// per-architecture files; each probe call writes them into a fresh
// executable buffer, invokes it once, and releases it.

// cpuVendor executes CPUID leaf 0 and returns the 12-byte vendor
// string in EBX, EDX, ECX order.
func cpuVendor() ([vendorLen]byte, error) {
	var vendor [vendorLen]byte
	buf, err := newExecBuf(cpuid0Code)
	if err != nil {
		return vendor, err
	}
	defer buf.free()

	syscall.SyscallN(buf.addr, uintptr(unsafe.Pointer(&vendor[0])))
	return vendor, nil
}

// cpuSignature executes CPUID leaf 1 and returns the processor
// signature from EAX.
func cpuSignature() (uint32, error) {
	buf, err := newExecBuf(cpuid1Code)
	if err != nil {
		return 0, err
	}
	defer buf.free()

	r1, _, _ := syscall.SyscallN(buf.addr)
	return uint32(r1), nil
}

// execBuf is a small block of executable memory holding one machine
// code stub. Each probe acquires its own buffer and must release it on
// every exit path; nothing is pooled or reused across calls.
type execBuf struct {
	addr uintptr
}

func newExecBuf(code []byte) (*execBuf, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(len(code)),
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_EXECUTE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("allocating executable memory: %w", err)
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(addr)), len(code)), code)
	return &execBuf{addr: addr}, nil
}

func (b *execBuf) free() {
	_ = windows.VirtualFree(b.addr, 0, windows.MEM_RELEASE)
}
