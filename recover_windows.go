//go:build windows

package adeptkey

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/limpdev/adeptkey/crypto"
)

const (
	deviceKeyPath      = `Software\Adobe\Adept\Device`
	activationKeyPath  = `Software\Adobe\Adept\Activation`
	deviceKeyValueName = "key"
)

func newRecoverer() (recoverer, error) {
	return &storeRecoverer{
		identity:  collectIdentity,
		deviceKey: readDeviceKey,
		openRoot:  openActivationRoot,
		unprotect: crypto.UnprotectData,
	}, nil
}

// collectIdentity gathers the machine- and account-specific values the
// entropy buffer is built from: CPU vendor and signature straight from
// the processor, the serial number of the system volume, and the
// logon user name.
func collectIdentity() (systemIdentity, error) {
	vendor, err := cpuVendor()
	if err != nil {
		return systemIdentity{}, fmt.Errorf("probing cpu vendor: %w", err)
	}
	signature, err := cpuSignature()
	if err != nil {
		return systemIdentity{}, fmt.Errorf("probing cpu signature: %w", err)
	}
	serial, err := systemVolumeSerial()
	if err != nil {
		return systemIdentity{}, fmt.Errorf("reading system volume serial: %w", err)
	}
	user, err := currentUserBytes()
	if err != nil {
		return systemIdentity{}, fmt.Errorf("reading user name: %w", err)
	}
	return systemIdentity{
		VolumeSerial: serial,
		Vendor:       vendor,
		Signature:    signature,
		User:         user,
	}, nil
}

// systemVolumeSerial returns the serial number of the volume holding
// the system directory, the same volume the client hashed at
// activation time.
func systemVolumeSerial() (uint32, error) {
	sysdir, err := windows.GetSystemDirectory()
	if err != nil {
		return 0, err
	}
	root, err := windows.UTF16PtrFromString(filepath.VolumeName(sysdir) + `\`)
	if err != nil {
		return 0, err
	}
	var serial uint32
	if err := windows.GetVolumeInformation(root, nil, 0, &serial, nil, nil, nil, 0); err != nil {
		return 0, err
	}
	return serial, nil
}

// currentUserBytes returns the logon name reduced to one byte per
// character: the low byte of each UTF-16 unit, as the client encodes
// it into the entropy buffer.
func currentUserBytes() ([]byte, error) {
	var buf [256]uint16
	n := uint32(len(buf))
	if err := windows.GetUserNameEx(windows.NameSamCompatible, &buf[0], &n); err != nil {
		return nil, err
	}
	name := windows.UTF16ToString(buf[:n])
	// NameSamCompatible is DOMAIN\user; only the account name counts.
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}
	units := utf16.Encode([]rune(name))
	out := make([]byte, len(units))
	for i, u := range units {
		out[i] = byte(u)
	}
	return out, nil
}

// readDeviceKey reads the DPAPI-sealed device key blob. A missing key
// means the client was never activated for this account.
func readDeviceKey() ([]byte, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, deviceKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return nil, ErrNotActivated{}
	}
	defer k.Close()

	device, _, err := k.GetBinaryValue(deviceKeyValueName)
	if err != nil {
		return nil, ErrNotActivated{}
	}
	return device, nil
}

func openActivationRoot() (credNode, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, activationKeyPath, registry.READ)
	if err != nil {
		return nil, ErrNotActivated{}
	}
	return regNode{key: k}, nil
}

// regNode adapts a registry key to the credential tree interface.
type regNode struct {
	key registry.Key
}

func (n regNode) Child(name string) (credNode, error) {
	k, err := registry.OpenKey(n.key, name, registry.READ)
	if err != nil {
		return nil, err
	}
	return regNode{key: k}, nil
}

func (n regNode) Tag() (string, error) {
	// The type tag is the key's default value.
	tag, _, err := n.key.GetStringValue("")
	return tag, err
}

func (n regNode) Value(name string) (string, error) {
	v, _, err := n.key.GetStringValue(name)
	return v, err
}

func (n regNode) Close() error {
	return n.key.Close()
}
