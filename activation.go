package adeptkey

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// Relative location of the activation record under an Application
// Support directory.
const activationSubpath = "Adobe/Digital Editions/activation.dat"

// documentRecoverer implements the document-backed recovery path. The
// activation store is a plain XML file that is not additionally
// encrypted, so no hardware probing or secret unwrapping is involved.
type documentRecoverer struct {
	// supportDirs is searched in order, user scope before machine
	// scope; the first directory holding the activation file wins.
	supportDirs []string
}

func (r *documentRecoverer) recover() ([]byte, error) {
	path, err := r.findActivationFile()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parseActivation(data)
}

func (r *documentRecoverer) findActivationFile() (string, error) {
	for _, dir := range r.supportDirs {
		path := filepath.Join(dir, filepath.FromSlash(activationSubpath))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrNotFound{What: "activation.dat"}
}

// parseActivation extracts the private license key from an activation
// record: the text of the credentials/privateLicenseKey element,
// base64-decoded, with the fixed header stripped. The stored value on
// this platform is not block-cipher-padded, so nothing is trimmed from
// the tail.
func parseActivation(data []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing activation document: %w", err)
	}

	cred := findElement(doc.Root(), credentialsTag)
	if cred == nil {
		return nil, ErrNotFound{What: licenseKeyTag}
	}
	leaf := findElement(cred, licenseKeyTag)
	if leaf == nil {
		return nil, ErrNotFound{What: licenseKeyTag}
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(leaf.Text()))
	if err != nil {
		return nil, ErrUnwrap{Reason: fmt.Sprintf("malformed %s: %v", licenseKeyTag, err)}
	}
	if len(raw) <= userKeyHeaderLen {
		return nil, ErrUnwrap{Reason: "stored key too short"}
	}
	return raw[userKeyHeaderLen:], nil
}

// findElement returns the first element in document order, including
// el itself, whose local tag matches. Matching ignores the namespace
// prefix; documents in the wild bind the adept namespace to varying
// prefixes.
func findElement(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	if el.Tag == tag {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}
