package adeptkey

import "fmt"

// credNode is one node of the activation credential tree. On Windows
// it is backed by a registry key; tests supply synthetic trees.
// Container children are named by a zero-padded four-digit index
// starting at "0000", and every node carries a type tag in its default
// value.
type credNode interface {
	// Child opens the named child node. An error means the child does
	// not exist, which during an indexed scan signals "no more
	// siblings".
	Child(name string) (credNode, error)

	// Tag returns the node's type tag (its default value).
	Tag() (string, error)

	// Value returns the named value stored at a leaf node.
	Value(name string) (string, error)

	Close() error
}

// The activation tree never holds more than sixteen siblings per
// level; the scan below preserves that cap from the external store's
// layout convention rather than enumerating without bound.
const maxSiblings = 16

const (
	credentialsTag = "credentials"
	licenseKeyTag  = "privateLicenseKey"
	licenseKeyName = "value"
)

// findLicenseKey walks the activation tree for the wrapped private
// license key. Depth-1 children are scanned in index order for nodes
// tagged "credentials"; within each, depth-2 children are scanned the
// same way for the first leaf tagged "privateLicenseKey", whose
// "value" is returned. The scan stops at the first match; a single
// activation is the expected case.
func findLicenseKey(root credNode) (string, error) {
	for i := 0; i < maxSiblings; i++ {
		parent, err := root.Child(indexName(i))
		if err != nil {
			break
		}
		tag, err := parent.Tag()
		if err != nil || tag != credentialsTag {
			parent.Close()
			continue
		}

		wrapped, found := scanForLicenseKey(parent)
		parent.Close()
		if found {
			return wrapped, nil
		}
	}
	return "", ErrNotFound{What: licenseKeyTag}
}

func scanForLicenseKey(parent credNode) (string, bool) {
	for j := 0; j < maxSiblings; j++ {
		leaf, err := parent.Child(indexName(j))
		if err != nil {
			break
		}
		tag, err := leaf.Tag()
		if err != nil || tag != licenseKeyTag {
			leaf.Close()
			continue
		}
		wrapped, err := leaf.Value(licenseKeyName)
		leaf.Close()
		if err != nil {
			continue
		}
		return wrapped, true
	}
	return "", false
}

func indexName(i int) string {
	return fmt.Sprintf("%04d", i)
}
