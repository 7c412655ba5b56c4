package adeptkey

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func activationXML(wrapped string) []byte {
	return []byte(`<?xml version="1.0"?>
<adept:activationInfo xmlns:adept="http://ns.adobe.com/adept">
  <adept:activationServiceInfo>
    <adept:authURL>https://adeactivate.adobe.com/adept</adept:authURL>
  </adept:activationServiceInfo>
  <adept:credentials>
    <adept:user>urn:uuid:00000000-0000-0000-0000-000000000001</adept:user>
    <adept:privateLicenseKey>` + wrapped + `</adept:privateLicenseKey>
  </adept:credentials>
</adept:activationInfo>`)
}

func TestParseActivation(t *testing.T) {
	userKey := []byte("the raw der-encoded license key!")
	stored := base64.StdEncoding.EncodeToString(
		append(make([]byte, userKeyHeaderLen), userKey...))

	t.Run("extracts the key minus the header", func(t *testing.T) {
		got, err := parseActivation(activationXML(stored))
		require.NoError(t, err)
		require.Equal(t, userKey, got)
	})

	t.Run("missing element", func(t *testing.T) {
		doc := []byte(`<?xml version="1.0"?>
<adept:activationInfo xmlns:adept="http://ns.adobe.com/adept">
  <adept:credentials>
    <adept:user>urn:uuid:00000000-0000-0000-0000-000000000001</adept:user>
  </adept:credentials>
</adept:activationInfo>`)
		_, err := parseActivation(doc)
		var notFound ErrNotFound
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, licenseKeyTag, notFound.What)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := parseActivation([]byte("<unclosed"))
		require.Error(t, err)
	})

	t.Run("malformed base64", func(t *testing.T) {
		_, err := parseActivation(activationXML("!!not-base64!!"))
		var unwrapErr ErrUnwrap
		require.ErrorAs(t, err, &unwrapErr)
	})

	t.Run("value shorter than the header", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString([]byte("stub"))
		_, err := parseActivation(activationXML(short))
		var unwrapErr ErrUnwrap
		require.ErrorAs(t, err, &unwrapErr)
	})
}

func TestDocumentRecoverer(t *testing.T) {
	userKey := []byte("the raw der-encoded license key!")
	stored := base64.StdEncoding.EncodeToString(
		append(make([]byte, userKeyHeaderLen), userKey...))

	writeActivation := func(t *testing.T, dir string) {
		t.Helper()
		path := filepath.Join(dir, filepath.FromSlash(activationSubpath))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, activationXML(stored), 0644))
	}

	t.Run("first existing candidate wins", func(t *testing.T) {
		userDir, machineDir := t.TempDir(), t.TempDir()
		writeActivation(t, machineDir)

		r := &documentRecoverer{supportDirs: []string{userDir, machineDir}}
		got, err := r.recover()
		require.NoError(t, err)
		require.Equal(t, userKey, got)
	})

	t.Run("user scope shadows machine scope", func(t *testing.T) {
		userDir, machineDir := t.TempDir(), t.TempDir()
		writeActivation(t, userDir)

		// A bogus machine-scope record must never be consulted.
		machinePath := filepath.Join(machineDir, filepath.FromSlash(activationSubpath))
		require.NoError(t, os.MkdirAll(filepath.Dir(machinePath), 0755))
		require.NoError(t, os.WriteFile(machinePath, []byte("<bogus"), 0644))

		r := &documentRecoverer{supportDirs: []string{userDir, machineDir}}
		got, err := r.recover()
		require.NoError(t, err)
		require.Equal(t, userKey, got)
	})

	t.Run("no candidate path", func(t *testing.T) {
		r := &documentRecoverer{supportDirs: []string{t.TempDir(), t.TempDir()}}
		_, err := r.recover()
		var notFound ErrNotFound
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, "activation.dat", notFound.What)
	})
}
