package certs

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(t *testing.T, cert tls.Certificate) *x509.Certificate {
	t.Helper()
	require.NotEmpty(t, cert.Certificate)
	parsed, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	return parsed
}

func TestGetOrCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "certs")
	m := NewFileManager(dir, "stylist.test")

	first, err := m.GetOrCreate()
	require.NoError(t, err)

	parsed := leaf(t, first)
	assert.Contains(t, parsed.DNSNames, "localhost")
	assert.Contains(t, parsed.DNSNames, "stylist.test")
	assert.Len(t, parsed.IPAddresses, 2)

	info, err := os.Stat(filepath.Join(dir, "stylist.key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	t.Run("reuses a valid certificate", func(t *testing.T) {
		again, err := m.GetOrCreate()
		require.NoError(t, err)
		assert.Equal(t, first.Certificate[0], again.Certificate[0])
	})

	t.Run("renews near expiry", func(t *testing.T) {
		later := NewFileManager(dir, "stylist.test")
		later.now = func() time.Time { return time.Now().Add(Validity - 24*time.Hour) }

		renewed, err := later.GetOrCreate()
		require.NoError(t, err)
		assert.NotEqual(t, first.Certificate[0], renewed.Certificate[0])
	})

	t.Run("regenerates for new hosts", func(t *testing.T) {
		wider := NewFileManager(dir, "shop.local")
		cert, err := wider.GetOrCreate()
		require.NoError(t, err)
		assert.Contains(t, leaf(t, cert).DNSNames, "shop.local")
	})
}

func TestGetOrCreate_CorruptFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stylist.crt"), []byte("junk"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stylist.key"), []byte("junk"), 0o600))

	cert, err := NewFileManager(dir).GetOrCreate()
	require.NoError(t, err)
	assert.Contains(t, leaf(t, cert).DNSNames, "localhost")
}

func TestTLSConfig(t *testing.T) {
	cfg, err := NewFileManager(t.TempDir()).TLSConfig()
	require.NoError(t, err)
	assert.Len(t, cfg.Certificates, 1)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
}
