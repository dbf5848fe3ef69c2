package database

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCA(t *testing.T) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "velora-test-ca"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ca.pem")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, pem.Encode(f, &pem.Block{Type: "CERTIFICATE", Bytes: der}))
	return path
}

func testKeyspaceConfig() ScyllaKeyspaceConfig {
	return ScyllaKeyspaceConfig{
		Hosts:       []string{"127.0.0.1"},
		Keyspace:    "ks_products",
		Username:    "velora",
		Password:    "secret",
		Timeout:     time.Second,
		NumConns:    2,
		Consistency: gocql.Quorum,
	}
}

func TestCreateScyllaClusterWiresTLS(t *testing.T) {
	cfg := testKeyspaceConfig()
	cfg.SSLEnabled = true
	cfg.CACertPath = writeTestCA(t)

	cluster, err := createScyllaCluster(cfg)
	require.NoError(t, err)
	require.NotNil(t, cluster.SslOpts)
	require.NotNil(t, cluster.SslOpts.Config)
	assert.NotNil(t, cluster.SslOpts.Config.RootCAs)
	assert.Equal(t, cfg.CACertPath, cluster.SslOpts.CaPath)
}

func TestCreateScyllaClusterWithoutTLS(t *testing.T) {
	cluster, err := createScyllaCluster(testKeyspaceConfig())
	require.NoError(t, err)
	assert.Nil(t, cluster.SslOpts)
	// Les écritures conditionnelles du moteur exigent le niveau SERIAL.
	assert.Equal(t, gocql.Serial, cluster.SerialConsistency)
}

func TestCreateScyllaClusterMissingCA(t *testing.T) {
	cfg := testKeyspaceConfig()
	cfg.SSLEnabled = true
	cfg.CACertPath = filepath.Join(t.TempDir(), "absent.pem")

	_, err := createScyllaCluster(cfg)
	assert.Error(t, err)
}

func TestCreateScyllaClusterRejectsBadCA(t *testing.T) {
	cfg := testKeyspaceConfig()
	cfg.SSLEnabled = true
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("pas un certificat"), 0o600))
	cfg.CACertPath = path

	_, err := createScyllaCluster(cfg)
	assert.Error(t, err)
}
