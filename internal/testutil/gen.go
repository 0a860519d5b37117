package testutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	crand "crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// RandomEd25519Key generates a new ed25519 private key.
func RandomEd25519Key(t *testing.T) ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(crand.Reader)
	require.NoError(t, err)
	return priv
}

// RandomECDSAKey generates a new P-256 private key.
func RandomECDSAKey(t *testing.T) *ecdsa.PrivateKey {
	return Must(ecdsa.GenerateKey(elliptic.P256(), crand.Reader))(t)
}

// WriteFile writes data to a new file in a temporary directory that is
// removed when the test completes, and returns its path.
func WriteFile(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

// WriteSSHKey writes key as an OpenSSH private key file and returns its
// path. The key is encrypted when passphrase is not empty.
func WriteSSHKey(t *testing.T, key crypto.PrivateKey, passphrase string) string {
	var block *pem.Block
	var err error
	if passphrase == "" {
		block, err = ssh.MarshalPrivateKey(key, "test@wasupdoc")
	} else {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(key, "test@wasupdoc", []byte(passphrase))
	}
	require.NoError(t, err)
	return WriteFile(t, "id_test", pem.EncodeToMemory(block))
}

// WritePKCS8Key writes key as a PKCS#8 PEM file and returns its path.
func WritePKCS8Key(t *testing.T, key crypto.PrivateKey) string {
	der := Must(x509.MarshalPKCS8PrivateKey(key))(t)
	return WriteFile(t, "key.pem", pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

// DIDKey encodes an ed25519 public key as a did:key DID.
func DIDKey(t *testing.T, pub ed25519.PublicKey) string {
	b := append(varint.ToUvarint(uint64(multicodec.Ed25519Pub)), pub...)
	return "did:key:" + Must(multibase.Encode(multibase.Base58BTC, b))(t)
}
