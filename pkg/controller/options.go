package controller

import (
	"context"
	"crypto"
	"io/fs"
	"os"

	"github.com/did-coop/wasupdoc/pkg/didkey"
	"github.com/did-coop/wasupdoc/pkg/passphrase"
	"github.com/did-coop/wasupdoc/pkg/sshkey"
	"github.com/storacha/go-ucanto/did"
)

// Signer is a private key that can be identified by its verification method.
type Signer interface {
	// ID returns the verification method identifier, e.g. did:key:z6Mk...#z6Mk...
	ID() string
}

// Files is the filesystem access the resolver needs.
type Files interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// KeyParser parses the bytes of a private key file, asking src for a
// passphrase if the key is encrypted. Failures of src are reported as
// *sshkey.SourceError.
type KeyParser func(ctx context.Context, b []byte, src passphrase.Source) (crypto.PrivateKey, error)

// SignerFactory constructs a signer from a parsed private key.
type SignerFactory func(key crypto.PrivateKey) (Signer, error)

// ControllerDeriver derives the controller DID of a verification method.
type ControllerDeriver func(verificationMethodID string) (did.DID, error)

type osFiles struct{}

func (osFiles) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (osFiles) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func newSSHSigner(key crypto.PrivateKey) (Signer, error) {
	s, err := sshkey.NewSigner(key)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type config struct {
	files       Files
	passphrase  passphrase.Source
	parseKey    KeyParser
	newSigner   SignerFactory
	controllers ControllerDeriver
}

type Option func(*config)

// WithPassphrase sets where the passphrase of an encrypted key comes from.
func WithPassphrase(src passphrase.Source) Option {
	return func(c *config) {
		c.passphrase = src
	}
}

// WithFiles replaces the filesystem used to read key files.
func WithFiles(f Files) Option {
	return func(c *config) {
		c.files = f
	}
}

func WithKeyParser(p KeyParser) Option {
	return func(c *config) {
		c.parseKey = p
	}
}

func WithSignerFactory(f SignerFactory) Option {
	return func(c *config) {
		c.newSigner = f
	}
}

func WithControllerDeriver(d ControllerDeriver) Option {
	return func(c *config) {
		c.controllers = d
	}
}

func defaultConfig() config {
	return config{
		files:       osFiles{},
		passphrase:  passphrase.None,
		parseKey:    sshkey.ParsePrivateKey,
		newSigner:   newSSHSigner,
		controllers: didkey.ControllerOf,
	}
}
