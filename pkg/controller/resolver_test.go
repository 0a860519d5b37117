package controller_test

import (
	"context"
	"crypto"
	"crypto/ed25519"
	"crypto/x509"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/did-coop/wasupdoc/pkg/controller"
	"github.com/did-coop/wasupdoc/internal/testutil"
	"github.com/did-coop/wasupdoc/pkg/passphrase"
	"github.com/storacha/go-ucanto/did"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// forbiddenFiles fails the test on any filesystem access.
type forbiddenFiles struct {
	t *testing.T
}

func (f forbiddenFiles) Stat(name string) (fs.FileInfo, error) {
	f.t.Fatalf("unexpected stat of %s", name)
	return nil, nil
}

func (f forbiddenFiles) ReadFile(name string) ([]byte, error) {
	f.t.Fatalf("unexpected read of %s", name)
	return nil, nil
}

type stubSigner string

func (s stubSigner) ID() string { return string(s) }

func forbiddenSignerFactory(t *testing.T) controller.SignerFactory {
	return func(crypto.PrivateKey) (controller.Signer, error) {
		t.Fatal("unexpected signer construction")
		return nil, nil
	}
}

func TestResolve__DID(t *testing.T) {
	inputs := []string{
		"did:example:abc",
		"did:key:z6MkghfetkhrBZwUupJrv8MmYDH1JhKCQCGj1trbaZPA3dAd",
		"did:web:example.com",
		"did:",
		"did:not a valid did at all",
	}
	r := controller.NewResolver(
		controller.WithFiles(forbiddenFiles{t}),
		controller.WithSignerFactory(forbiddenSignerFactory(t)),
		controller.WithPassphrase(passphrase.SourceFunc(func(context.Context) ([]byte, error) {
			t.Fatal("unexpected passphrase request")
			return nil, nil
		})),
	)
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			resolved, err := r.Resolve(context.Background(), input)
			require.NoError(t, err)
			require.Equal(t, input, resolved)
		})
	}
}

func TestResolve__KeyFile(t *testing.T) {
	ctx := context.Background()
	key := testutil.RandomEd25519Key(t)
	expected := testutil.DIDKey(t, key.Public().(ed25519.PublicKey))

	t.Run("unencrypted", func(t *testing.T) {
		path := testutil.WriteSSHKey(t, key, "")
		r := controller.NewResolver()

		first, err := r.Resolve(ctx, path)
		require.NoError(t, err)
		require.Equal(t, expected, first)

		second, err := r.Resolve(ctx, path)
		require.NoError(t, err)
		require.Equal(t, first, second)

		_, err = did.Parse(first)
		require.NoError(t, err)
	})

	t.Run("unencrypted ignores passphrase", func(t *testing.T) {
		path := testutil.WriteSSHKey(t, key, "")
		r := controller.NewResolver(controller.WithPassphrase(passphrase.Static("unused")))
		resolved, err := r.Resolve(ctx, path)
		require.NoError(t, err)
		require.Equal(t, expected, resolved)
	})

	t.Run("pkcs8", func(t *testing.T) {
		resolved, err := controller.NewResolver().Resolve(ctx, testutil.WritePKCS8Key(t, key))
		require.NoError(t, err)
		require.Equal(t, expected, resolved)
	})

	t.Run("encrypted with correct passphrase", func(t *testing.T) {
		path := testutil.WriteSSHKey(t, key, "open sesame")
		r := controller.NewResolver(controller.WithPassphrase(passphrase.Static("open sesame")))
		resolved, err := r.Resolve(ctx, path)
		require.NoError(t, err)
		require.Equal(t, expected, resolved)
	})

	t.Run("encrypted with wrong passphrase", func(t *testing.T) {
		path := testutil.WriteSSHKey(t, key, "open sesame")
		r := controller.NewResolver(controller.WithPassphrase(passphrase.Static("close sesame")))
		_, err := r.Resolve(ctx, path)
		var kerr controller.KeyParseError
		require.ErrorAs(t, err, &kerr)
		require.Equal(t, path, kerr.Path)
		require.ErrorIs(t, err, x509.IncorrectPasswordError)
	})

	t.Run("encrypted without passphrase", func(t *testing.T) {
		path := testutil.WriteSSHKey(t, key, "open sesame")
		_, err := controller.NewResolver().Resolve(ctx, path)
		var kerr controller.KeyParseError
		require.ErrorAs(t, err, &kerr)
		var missing *ssh.PassphraseMissingError
		require.ErrorAs(t, err, &missing)
	})

	t.Run("passphrase source failure", func(t *testing.T) {
		path := testutil.WriteSSHKey(t, key, "open sesame")
		r := controller.NewResolver(controller.WithPassphrase(passphrase.SourceFunc(func(context.Context) ([]byte, error) {
			return nil, passphrase.ErrNoPassphrase
		})))
		_, err := r.Resolve(ctx, path)
		var perr controller.PassphraseError
		require.ErrorAs(t, err, &perr)
		require.Equal(t, path, perr.Path)
		require.ErrorIs(t, err, passphrase.ErrNoPassphrase)
	})

	t.Run("malformed key", func(t *testing.T) {
		path := testutil.WriteFile(t, "id_bogus", []byte("-----BEGIN NONSENSE-----\n-----END NONSENSE-----\n"))
		_, err := controller.NewResolver().Resolve(ctx, path)
		var kerr controller.KeyParseError
		require.ErrorAs(t, err, &kerr)
		require.Equal(t, path, kerr.Path)
	})

	t.Run("unsupported key type", func(t *testing.T) {
		path := testutil.WriteSSHKey(t, testutil.RandomECDSAKey(t), "")
		_, err := controller.NewResolver().Resolve(ctx, path)
		var serr controller.SignerConstructionError
		require.ErrorAs(t, err, &serr)
		require.Equal(t, path, serr.Path)
	})
}

func TestResolve__Errors(t *testing.T) {
	ctx := context.Background()
	keyPath := testutil.WriteSSHKey(t, testutil.RandomEd25519Key(t), "")

	t.Run("missing identity", func(t *testing.T) {
		r := controller.NewResolver(controller.WithFiles(forbiddenFiles{t}))
		_, err := r.Resolve(ctx, "")
		require.ErrorIs(t, err, controller.MissingIdentityError{})
	})

	t.Run("file not found", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "does-not-exist")
		r := controller.NewResolver(controller.WithSignerFactory(forbiddenSignerFactory(t)))
		_, err := r.Resolve(ctx, path)
		var ferr controller.FileNotFoundError
		require.ErrorAs(t, err, &ferr)
		require.Equal(t, path, ferr.Path)
		require.ErrorIs(t, err, fs.ErrNotExist)
		require.EqualError(t, err, "file at path does not exist: "+path)
	})

	t.Run("directory", func(t *testing.T) {
		dir := t.TempDir()
		r := controller.NewResolver(controller.WithSignerFactory(forbiddenSignerFactory(t)))
		_, err := r.Resolve(ctx, dir)
		var ferr controller.FileNotFoundError
		require.ErrorAs(t, err, &ferr)
		require.Equal(t, dir, ferr.Path)
	})

	t.Run("signer factory yields nothing", func(t *testing.T) {
		r := controller.NewResolver(controller.WithSignerFactory(func(crypto.PrivateKey) (controller.Signer, error) {
			return nil, nil
		}))
		_, err := r.Resolve(ctx, keyPath)
		var serr controller.SignerConstructionError
		require.ErrorAs(t, err, &serr)
		require.Equal(t, keyPath, serr.Path)
	})

	t.Run("signer without id", func(t *testing.T) {
		r := controller.NewResolver(controller.WithSignerFactory(func(crypto.PrivateKey) (controller.Signer, error) {
			return stubSigner(""), nil
		}))
		_, err := r.Resolve(ctx, keyPath)
		var cerr controller.ControllerResolutionError
		require.ErrorAs(t, err, &cerr)
		require.Empty(t, cerr.VerificationMethodID)
	})

	t.Run("controller not derivable", func(t *testing.T) {
		id := "did:web:example.com#key-1"
		r := controller.NewResolver(controller.WithSignerFactory(func(crypto.PrivateKey) (controller.Signer, error) {
			return stubSigner(id), nil
		}))
		_, err := r.Resolve(ctx, keyPath)
		var cerr controller.ControllerResolutionError
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, id, cerr.VerificationMethodID)
	})

	t.Run("deriver yields nothing", func(t *testing.T) {
		r := controller.NewResolver(controller.WithControllerDeriver(func(string) (did.DID, error) {
			return did.Undef, nil
		}))
		_, err := r.Resolve(ctx, keyPath)
		var cerr controller.ControllerResolutionError
		require.ErrorAs(t, err, &cerr)
		require.NotEmpty(t, cerr.VerificationMethodID)
	})

	t.Run("deriver failure is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		r := controller.NewResolver(controller.WithControllerDeriver(func(string) (did.DID, error) {
			return did.Undef, boom
		}))
		_, err := r.Resolve(ctx, keyPath)
		require.ErrorIs(t, err, boom)
	})
}
