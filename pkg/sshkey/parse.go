// Package sshkey turns SSH private key files into did:key signers.
package sshkey

import (
	"context"
	"crypto"
	"errors"
	"fmt"

	"github.com/did-coop/wasupdoc/pkg/passphrase"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/crypto/ssh"
)

var log = logging.Logger("sshkey")

// ParsePrivateKey parses a PEM encoded private key in any format understood
// by golang.org/x/crypto/ssh. The passphrase source is only consulted when
// the key turns out to be encrypted; a passphrase supplied for an
// unencrypted key is ignored.
func ParsePrivateKey(ctx context.Context, pemBytes []byte, src passphrase.Source) (crypto.PrivateKey, error) {
	key, err := ssh.ParseRawPrivateKey(pemBytes)
	if err == nil {
		return key, nil
	}

	var missing *ssh.PassphraseMissingError
	if !errors.As(err, &missing) {
		return nil, err
	}
	log.Debug("private key is encrypted")

	if src == nil {
		return nil, err
	}
	pass, perr := src.Passphrase(ctx)
	if perr != nil {
		return nil, &SourceError{Err: perr}
	}
	if pass == nil {
		return nil, err
	}

	return ssh.ParseRawPrivateKeyWithPassphrase(pemBytes, pass)
}

// SourceError wraps a failure to obtain a passphrase, as opposed to a failure
// to parse the key itself.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("obtaining passphrase: %s", e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
