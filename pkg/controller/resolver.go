// Package controller resolves the controller DID of a document from either a
// DID or the path to an SSH private key.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/did-coop/wasupdoc/pkg/didkey"
	"github.com/did-coop/wasupdoc/pkg/sshkey"
	logging "github.com/ipfs/go-log/v2"
	"github.com/storacha/go-ucanto/did"
)

var log = logging.Logger("controller")

type Resolver struct {
	config
}

// NewResolver creates a Resolver. Without options it reads keys from the
// local filesystem and treats every key as unencrypted.
func NewResolver(opts ...Option) *Resolver {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return &Resolver{c}
}

// Resolve returns the controller DID for identity.
//
// An identity starting with "did:" is returned unchanged without touching
// the filesystem. This is a prefix check only, so a malformed DID is echoed
// back as given. Any other identity is the path of an SSH private key whose
// did:key is returned.
func (r *Resolver) Resolve(ctx context.Context, identity string) (string, error) {
	if strings.HasPrefix(identity, didkey.Prefix) {
		log.Debugf("using controller DID %s as given", identity)
		return identity, nil
	}

	signer, err := r.signerFromIdentity(ctx, identity)
	if err != nil {
		return "", err
	}

	return r.controllerOfSigner(signer)
}

func (r *Resolver) signerFromIdentity(ctx context.Context, path string) (Signer, error) {
	if path == "" {
		return nil, MissingIdentityError{}
	}

	info, err := r.files.Stat(path)
	if err != nil {
		return nil, FileNotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, FileNotFoundError{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}

	b, err := r.files.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file %s: %w", path, err)
	}

	log.Debugf("parsing private key %s", path)
	key, err := r.parseKey(ctx, b, r.passphrase)
	if err != nil {
		var serr *sshkey.SourceError
		if errors.As(err, &serr) {
			return nil, PassphraseError{Path: path, Err: serr.Err}
		}
		return nil, KeyParseError{Path: path, Err: err}
	}

	signer, err := r.newSigner(key)
	if err != nil {
		return nil, SignerConstructionError{Path: path, Err: err}
	}
	if signer == nil {
		return nil, SignerConstructionError{Path: path}
	}
	return signer, nil
}

func (r *Resolver) controllerOfSigner(signer Signer) (string, error) {
	id := signer.ID()
	if id == "" {
		return "", ControllerResolutionError{VerificationMethodID: id}
	}

	controller, err := r.controllers(id)
	if err != nil {
		return "", ControllerResolutionError{VerificationMethodID: id, Err: err}
	}
	if controller == did.Undef {
		return "", ControllerResolutionError{VerificationMethodID: id}
	}

	log.Debugf("resolved controller %s from verification method %s", controller, id)
	return controller.String(), nil
}
