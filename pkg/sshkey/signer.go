package sshkey

import (
	"crypto"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/did-coop/wasupdoc/pkg/didkey"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"
	"github.com/storacha/go-ucanto/principal"
	ed25519signer "github.com/storacha/go-ucanto/principal/ed25519/signer"
)

// ErrUnsupportedKeyType means no did:key signer exists for the parsed key.
var ErrUnsupportedKeyType = errors.New("unsupported private key type")

// Signer is a did:key principal backed by an SSH private key.
type Signer struct {
	principal.Signer
}

// NewSigner constructs a Signer from a private key returned by
// ParsePrivateKey. Only ed25519 keys are supported.
func NewSigner(key crypto.PrivateKey) (*Signer, error) {
	var raw ed25519.PrivateKey
	switch k := key.(type) {
	case ed25519.PrivateKey:
		raw = k
	case *ed25519.PrivateKey:
		if k == nil {
			return nil, fmt.Errorf("%w: nil %T", ErrUnsupportedKeyType, k)
		}
		raw = *k
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKeyType, key)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid ed25519 private key length: %d wanted: %d", len(raw), ed25519.PrivateKeySize)
	}

	s, err := ed25519signer.Decode(encodeSigner(raw))
	if err != nil {
		return nil, fmt.Errorf("creating ed25519 signer: %w", err)
	}
	log.Debugf("created signer %s", s.DID())
	return &Signer{s}, nil
}

// encodeSigner tags the seed and public key of raw with their multicodecs,
// the layout ed25519signer.Decode reads.
func encodeSigner(raw ed25519.PrivateKey) []byte {
	b := append(varint.ToUvarint(uint64(ed25519signer.Code)), raw.Seed()...)
	b = append(b, varint.ToUvarint(uint64(multicodec.Ed25519Pub))...)
	return append(b, raw.Public().(ed25519.PublicKey)...)
}

// ID returns the identifier of the verification method of the signer.
func (s *Signer) ID() string {
	return didkey.VerificationMethodID(s.DID())
}
