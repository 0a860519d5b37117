// Package didkey maps between did:key DIDs and the identifiers of the
// verification methods they carry.
package didkey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"
	"github.com/storacha/go-ucanto/did"
)

const (
	// Prefix is the scheme prefix shared by every DID.
	Prefix = "did:"
	// KeyPrefix is the prefix of DIDs using the did:key method.
	KeyPrefix = "did:key:"
)

var (
	// ErrNotDIDKey signals an identifier that does not use the did:key method.
	ErrNotDIDKey = errors.New("not a did:key verification method")
	// ErrMissingFragment signals an identifier with no "#" fragment.
	ErrMissingFragment = errors.New("verification method has no fragment")
	// ErrFragmentMismatch signals a fragment that does not name the key the DID encodes.
	ErrFragmentMismatch = errors.New("verification method fragment does not match did:key")
	// ErrUnsupportedKeyType signals a multicodec key type with no known controller mapping.
	ErrUnsupportedKeyType = errors.New("unsupported did:key key type")
)

// keySizes lists the public key types a controller can be derived for.
var keySizes = map[multicodec.Code]int{
	multicodec.Ed25519Pub: 32,
}

// VerificationMethodID returns the identifier of the single verification
// method of a did:key DID, i.e. did:key:z6Mk...#z6Mk...
func VerificationMethodID(id did.DID) string {
	s := id.String()
	return s + "#" + strings.TrimPrefix(s, KeyPrefix)
}

// ControllerOf returns the DID that controls the did:key verification method
// identified by id.
func ControllerOf(id string) (did.DID, error) {
	base, fragment, ok := strings.Cut(id, "#")
	if !ok {
		return did.Undef, ErrMissingFragment
	}
	if !strings.HasPrefix(base, KeyPrefix) {
		return did.Undef, ErrNotDIDKey
	}
	msid := strings.TrimPrefix(base, KeyPrefix)
	if fragment != msid {
		return did.Undef, ErrFragmentMismatch
	}

	enc, b, err := multibase.Decode(msid)
	if err != nil {
		return did.Undef, fmt.Errorf("decoding multibase key: %w", err)
	}
	if enc != multibase.Base58BTC {
		return did.Undef, fmt.Errorf("unexpected multibase encoding: %s", multibase.EncodingToStr[enc])
	}

	code, n, err := varint.FromUvarint(b)
	if err != nil {
		return did.Undef, fmt.Errorf("reading key multicodec: %w", err)
	}
	size, ok := keySizes[multicodec.Code(code)]
	if !ok {
		return did.Undef, fmt.Errorf("%w: %s", ErrUnsupportedKeyType, multicodec.Code(code))
	}
	if len(b)-n != size {
		return did.Undef, fmt.Errorf("invalid %s key length: %d wanted: %d", multicodec.Code(code), len(b)-n, size)
	}

	return did.Parse(base)
}
