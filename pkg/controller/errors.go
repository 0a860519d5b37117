package controller

import (
	"fmt"
)

// MissingIdentityError means there was neither a DID nor a key path to
// resolve.
type MissingIdentityError struct{}

func (MissingIdentityError) Error() string {
	return "unable to create signer from empty identity"
}

// FileNotFoundError means the key path does not name an existing file.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e FileNotFoundError) Error() string {
	return fmt.Sprintf("file at path does not exist: %s", e.Path)
}

func (e FileNotFoundError) Unwrap() error {
	return e.Err
}

// KeyParseError means the key file contents, or the passphrase used to
// decrypt them, were rejected.
type KeyParseError struct {
	Path string
	Err  error
}

func (e KeyParseError) Error() string {
	return fmt.Sprintf("parsing private key %s: %s", e.Path, e.Err)
}

func (e KeyParseError) Unwrap() error {
	return e.Err
}

// PassphraseError means the passphrase for an encrypted key could not be
// obtained from its source.
type PassphraseError struct {
	Path string
	Err  error
}

func (e PassphraseError) Error() string {
	return fmt.Sprintf("obtaining passphrase for %s: %s", e.Path, e.Err)
}

func (e PassphraseError) Unwrap() error {
	return e.Err
}

// SignerConstructionError means a parsed private key could not be turned
// into a signer.
type SignerConstructionError struct {
	Path string
	Err  error
}

func (e SignerConstructionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unable to create signer from %s", e.Path)
	}
	return fmt.Sprintf("unable to create signer from %s: %s", e.Path, e.Err)
}

func (e SignerConstructionError) Unwrap() error {
	return e.Err
}

// ControllerResolutionError means no controller DID could be derived from
// the verification method of a signer.
type ControllerResolutionError struct {
	VerificationMethodID string
	Err                  error
}

func (e ControllerResolutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unable to determine controller DID of signer id %q", e.VerificationMethodID)
	}
	return fmt.Sprintf("unable to determine controller DID of signer id %q: %s", e.VerificationMethodID, e.Err)
}

func (e ControllerResolutionError) Unwrap() error {
	return e.Err
}
