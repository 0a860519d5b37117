// Package passphrase provides the places a passphrase for an encrypted SSH
// private key can come from.
package passphrase

import (
	"context"
	"errors"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("passphrase")

// ErrNoPassphrase means that a configured source held an empty value.
var ErrNoPassphrase = errors.New("no value for passphrase")

// Source supplies a passphrase on demand. A nil passphrase with a nil error
// means no passphrase is configured.
type Source interface {
	Passphrase(ctx context.Context) ([]byte, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context) ([]byte, error)

func (f SourceFunc) Passphrase(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

type static struct {
	value string
}

// Static returns a Source for a fixed value, typically read from the
// environment. An empty value is treated as absent.
func Static(value string) Source {
	return static{value}
}

func (s static) Passphrase(context.Context) ([]byte, error) {
	if s.value == "" {
		return nil, nil
	}
	return []byte(s.value), nil
}

// None is a Source that never has a passphrase.
var None Source = Static("")
