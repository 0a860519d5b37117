package passphrase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"
)

// ErrNotTerminal means a prompt was requested but input is not a terminal.
var ErrNotTerminal = errors.New("cannot prompt for passphrase: input is not a terminal")

const prompt = "Enter passphrase: "

type terminal struct {
	out        io.Writer
	fd         int
	isTerminal func(fd int) bool
	read       func(fd int) ([]byte, error)
}

// NewTerminal returns a Source that prompts on out and reads the passphrase,
// without echo, from the terminal open on fd.
func NewTerminal(out io.Writer, fd int) Source {
	return &terminal{
		out:        out,
		fd:         fd,
		isTerminal: term.IsTerminal,
		read:       term.ReadPassword,
	}
}

func (t *terminal) Passphrase(context.Context) ([]byte, error) {
	if !t.isTerminal(t.fd) {
		return nil, ErrNotTerminal
	}

	defer func() { _, _ = fmt.Fprintln(t.out) }()
	_, _ = fmt.Fprint(t.out, prompt)

	b, err := t.read(t.fd)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	return b, nil
}
