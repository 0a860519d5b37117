// Package invocation parses the command line and environment of wasupdoc.
package invocation

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
)

// Name is the name of the command.
const Name = "wasupdoc"

// PassphraseEnvVar names the environment variable holding the passphrase of
// an encrypted SSH key.
const PassphraseEnvVar = "WASUPDOC_SSH_PASSPHRASE"

// Options are the values parsed from the command line.
type Options struct {
	Help    bool
	Version bool
	// Controller is a DID or the path to an SSH private key. Empty if not given.
	Controller string
	// PassphraseSSMParameter names an AWS SSM parameter holding the passphrase.
	PassphraseSSMParameter string
	AskPassphrase          bool
	Positionals            []string
}

// Env is the part of the process environment wasupdoc reads.
type Env struct {
	// Passphrase for an encrypted SSH key. Empty if not set.
	Passphrase string
}

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// UsageError is a malformed command line.
type UsageError struct {
	Err error
}

func (e UsageError) Error() string {
	return fmt.Sprintf("usage: %s", e.Err)
}

func (e UsageError) Unwrap() error {
	return e.Err
}

// EnvFrom snapshots the environment through lookup.
func EnvFrom(lookup LookupFunc) Env {
	var env Env
	if lookup == nil {
		return env
	}
	if v, ok := lookup(PassphraseEnvVar); ok {
		env.Passphrase = v
	}
	return env
}

// Parse parses args, the command line without the program name, and reads
// the environment through lookup. It has no other side effects.
func Parse(args []string, lookup LookupFunc) (Options, Env, error) {
	var opts Options
	app := &cli.App{
		Name:        Name,
		HideHelp:    true,
		HideVersion: true,
		Writer:      io.Discard,
		ErrWriter:   io.Discard,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "controller",
				Usage:       "DID or path to an SSH private key to set as doc.controller",
				Destination: &opts.Controller,
			},
			&cli.BoolFlag{
				Name:        "help",
				Aliases:     []string{"h"},
				Usage:       "show this help",
				Destination: &opts.Help,
			},
			&cli.BoolFlag{
				Name:        "version",
				Usage:       "show the version",
				Destination: &opts.Version,
			},
			&cli.StringFlag{
				Name:        "passphrase-ssm-parameter",
				Usage:       "name of an AWS SSM parameter holding the SSH key passphrase",
				Destination: &opts.PassphraseSSMParameter,
			},
			&cli.BoolFlag{
				Name:        "ask-passphrase",
				Usage:       "prompt for the SSH key passphrase on the terminal",
				Destination: &opts.AskPassphrase,
			},
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return UsageError{Err: err}
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.Args().Present() {
				opts.Positionals = cCtx.Args().Slice()
			}
			if opts.Help {
				return nil
			}
			if strings.HasPrefix(opts.Controller, "-") {
				return UsageError{Err: fmt.Errorf("option --controller requires a value, got %q", opts.Controller)}
			}
			if len(opts.Positionals) > 0 {
				return UsageError{Err: fmt.Errorf("unexpected argument %q", opts.Positionals[0])}
			}
			return nil
		},
	}

	if err := app.Run(append([]string{Name}, args...)); err != nil {
		return Options{}, Env{}, err
	}
	return opts, EnvFrom(lookup), nil
}
