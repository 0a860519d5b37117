package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/did-coop/wasupdoc/pkg/build"
	"github.com/did-coop/wasupdoc/pkg/controller"
	"github.com/did-coop/wasupdoc/pkg/document"
	"github.com/did-coop/wasupdoc/pkg/invocation"
	"github.com/did-coop/wasupdoc/pkg/passphrase"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("cmd")

func main() {
	logging.SetLogLevel("*", "info")

	if err := run(context.Background(), os.Args[1:], os.LookupEnv, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run generates a document for the given command line and environment and
// writes it, or the help text, to stdout.
func run(ctx context.Context, args []string, lookup invocation.LookupFunc, stdout io.Writer) error {
	opts, env, err := invocation.Parse(args, lookup)
	if err != nil {
		return err
	}

	if opts.Help {
		_, err := fmt.Fprintln(stdout, invocation.Help)
		return err
	}
	if opts.Version {
		_, err := fmt.Fprintln(stdout, build.Version)
		return err
	}

	resolver := controller.NewResolver(controller.WithPassphrase(passphraseSource(opts, env)))
	did, err := resolver.Resolve(ctx, opts.Controller)
	if err != nil {
		return err
	}

	return document.Write(stdout, document.New(did))
}

func passphraseSource(opts invocation.Options, env invocation.Env) passphrase.Source {
	switch {
	case opts.PassphraseSSMParameter != "":
		return passphrase.NewSSM(opts.PassphraseSSMParameter)
	case opts.AskPassphrase:
		return passphrase.NewTerminal(os.Stderr, int(os.Stdin.Fd()))
	default:
		return passphrase.Static(env.Passphrase)
	}
}
