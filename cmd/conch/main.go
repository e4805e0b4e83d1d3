package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/NVIDIA/conch/pkg/api"
	"github.com/NVIDIA/conch/pkg/cli"
	"github.com/NVIDIA/conch/pkg/logging"
	"github.com/NVIDIA/conch/pkg/version"
)

const (
	name        = "conch"
	envPrefix   = "CONCH"
	defaultPort = 4000
	defaultHost = "0.0.0.0"
	info        = "conch common cli tools: a GraphQL service bootstrapped from flags and environment"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.SetDefaultStructuredLogger(name, version.Get().Version)

	if err := run(ctx, os.Stdout, log, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run wires the orchestrator to the GraphQL bootstrapper and executes argv.
func run(ctx context.Context, out io.Writer, log *logging.Config, argv []string, opts ...api.Option) error {
	runServer := api.NewRunServer(envPrefix, defaultPort, defaultHost, log, opts...)
	m := cli.NewMain(name, envPrefix, nil, info, runServer,
		cli.WithOutput(out),
		cli.WithLogger(log.Logger()),
	)

	return m.Run(ctx, argv)
}
