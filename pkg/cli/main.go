/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/NVIDIA/conch/pkg/version"
)

// RunServerFunc starts the service for the application name, exposing info,
// with the parsed arguments. It is typically built by api.NewRunServer.
type RunServerFunc func(ctx context.Context, name, info string, args *ParsedArguments) error

// CustomActionFunc handles a flag whose Action kind is ActionCustom.
type CustomActionFunc func(ctx context.Context, spec FlagSpec, args *ParsedArguments) error

// Main parses the command line, dispatches flag actions and starts the server
// unless a terminating flag was supplied.
type Main struct {
	name      string
	envPrefix string
	info      string
	flags     []FlagSpec
	runServer RunServerFunc

	out      io.Writer
	log      *slog.Logger
	version  string
	manifest string
	custom   CustomActionFunc
	exit     func(code int)
}

// MainOption configures a Main.
type MainOption func(*Main)

// WithOutput sets where help and version text is written. Defaults to stdout.
func WithOutput(w io.Writer) MainOption {
	return func(m *Main) {
		m.out = w
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(log *slog.Logger) MainOption {
	return func(m *Main) {
		m.log = log
	}
}

// WithVersion overrides the version printed by --version.
func WithVersion(v string) MainOption {
	return func(m *Main) {
		m.version = v
	}
}

// WithManifest sets a manifest file (e.g. deno.json) read for the version
// when the binary was built without one.
func WithManifest(path string) MainOption {
	return func(m *Main) {
		m.manifest = path
	}
}

// WithCustomAction installs the handler for ActionCustom flags.
func WithCustomAction(fn CustomActionFunc) MainOption {
	return func(m *Main) {
		m.custom = fn
	}
}

// WithExit installs a function called with code 0 when a terminating flag
// ends the run, e.g. os.Exit. Without it Run simply returns.
func WithExit(fn func(code int)) MainOption {
	return func(m *Main) {
		m.exit = fn
	}
}

// NewMain creates the orchestrator for application name. flags are merged
// with the built-in entries; info is forwarded to runServer.
func NewMain(name, envPrefix string, flags []FlagSpec, info string, runServer RunServerFunc, opts ...MainOption) *Main {
	m := &Main{
		name:      name,
		envPrefix: envPrefix,
		info:      info,
		flags:     flags,
		runServer: runServer,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	return m
}

// Run parses argv and dispatches actions of the supplied flags in dictionary
// order. The first terminating flag ends the run after its action; later
// flags are ignored and the server is not started. Otherwise runServer is
// invoked with the parsed arguments.
func (m *Main) Run(ctx context.Context, argv []string) error {
	d := BuildDictionary(m.name, m.flags, m.envPrefix)

	args, err := Parse(argv, d)
	if err != nil {
		return err
	}

	for _, tok := range args.Unknown {
		if s, ok := Suggest(d, tok); ok {
			m.log.Warn("unknown flag ignored", "flag", tok, "suggestion", s)
			continue
		}
		m.log.Warn("unknown flag ignored", "flag", tok)
	}

	for _, key := range args.Keys() {
		spec, ok := d.Lookup(key)
		if !ok {
			continue
		}
		if spec.Type == TypeBoolean && !args.Bool(key) {
			continue
		}

		if err := m.dispatch(ctx, d, spec, args); err != nil {
			return err
		}

		if spec.Exit {
			m.log.Debug("terminating flag supplied", "flag", key)
			if m.exit != nil {
				m.exit(0)
			}
			return nil
		}
	}

	if m.runServer == nil {
		return fmt.Errorf("%s: no server entry point configured", m.name)
	}
	return m.runServer(ctx, m.name, m.info, args)
}

// Execute runs with the process arguments.
func (m *Main) Execute(ctx context.Context) error {
	return m.Run(ctx, os.Args[1:])
}

func (m *Main) dispatch(ctx context.Context, d *Dictionary, spec FlagSpec, args *ParsedArguments) error {
	switch spec.Action.Kind {
	case ActionHelp:
		return PrintHelp(m.out, d)
	case ActionVersion:
		return PrintVersion(m.out, m.name, m.resolveVersion())
	case ActionLogLevel:
		v, _ := args.String(spec.Name)
		m.log.Debug("log level requested", "level", v)
		return nil
	case ActionCustom:
		if m.custom == nil {
			m.log.Debug("no handler for custom flag action", "flag", spec.Name, "payload", spec.Action.Payload)
			return nil
		}
		if err := m.custom(ctx, spec, args); err != nil {
			return fmt.Errorf("flag %q: %w", spec.Name, err)
		}
		return nil
	default:
		return nil
	}
}

func (m *Main) resolveVersion() string {
	if m.version != "" {
		return m.version
	}
	return version.Resolve(m.manifest).Version
}
