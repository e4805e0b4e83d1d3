package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverCall struct {
	calls int
	name  string
	info  string
	args  *ParsedArguments
}

func (s *serverCall) run(_ context.Context, name, info string, args *ParsedArguments) error {
	s.calls++
	s.name = name
	s.info = info
	s.args = args
	return nil
}

func newTestMain(flags []FlagSpec, srv *serverCall, out io.Writer, opts ...MainOption) *Main {
	base := []MainOption{
		WithOutput(out),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithVersion("1.2.3"),
	}
	return NewMain("conch", "CONCH", flags, "Conch GraphQL API", srv.run, append(base, opts...)...)
}

func TestMain_Run(t *testing.T) {
	tests := []struct {
		name        string
		argv        []string
		wantServer  bool
		wantOut     string
		wantContain string
	}{
		{name: "no flags starts server", argv: nil, wantServer: true},
		{name: "log level starts server", argv: []string{"-l", "debug"}, wantServer: true},
		{name: "version", argv: []string{"--version"}, wantOut: "conch v1.2.3\n"},
		{name: "version short", argv: []string{"-v"}, wantOut: "conch v1.2.3\n"},
		{name: "help", argv: []string{"--help"}, wantContain: "Usage: conch [OPTIONS...]"},
		{name: "help wins over version", argv: []string{"--version", "--help"}, wantContain: "Optional Flags:"},
		{name: "explicit false does not fire", argv: []string{"--help=false"}, wantServer: true},
		{name: "flags after double dash are ignored", argv: []string{"--", "--help"}, wantServer: true},
		{name: "unknown flags are ignored", argv: []string{"--bogus"}, wantServer: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			srv := &serverCall{}

			err := newTestMain(nil, srv, &out).Run(context.Background(), tt.argv)
			require.NoError(t, err)

			if tt.wantServer {
				assert.Equal(t, 1, srv.calls)
				assert.Empty(t, out.String())
				return
			}
			assert.Equal(t, 0, srv.calls, "server must not start")
			if tt.wantOut != "" {
				assert.Equal(t, tt.wantOut, out.String())
			}
			if tt.wantContain != "" {
				assert.Contains(t, out.String(), tt.wantContain)
				assert.NotContains(t, out.String(), "conch v1.2.3")
			}
		})
	}
}

func TestMain_VersionPrintedOnce(t *testing.T) {
	var out bytes.Buffer
	srv := &serverCall{}

	require.NoError(t, newTestMain(nil, srv, &out).Run(context.Background(), []string{"-v", "--version"}))
	assert.Equal(t, 1, strings.Count(out.String(), "conch v1.2.3"))
	assert.Equal(t, 0, srv.calls)
}

func TestMain_ServerReceivesArguments(t *testing.T) {
	var out bytes.Buffer
	srv := &serverCall{}
	flags := []FlagSpec{{Name: "endpoint", Short: "e", Type: TypeString}}

	err := newTestMain(flags, srv, &out).Run(context.Background(), []string{"-e", "http://x", "--", "rest"})
	require.NoError(t, err)

	require.Equal(t, 1, srv.calls)
	assert.Equal(t, "conch", srv.name)
	assert.Equal(t, "Conch GraphQL API", srv.info)
	v, ok := srv.args.String("endpoint")
	assert.True(t, ok)
	assert.Equal(t, "http://x", v)
	assert.Equal(t, []string{"rest"}, srv.args.PassThrough)
}

func TestMain_ExitHook(t *testing.T) {
	var out bytes.Buffer
	srv := &serverCall{}
	code := -1

	err := newTestMain(nil, srv, &out, WithExit(func(c int) { code = c })).Run(context.Background(), []string{"-h"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, 0, srv.calls)
}

func TestMain_CustomAction(t *testing.T) {
	flags := []FlagSpec{
		{Name: "schema", Short: "s", Description: "Print schema", Action: Action{Kind: ActionCustom, Payload: "sdl"}, Exit: true},
		{Name: "warm", Short: "w", Description: "Warm caches", Action: Action{Kind: ActionCustom, Payload: "warm"}},
	}

	t.Run("terminating custom flag", func(t *testing.T) {
		var out bytes.Buffer
		srv := &serverCall{}
		var got []string
		handler := func(_ context.Context, spec FlagSpec, _ *ParsedArguments) error {
			got = append(got, spec.Action.Payload)
			return nil
		}

		err := newTestMain(flags, srv, &out, WithCustomAction(handler)).Run(context.Background(), []string{"-s", "-w"})
		require.NoError(t, err)
		assert.Equal(t, []string{"sdl"}, got)
		assert.Equal(t, 0, srv.calls)
	})

	t.Run("non terminating custom flag", func(t *testing.T) {
		var out bytes.Buffer
		srv := &serverCall{}
		var got []string
		handler := func(_ context.Context, spec FlagSpec, _ *ParsedArguments) error {
			got = append(got, spec.Action.Payload)
			return nil
		}

		err := newTestMain(flags, srv, &out, WithCustomAction(handler)).Run(context.Background(), []string{"-w"})
		require.NoError(t, err)
		assert.Equal(t, []string{"warm"}, got)
		assert.Equal(t, 1, srv.calls)
	})

	t.Run("handler error", func(t *testing.T) {
		var out bytes.Buffer
		srv := &serverCall{}
		boom := errors.New("boom")
		handler := func(context.Context, FlagSpec, *ParsedArguments) error { return boom }

		err := newTestMain(flags, srv, &out, WithCustomAction(handler)).Run(context.Background(), []string{"-w"})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, srv.calls)
	})
}

func TestMain_Errors(t *testing.T) {
	t.Run("parse error", func(t *testing.T) {
		srv := &serverCall{}
		err := newTestMain(nil, srv, io.Discard).Run(context.Background(), []string{"--log-level"})
		assert.Error(t, err)
		assert.Equal(t, 0, srv.calls)
	})

	t.Run("server error propagates", func(t *testing.T) {
		boom := errors.New("bind failed")
		m := NewMain("conch", "CONCH", nil, "", func(context.Context, string, string, *ParsedArguments) error {
			return boom
		}, WithOutput(io.Discard))
		assert.ErrorIs(t, m.Run(context.Background(), nil), boom)
	})

	t.Run("missing server", func(t *testing.T) {
		m := NewMain("conch", "CONCH", nil, "", nil, WithOutput(io.Discard))
		assert.Error(t, m.Run(context.Background(), nil))
	})
}

func TestMain_ReassignedHelpAliasStartsServer(t *testing.T) {
	var out bytes.Buffer
	srv := &serverCall{}
	flags := []FlagSpec{{Name: FlagHelp, Short: "H", Description: "Show help", Action: Action{Kind: ActionHelp}, Exit: true}}

	require.NoError(t, newTestMain(flags, srv, &out).Run(context.Background(), []string{"-h"}))
	assert.Equal(t, 1, srv.calls)
	assert.Empty(t, out.String())
	assert.Equal(t, []string{"-h"}, srv.args.Unknown)
}

func TestMain_UnknownFlagWarning(t *testing.T) {
	var logs bytes.Buffer
	srv := &serverCall{}
	m := NewMain("conch", "CONCH", nil, "", srv.run,
		WithOutput(io.Discard),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	require.NoError(t, m.Run(context.Background(), []string{"--hlep"}))
	assert.Contains(t, logs.String(), "unknown flag ignored")
	assert.Contains(t, logs.String(), "suggestion=--help")
	assert.Equal(t, 1, srv.calls)
}
