package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"k8s.io/utils/ptr"

	"github.com/NVIDIA/conch/pkg/cli"
	"github.com/NVIDIA/conch/pkg/config"
	concherrors "github.com/NVIDIA/conch/pkg/errors"
	"github.com/NVIDIA/conch/pkg/graphql"
	"github.com/NVIDIA/conch/pkg/logging"
	"github.com/NVIDIA/conch/pkg/server"
	"github.com/NVIDIA/conch/pkg/validator"
	"github.com/NVIDIA/conch/pkg/version"
)

const (
	// DefaultLogLevel applies when neither the flag nor the environment sets one.
	DefaultLogLevel = "info"
	// GraphQLPath is the route serving the schema.
	GraphQLPath = "/graphql"
)

// ExtendSchemaFunc attaches caller types and fields to the builder. The
// returned builder is the one finalized; returning nil keeps b.
type ExtendSchemaFunc func(ctx context.Context, b *graphql.Builder, args *cli.ParsedArguments) (*graphql.Builder, error)

// BeforeServeFunc runs after the schema is finalized and before the listener
// is bound.
type BeforeServeFunc func(ctx context.Context, args *cli.ParsedArguments) error

// ResolvedServerConfig is the configuration the listener is started with.
type ResolvedServerConfig struct {
	Name     string
	Version  string
	Host     string
	Port     int
	LogLevel string
	Server   server.Config
	Logger   *slog.Logger
}

// ServeFunc binds and serves handler until ctx is cancelled.
type ServeFunc func(ctx context.Context, cfg ResolvedServerConfig, handler http.Handler) error

type bootstrap struct {
	envPrefix   string
	defaultPort int
	defaultHost string
	log         *logging.Config

	env          config.Lookuper
	extend       ExtendSchemaFunc
	beforeServe  BeforeServeFunc
	serve        ServeFunc
	version      string
	serverConfig *server.Config
	schemaOpts   []graphql.Option
	handlerOpts  []graphql.HandlerOption
}

// Option configures the function returned by NewRunServer.
type Option func(*bootstrap)

// WithExtendSchema sets the schema extension hook.
func WithExtendSchema(fn ExtendSchemaFunc) Option {
	return func(b *bootstrap) {
		b.extend = fn
	}
}

// WithBeforeServe sets the hook run before the listener is bound.
func WithBeforeServe(fn BeforeServeFunc) Option {
	return func(b *bootstrap) {
		b.beforeServe = fn
	}
}

// WithEnv replaces the process environment as the source of
// <PREFIX>_LOG_LEVEL, <PREFIX>_HOST and <PREFIX>_PORT.
func WithEnv(env config.Lookuper) Option {
	return func(b *bootstrap) {
		b.env = env
	}
}

// WithServe replaces the listener. Defaults to Serve.
func WithServe(fn ServeFunc) Option {
	return func(b *bootstrap) {
		b.serve = fn
	}
}

// WithVersion sets the version reported by the server. Defaults to the
// build version.
func WithVersion(v string) Option {
	return func(b *bootstrap) {
		b.version = v
	}
}

// WithServerConfig sets the server timeouts. Address and port are always
// taken from the resolved configuration.
func WithServerConfig(cfg *server.Config) Option {
	return func(b *bootstrap) {
		b.serverConfig = cfg
	}
}

// WithSchemaOptions passes options to the schema builder, e.g.
// graphql.WithMutations.
func WithSchemaOptions(opts ...graphql.Option) Option {
	return func(b *bootstrap) {
		b.schemaOpts = append(b.schemaOpts, opts...)
	}
}

// WithHandlerOptions passes options to the GraphQL HTTP handler.
func WithHandlerOptions(opts ...graphql.HandlerOption) Option {
	return func(b *bootstrap) {
		b.handlerOpts = append(b.handlerOpts, opts...)
	}
}

// NewRunServer returns the server entry point for cli.Main. Host and port are
// read from <envPrefix>_HOST and <envPrefix>_PORT and fall back to
// defaultHost and defaultPort when absent or invalid. log is the logger whose
// level the --log-level flag controls; nil creates one on stderr.
func NewRunServer(envPrefix string, defaultPort int, defaultHost string, log *logging.Config, opts ...Option) cli.RunServerFunc {
	b := &bootstrap{
		envPrefix:   envPrefix,
		defaultPort: defaultPort,
		defaultHost: defaultHost,
		log:         log,
		serve:       Serve,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.env == nil {
		b.env = config.NewEnv(envPrefix)
	}
	if b.version == "" {
		b.version = version.Get().Version
	}
	return b.run
}

func (b *bootstrap) run(ctx context.Context, name, info string, args *cli.ParsedArguments) error {
	start := time.Now()
	if b.log == nil {
		b.log = logging.New(name, nil)
	}
	logger := b.log.Logger()

	level := b.resolveLogLevel(args)
	if err := b.log.SetLevel(level); err != nil {
		return concherrors.Wrap(concherrors.ErrCodeInternal, "failed to apply log level", err)
	}

	handler, err := b.buildHandler(ctx, info, args)
	if err != nil {
		startupTotal.WithLabelValues(statusError).Inc()
		return err
	}

	if b.beforeServe != nil {
		if err := b.beforeServe(ctx, args); err != nil {
			startupTotal.WithLabelValues(statusError).Inc()
			return concherrors.Wrap(concherrors.ErrCodeInternal, "pre-serve hook failed", err)
		}
	}

	env := config.NewEnv(b.envPrefix)
	cfg := ResolvedServerConfig{
		Name:     name,
		Version:  b.version,
		Port:     validator.ValidatePort(b.envPrefix, b.lookup(env.Name("PORT")), b.defaultPort, logger),
		Host:     validator.ValidateHost(b.envPrefix, b.lookup(env.Name("HOST")), b.defaultHost, logger),
		LogLevel: level,
		Logger:   logger,
	}
	if b.serverConfig != nil {
		cfg.Server = *b.serverConfig
	} else {
		cfg.Server = *server.DefaultConfig()
	}

	startupDuration.Observe(time.Since(start).Seconds())
	startupTotal.WithLabelValues(statusSuccess).Inc()
	logger.Debug("starting listener", "name", name, "host", cfg.Host, "port", cfg.Port, "log_level", level)

	return b.serve(ctx, cfg, handler)
}

// resolveLogLevel prefers the flag, then <PREFIX>_LOG_LEVEL, then
// DefaultLogLevel. Empty values count as unset.
func (b *bootstrap) resolveLogLevel(args *cli.ParsedArguments) string {
	envName := config.NewEnv(b.envPrefix).Name("LOG_LEVEL")

	input, name := (*string)(nil), envName
	if v, ok := args.String(cli.FlagLogLevel); ok && v != "" {
		input, name = ptr.To(v), "--"+cli.FlagName(cli.FlagLogLevel)
	} else if v := b.lookup(envName); v != nil && *v != "" {
		input = v
	}

	return validator.Validate(input, DefaultLogLevel, logging.IsValidLevel, name, b.log.Logger())
}

func (b *bootstrap) buildHandler(ctx context.Context, info string, args *cli.ParsedArguments) (http.Handler, error) {
	builder := graphql.NewBuilder(info, b.schemaOpts...)

	if b.extend != nil {
		extended, err := b.extend(ctx, builder, args)
		if err != nil {
			return nil, concherrors.Wrap(concherrors.ErrCodeInternal, "schema extension failed", err)
		}
		if extended != nil {
			builder = extended
		}
	}

	schema, err := builder.ToSchema()
	if err != nil {
		return nil, concherrors.Wrap(concherrors.ErrCodeInternal, "failed to finalize schema", err)
	}

	return graphql.NewHandler(schema, b.handlerOpts...), nil
}

func (b *bootstrap) lookup(name string) *string {
	if v, ok := b.env.LookupEnv(name); ok {
		return ptr.To(v)
	}
	return nil
}

// Serve runs a server.Server for cfg with handler mounted at GraphQLPath,
// logging "<name> graphQL api is running on <host>:<port>" once bound.
func Serve(ctx context.Context, cfg ResolvedServerConfig, handler http.Handler) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sc := cfg.Server
	sc.Address = cfg.Host
	sc.Port = cfg.Port

	s := server.New(
		server.WithName(cfg.Name),
		server.WithVersion(cfg.Version),
		server.WithConfig(&sc),
		server.WithLogger(logger),
		server.WithHandler(map[string]http.Handler{GraphQLPath: handler}),
		server.WithOnListen(func(addr net.Addr) {
			port := cfg.Port
			if tcp, ok := addr.(*net.TCPAddr); ok {
				port = tcp.Port
			}
			logger.Info(fmt.Sprintf("%s graphQL api is running on %s:%d", cfg.Name, cfg.Host, port))
		}),
	)

	return s.Run(ctx)
}
