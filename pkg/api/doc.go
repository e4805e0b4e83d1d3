// Package api bootstraps the GraphQL service started by the conch CLI.
//
// NewRunServer returns the function cli.Main calls once flags are parsed.
// It resolves the log level, builds and finalizes the schema (running the
// caller's extension hook), runs the pre-serve hook, resolves host and port
// from the environment and then binds the listener:
//
//	log := logging.New("conch", os.Stderr)
//	run := api.NewRunServer("CONCH", 4000, "0.0.0.0", log,
//	    api.WithExtendSchema(func(ctx context.Context, b *graphql.Builder, args *cli.ParsedArguments) (*graphql.Builder, error) {
//	        return b, b.AddQueryField("uptime", uptimeField)
//	    }),
//	)
//	err := cli.NewMain("conch", "CONCH", nil, info, run).Execute(ctx)
//
// Hook failures, schema errors and bind failures are returned as structured
// errors and are not retried.
package api
