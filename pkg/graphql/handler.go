package graphql

import (
	"net/http"

	gql "github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// HandlerOption configures the HTTP adapter.
type HandlerOption func(*handler.Config)

// WithPretty indents JSON responses.
func WithPretty() HandlerOption {
	return func(c *handler.Config) {
		c.Pretty = true
	}
}

// WithPlayground serves the GraphQL Playground to browsers on GET.
func WithPlayground() HandlerOption {
	return func(c *handler.Config) {
		c.Playground = true
	}
}

// NewHandler returns an http.Handler executing requests against schema.
func NewHandler(schema gql.Schema, opts ...HandlerOption) http.Handler {
	cfg := &handler.Config{
		Schema: &schema,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return handler.New(cfg)
}
