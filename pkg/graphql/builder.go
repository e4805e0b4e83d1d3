package graphql

import (
	"errors"
	"fmt"
	"sync"

	gql "github.com/graphql-go/graphql"
)

const (
	// InfoField is the query field returning the service description.
	InfoField = "info"
	// DateScalar is the name of the date-time scalar.
	DateScalar = "Date"
)

var (
	// ErrFinalized is returned when the builder is used after ToSchema.
	ErrFinalized = errors.New("schema builder already finalized")
	// ErrRootDisabled is returned when adding a field to a root type that was
	// not enabled.
	ErrRootDisabled = errors.New("root type not enabled")
)

// Builder collects the fields and types of a schema until it is finalized.
type Builder struct {
	mu sync.Mutex

	info          string
	mutations     bool
	subscriptions bool
	finalized     bool

	date         *gql.Scalar
	query        gql.Fields
	mutation     gql.Fields
	subscription gql.Fields
	types        []gql.Type
	typeNames    map[string]struct{}
}

// Option configures a Builder.
type Option func(*Builder)

// WithMutations enables the Mutation root.
func WithMutations() Option {
	return func(b *Builder) {
		b.mutations = true
	}
}

// WithSubscriptions enables the Subscription root.
func WithSubscriptions() Option {
	return func(b *Builder) {
		b.subscriptions = true
	}
}

// NewBuilder returns a builder whose Query root resolves "info" to info.
func NewBuilder(info string, opts ...Option) *Builder {
	b := &Builder{
		info:         info,
		query:        gql.Fields{},
		mutation:     gql.Fields{},
		subscription: gql.Fields{},
		typeNames:    map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(b)
	}

	b.date = gql.NewScalar(gql.ScalarConfig{
		Name:         DateScalar,
		Description:  "A date-time string in RFC 3339 format.",
		Serialize:    gql.DateTime.Serialize,
		ParseValue:   gql.DateTime.ParseValue,
		ParseLiteral: gql.DateTime.ParseLiteral,
	})
	b.types = append(b.types, b.date)
	b.typeNames[DateScalar] = struct{}{}

	b.query[InfoField] = &gql.Field{
		Type:        gql.String,
		Description: "Service description.",
		Resolve: func(gql.ResolveParams) (any, error) {
			return info, nil
		},
	}
	return b
}

// Info returns the service description.
func (b *Builder) Info() string {
	return b.info
}

// Date returns the Date scalar for use in caller fields.
func (b *Builder) Date() *gql.Scalar {
	return b.date
}

// MutationsEnabled reports whether the Mutation root is enabled.
func (b *Builder) MutationsEnabled() bool {
	return b.mutations
}

// SubscriptionsEnabled reports whether the Subscription root is enabled.
func (b *Builder) SubscriptionsEnabled() bool {
	return b.subscriptions
}

// AddQueryField adds a field to the Query root.
func (b *Builder) AddQueryField(name string, field *gql.Field) error {
	return b.addField("Query", b.query, true, name, field)
}

// AddMutationField adds a field to the Mutation root.
func (b *Builder) AddMutationField(name string, field *gql.Field) error {
	return b.addField("Mutation", b.mutation, b.mutations, name, field)
}

// AddSubscriptionField adds a field to the Subscription root. The field's
// Subscribe function produces the event stream.
func (b *Builder) AddSubscriptionField(name string, field *gql.Field) error {
	return b.addField("Subscription", b.subscription, b.subscriptions, name, field)
}

// AddType registers a named type that is not reachable from a root field,
// e.g. an implementation of an interface.
func (b *Builder) AddType(t gql.Type) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finalized {
		return ErrFinalized
	}
	if t == nil || t.Name() == "" {
		return errors.New("type must be named")
	}
	if _, ok := b.typeNames[t.Name()]; ok {
		return fmt.Errorf("type %q already registered", t.Name())
	}
	b.typeNames[t.Name()] = struct{}{}
	b.types = append(b.types, t)
	return nil
}

// ToSchema finalizes the builder and returns the schema. It succeeds at most
// once; later calls and additions return ErrFinalized.
func (b *Builder) ToSchema() (gql.Schema, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finalized {
		return gql.Schema{}, ErrFinalized
	}
	b.finalized = true

	cfg := gql.SchemaConfig{
		Query: gql.NewObject(gql.ObjectConfig{Name: "Query", Fields: b.query}),
		Types: b.types,
	}
	if b.mutations && len(b.mutation) > 0 {
		cfg.Mutation = gql.NewObject(gql.ObjectConfig{Name: "Mutation", Fields: b.mutation})
	}
	if b.subscriptions && len(b.subscription) > 0 {
		cfg.Subscription = gql.NewObject(gql.ObjectConfig{Name: "Subscription", Fields: b.subscription})
	}

	schema, err := gql.NewSchema(cfg)
	if err != nil {
		return gql.Schema{}, fmt.Errorf("invalid schema: %w", err)
	}
	return schema, nil
}

func (b *Builder) addField(root string, fields gql.Fields, enabled bool, name string, field *gql.Field) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finalized {
		return ErrFinalized
	}
	if !enabled {
		return fmt.Errorf("%s: %w", root, ErrRootDisabled)
	}
	if name == "" || field == nil {
		return fmt.Errorf("%s: field name and definition are required", root)
	}
	if _, ok := fields[name]; ok {
		return fmt.Errorf("%s.%s already defined", root, name)
	}
	fields[name] = field
	return nil
}
