// Package graphql assembles the GraphQL type graph served by a conch
// service.
//
// A Builder starts with a Query root exposing the service description as the
// "info" field and a Date scalar (RFC 3339). Callers attach their own fields
// and types, then call ToSchema once. Mutation and subscription roots exist
// only when enabled with WithMutations and WithSubscriptions, and are left out
// of the finalized schema while they have no fields.
//
// NewHandler serves a finalized schema over HTTP (GET and POST, JSON).
package graphql
