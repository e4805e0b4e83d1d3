// Package config resolves environment configuration for a service prefix.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Lookuper looks up a fully qualified environment variable.
type Lookuper interface {
	LookupEnv(name string) (string, bool)
}

// Env reads <PREFIX>_<KEY> variables. A variable that is set to the empty
// string is reported as present.
type Env struct {
	prefix string
	v      *viper.Viper
}

// NewEnv creates an Env for prefix, e.g. "CONCH".
func NewEnv(prefix string) *Env {
	v := viper.New()
	v.AllowEmptyEnv(true)
	return &Env{
		prefix: strings.ToUpper(prefix),
		v:      v,
	}
}

// Prefix returns the upper-cased prefix.
func (e *Env) Prefix() string {
	return e.prefix
}

// Name returns the variable name for key: Name("log-level") is "<PREFIX>_LOG_LEVEL".
func (e *Env) Name(key string) string {
	key = strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))
	if e.prefix == "" {
		return key
	}
	return e.prefix + "_" + key
}

// Get returns the value of the variable for key and whether it is set.
func (e *Env) Get(key string) (string, bool) {
	return e.LookupEnv(e.Name(key))
}

// LookupEnv returns the value of the named variable and whether it is set.
func (e *Env) LookupEnv(name string) (string, bool) {
	k := strings.ToLower(name)
	// BindEnv only fails without arguments.
	_ = e.v.BindEnv(k, name)
	if !e.v.IsSet(k) {
		return "", false
	}
	return e.v.GetString(k), true
}

// Map is a fixed Lookuper, mostly useful in tests.
type Map map[string]string

// LookupEnv implements Lookuper.
func (m Map) LookupEnv(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
