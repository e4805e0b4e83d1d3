/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"strconv"

	"github.com/NVIDIA/conch/pkg/config"
)

const (
	// FlagHelp is the built-in help entry.
	FlagHelp = "help"

	// FlagVersion is the built-in version entry.
	FlagVersion = "version"

	// FlagLogLevel is the built-in log level entry.
	FlagLogLevel = "log_level"
)

// Dictionary is the merged, ordered table of accepted flags.
// It is not modified after BuildDictionary returns.
type Dictionary struct {
	name    string
	entries []FlagSpec
	index   map[string]int
}

// BuildDictionary merges the built-in help, version and log_level entries with
// the caller's flags. Caller entries sharing a built-in key replace it in
// place; other caller entries follow in the order given.
func BuildDictionary(name string, flags []FlagSpec, envPrefix string) *Dictionary {
	d := &Dictionary{
		name:  name,
		index: make(map[string]int),
	}

	builtins := []FlagSpec{
		{
			Name:        FlagHelp,
			Short:       "h",
			Type:        TypeBoolean,
			Description: "Show help",
			Action:      Action{Kind: ActionHelp},
			Exit:        true,
		},
		{
			Name:        FlagVersion,
			Short:       "v",
			Type:        TypeBoolean,
			Description: "Show version",
			Action:      Action{Kind: ActionVersion},
			Exit:        true,
		},
		{
			Name:        FlagLogLevel,
			Short:       "l",
			Type:        TypeString,
			Description: "Set the log level",
			Env:         config.NewEnv(envPrefix).Name("LOG_LEVEL"),
			Action:      Action{Kind: ActionLogLevel},
		},
	}

	for _, f := range append(builtins, flags...) {
		if f.Type == "" {
			f.Type = TypeBoolean
		}
		if i, ok := d.index[f.Name]; ok {
			d.entries[i] = f
			continue
		}
		d.index[f.Name] = len(d.entries)
		d.entries = append(d.entries, f)
	}

	return d
}

// Name returns the application name the dictionary was built for.
func (d *Dictionary) Name() string {
	return d.name
}

// Entries returns a copy of the entries in order.
func (d *Dictionary) Entries() []FlagSpec {
	out := make([]FlagSpec, len(d.entries))
	copy(out, d.entries)
	return out
}

// Lookup returns the entry for name.
func (d *Dictionary) Lookup(name string) (FlagSpec, bool) {
	i, ok := d.index[name]
	if !ok {
		return FlagSpec{}, false
	}
	return d.entries[i], true
}

// Names returns the entry names of the given type, in order.
func (d *Dictionary) Names(t ValueType) []string {
	var names []string
	for _, e := range d.entries {
		if e.Type == t {
			names = append(names, e.Name)
		}
	}
	return names
}

// Aliases maps each entry name to its short alias.
func (d *Dictionary) Aliases() map[string]string {
	aliases := make(map[string]string, len(d.entries))
	for _, e := range d.entries {
		if e.Short != "" {
			aliases[e.Name] = e.Short
		}
	}
	return aliases
}

// Resolve returns the value of the named flag: the command line value when it
// was supplied, otherwise the entry's environment variable when it is set.
func (d *Dictionary) Resolve(args *ParsedArguments, name string, env config.Lookuper) (string, bool) {
	spec, ok := d.Lookup(name)
	if !ok {
		return "", false
	}

	if v, ok := args.Value(name); ok {
		switch t := v.(type) {
		case bool:
			return strconv.FormatBool(t), true
		case string:
			return t, true
		}
	}

	if spec.Env != "" && env != nil {
		return env.LookupEnv(spec.Env)
	}
	return "", false
}

func (d *Dictionary) byFlagName(flag string) (FlagSpec, bool) {
	for _, e := range d.entries {
		if FlagName(e.Name) == FlagName(flag) {
			return e, true
		}
	}
	return FlagSpec{}, false
}

func (d *Dictionary) byShort(short string) (FlagSpec, bool) {
	for _, e := range d.entries {
		if e.Short == short {
			return e, true
		}
	}
	return FlagSpec{}, false
}
