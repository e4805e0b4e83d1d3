/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// ParsedArguments is the result of interpreting argv against a Dictionary.
// Only flags supplied on the command line are present.
type ParsedArguments struct {
	keys   []string
	values map[string]any

	// Positional holds non-flag arguments before "--".
	Positional []string

	// PassThrough holds every token after "--", verbatim.
	PassThrough []string

	// Unknown holds flag tokens that matched no entry. They are not rejected.
	Unknown []string
}

// Keys returns the supplied flag names in dictionary order.
func (p *ParsedArguments) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Has reports whether the flag was supplied.
func (p *ParsedArguments) Has(name string) bool {
	_, ok := p.Value(name)
	return ok
}

// Value returns the parsed value of a supplied flag: a bool or a string.
func (p *ParsedArguments) Value(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[name]
	return v, ok
}

// Bool returns the value of a boolean flag; false when absent.
func (p *ParsedArguments) Bool(name string) bool {
	v, _ := p.Value(name)
	b, _ := v.(bool)
	return b
}

// String returns the value of a string flag and whether it was supplied.
func (p *ParsedArguments) String(name string) (string, bool) {
	v, ok := p.Value(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Parse interprets argv using d. Boolean entries take no value, string entries
// take exactly one; each entry is also accepted by its short alias. Everything
// after a literal "--" is kept verbatim in PassThrough. On repeated flags the
// last one wins.
func Parse(argv []string, d *Dictionary) (*ParsedArguments, error) {
	fs := pflag.NewFlagSet(d.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(FlagName(name))
	})

	aliases := d.Aliases()
	if err := checkAliases(aliases); err != nil {
		return nil, err
	}

	bools := make(map[string]*bool)
	for _, name := range d.Names(TypeBoolean) {
		bools[name] = fs.BoolP(name, aliases[name], false, "")
	}
	strs := make(map[string]*string)
	for _, name := range d.Names(TypeString) {
		strs[name] = fs.StringP(name, aliases[name], "", "")
	}

	// pflag answers an undefined -h with ErrHelp; claim it so it is
	// reported as unknown like any other flag.
	if !claimed(aliases, "h") {
		fs.BoolP(unclaimedHelpShort, "h", false, "")
		_ = fs.MarkHidden(unclaimedHelpShort)
	}

	if err := fs.Parse(argv); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	p := &ParsedArguments{
		values:  make(map[string]any),
		Unknown: unknownFlags(argv, d),
	}

	for _, e := range d.Entries() {
		if !fs.Changed(e.Name) {
			continue
		}
		if s, ok := strs[e.Name]; ok {
			p.values[e.Name] = *s
		} else {
			p.values[e.Name] = *bools[e.Name]
		}
		p.keys = append(p.keys, e.Name)
	}

	rest := fs.Args()
	if n := fs.ArgsLenAtDash(); n >= 0 {
		p.Positional = append([]string{}, rest[:n]...)
		p.PassThrough = append([]string{}, rest[n:]...)
	} else {
		p.Positional = append([]string{}, rest...)
	}

	return p, nil
}

const unclaimedHelpShort = "unclaimed-h"

// checkAliases rejects aliases longer than one character and aliases shared
// by two entries.
func checkAliases(aliases map[string]string) error {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[string]string, len(aliases))
	for _, name := range names {
		short := aliases[name]
		if len(short) > 1 {
			return fmt.Errorf("flag %q: short alias %q must be a single character", name, short)
		}
		if other, ok := seen[short]; ok {
			return fmt.Errorf("flag %q: short alias %q is already used by %q", name, short, other)
		}
		seen[short] = name
	}
	return nil
}

func claimed(aliases map[string]string, short string) bool {
	for _, s := range aliases {
		if s == short {
			return true
		}
	}
	return false
}

// unknownFlags scans argv up to "--" for flag tokens that name no entry.
func unknownFlags(argv []string, d *Dictionary) []string {
	var unknown []string

	for i := 0; i < len(argv); i++ {
		a := argv[i]
		if a == "--" {
			break
		}
		if len(a) < 2 || a[0] != '-' {
			continue
		}

		if strings.HasPrefix(a, "--") {
			name, _, hasValue := strings.Cut(a[2:], "=")
			e, ok := d.byFlagName(name)
			if !ok {
				unknown = append(unknown, "--"+name)
				continue
			}
			if e.Type == TypeString && !hasValue {
				i++
			}
			continue
		}

		shorts := a[1:]
		for j := 0; j < len(shorts); j++ {
			c := shorts[j : j+1]
			if c == "=" {
				break
			}
			e, ok := d.byShort(c)
			if !ok {
				unknown = append(unknown, "-"+c)
				continue
			}
			if e.Type == TypeString {
				if j == len(shorts)-1 {
					i++
				}
				break
			}
		}
	}

	return unknown
}
