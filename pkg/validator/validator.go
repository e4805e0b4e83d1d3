/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/utils/ptr"
)

const (
	// MinPort is the lowest valid listen port.
	MinPort = 1

	// MaxPort is the highest valid listen port.
	MaxPort = 65535
)

var hostPattern = regexp.MustCompile(`^[a-zA-Z0-9]+([-.][a-zA-Z0-9]+)*$`)

// Predicate reports whether a value is acceptable.
type Predicate[T any] func(T) bool

// Validate returns *input when it is present and satisfies valid; otherwise it
// returns defaultValue. A present but invalid input produces exactly one info
// line on log; an absent input produces none.
func Validate[T any](input *T, defaultValue T, valid Predicate[T], name string, log *slog.Logger) T {
	if input == nil {
		return defaultValue
	}
	if valid(*input) {
		return *input
	}
	if log != nil {
		log.Info(fmt.Sprintf("%s with value %q is not valid, using default %q", name, format(*input), format(defaultValue)),
			slog.String("name", name),
			slog.Any("value", *input),
			slog.Any("default", defaultValue),
		)
	}
	return defaultValue
}

// IsValidHost reports whether input matches the hostname grammar.
func IsValidHost(input string) bool {
	return hostPattern.MatchString(input)
}

// IsValidPort reports whether input is an integer in [MinPort, MaxPort].
func IsValidPort(input float64) bool {
	if math.IsNaN(input) || math.IsInf(input, 0) {
		return false
	}
	if input != math.Trunc(input) {
		return false
	}
	return input >= MinPort && input <= MaxPort
}

// ToNumber converts a raw value into its numeric interpretation. An absent
// value stays absent; a present value that does not parse becomes NaN.
func ToNumber(input *string) *float64 {
	if input == nil {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(*input), 64)
	if err != nil {
		return ptr.To(math.NaN())
	}
	return &n
}

// ValidateHost resolves the listen host named <envPrefix>_HOST.
func ValidateHost(envPrefix string, input *string, defaultHost string, log *slog.Logger) string {
	return Validate(input, defaultHost, IsValidHost, envPrefix+"_HOST", log)
}

// ValidatePort resolves the listen port named <envPrefix>_PORT.
func ValidatePort(envPrefix string, input *string, defaultPort int, log *slog.Logger) int {
	port := Validate(ToNumber(input), float64(defaultPort), IsValidPort, envPrefix+"_PORT", log)
	return int(port)
}

func format(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
