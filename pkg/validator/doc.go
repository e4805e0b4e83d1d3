/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package validator resolves configuration values under a "valid or default" contract.
//
// # Overview
//
// Every configuration value that has a built-in default goes through the same
// three steps: coerce the raw input, check it with a predicate, and fall back
// to the default when the check fails. The package keeps those steps generic so
// the same primitive serves the listen host (a string predicate), the listen
// port (a numeric predicate) and the log level.
//
// # Presence
//
// Inputs are pointers. A nil pointer means the value was not configured at all
// and the default is returned silently. A non-nil pointer that fails the
// predicate is logged once at info level, naming the setting, the rejected value
// and the substituted default:
//
//	port := validator.ValidatePort("CONCH", raw, 4000, log)
//	host := validator.ValidateHost("CONCH", rawHost, "0.0.0.0", log)
//
// # Predicates
//
// IsValidHost accepts one or more alphanumeric labels separated by a single
// '.' or '-': "localhost", "192.168.1.1" and "sub.example.com" pass, while
// "http://x", "x..y", "x/" and "" fail.
//
// IsValidPort accepts integral values in [1, 65535]. Numeric strings are
// converted by ToNumber before the predicate runs; a string that is not a number
// becomes NaN and fails the check.
package validator
