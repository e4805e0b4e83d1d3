/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import "strings"

// ValueType is the kind of value a flag takes.
type ValueType string

const (
	// TypeBoolean flags take no value; their presence sets them.
	TypeBoolean ValueType = "boolean"

	// TypeString flags require exactly one following token.
	TypeString ValueType = "string"
)

// ActionKind identifies the side effect dispatched when a flag is supplied.
type ActionKind int

const (
	// ActionNone dispatches nothing.
	ActionNone ActionKind = iota

	// ActionHelp prints usage derived from the merged dictionary.
	ActionHelp

	// ActionVersion prints "<name> v<version>".
	ActionVersion

	// ActionLogLevel marks the log level flag; it is consumed by the server
	// bootstrapper rather than at dispatch time.
	ActionLogLevel

	// ActionCustom hands Payload to the handler installed with WithCustomAction.
	ActionCustom
)

// String returns the action kind name.
func (k ActionKind) String() string {
	switch k {
	case ActionHelp:
		return "help"
	case ActionVersion:
		return "version"
	case ActionLogLevel:
		return "log_level"
	case ActionCustom:
		return "custom"
	default:
		return "none"
	}
}

// Action is the deferred side effect attached to a flag.
type Action struct {
	Kind    ActionKind
	Payload string
}

// FlagSpec describes one accepted flag.
type FlagSpec struct {
	// Name is the unique key and the long flag spelling. Underscores are
	// spelled as dashes on the command line.
	Name string

	// Short is the single character alias.
	Short string

	// Type is the kind of value the flag takes.
	Type ValueType

	// Description is shown in the usage text.
	Description string

	// Env is the environment variable consulted when the flag is absent.
	Env string

	// Action is dispatched when the flag is supplied.
	Action Action

	// Exit ends the run after Action when the flag is supplied.
	Exit bool
}

// FlagName returns the command line spelling of an entry name.
func FlagName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
