/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestionDistance = 2

// Suggest returns the known long flag closest to an unknown flag token, if
// one is within a small edit distance. Short tokens get no suggestion.
func Suggest(d *Dictionary, token string) (string, bool) {
	if !strings.HasPrefix(token, "--") {
		return "", false
	}
	name := FlagName(strings.TrimPrefix(token, "--"))

	best, bestDist := "", maxSuggestionDistance+1
	for _, e := range d.Entries() {
		candidate := FlagName(e.Name)
		if dist := levenshtein.ComputeDistance(name, candidate); dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	if best == "" {
		return "", false
	}
	return "--" + best, true
}
