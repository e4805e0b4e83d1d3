/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	flagColumnWidth = 15
	envColumnWidth  = 26
)

// PrintHelp writes usage for d to w in a single write. Each option line has
// the form "  -X,  --name<pad to 15><env var, pad to 26><description>".
func PrintHelp(w io.Writer, d *Dictionary) error {
	heading := headingFunc(w)
	lines := []string{
		fmt.Sprintf("%s %s [OPTIONS...]", heading("Usage:"), d.Name()),
		"",
		heading("Optional Flags:"),
	}
	for _, e := range d.Entries() {
		lines = append(lines, fmt.Sprintf("  -%s,  --%s%s%s",
			e.Short,
			padToFixedWidth(FlagName(e.Name), flagColumnWidth),
			padToFixedWidth(e.Env, envColumnWidth),
			e.Description,
		))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// headingFunc colors headings only when w is a terminal and NO_COLOR is unset.
func headingFunc(w io.Writer) func(a ...any) string {
	c := color.New(color.FgCyan)
	if colorEnabled(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintVersion writes "<name> v<version>" to w.
func PrintVersion(w io.Writer, name, version string) error {
	_, err := fmt.Fprintf(w, "%s v%s\n", name, strings.TrimPrefix(version, "v"))
	return err
}

// padToFixedWidth pads s with spaces on the right to width, truncating longer input.
func padToFixedWidth(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
