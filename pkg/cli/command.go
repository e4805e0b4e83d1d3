/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Command returns m as a subcommand for a urfave/cli application. Flag
// parsing is left to m, so the subcommand accepts exactly the flags of the
// merged dictionary, including its own --help and --version.
func (m *Main) Command() *cli.Command {
	return &cli.Command{
		Name:            m.name,
		Usage:           m.info,
		SkipFlagParsing: true,
		HideHelp:        true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return m.Run(ctx, cmd.Args().Slice())
		},
	}
}
