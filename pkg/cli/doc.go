// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli turns a declarative flag table into parsed arguments and
// sequences a service's startup from them.
//
// # Overview
//
// A service describes the flags it accepts as a list of FlagSpec values. The
// package merges them with three built-in entries, parses the command line,
// dispatches the actions of the supplied flags and finally hands the parsed
// arguments to the server entry point:
//
//	main := cli.NewMain("conch", "CONCH", flags, info, api.NewRunServer("CONCH", 4000, "0.0.0.0", log))
//	if err := main.Execute(ctx); err != nil {
//	    os.Exit(1)
//	}
//
// # Built-in Flags
//
//	--help, -h       Print usage and stop
//	--version, -v    Print "<name> v<version>" and stop
//	--log-level, -l  Set logging verbosity (env: <PREFIX>_LOG_LEVEL)
//
// A caller entry with the same name as a built-in replaces it.
//
// # Parsing
//
// Boolean entries take no value and string entries take exactly one. Every
// entry is accepted by its long name (underscores spelled as dashes) and its
// single character alias. Tokens after a literal "--" are never interpreted and
// are kept in ParsedArguments.PassThrough. Unknown flags are not rejected; they
// are reported in ParsedArguments.Unknown and logged with the closest known
// flag when one is similar.
//
// # Dispatch
//
// Flag actions are tagged values (help, version, log level, custom) rather than
// closures, and are dispatched by Main in dictionary order. The first
// terminating flag ends the run after its action: `--help --version` prints the
// usage only, and the server entry point is never called.
//
// # Help Format
//
//	Usage: conch [OPTIONS...]
//
//	Optional Flags:
//	  -h,  --help           Show help
//	  -v,  --version        Show version
//	  -l,  --log-level      CONCH_LOG_LEVEL           Set the log level
//
// # Embedding
//
// Main.Command returns the orchestrator as a urfave/cli/v3 subcommand that
// performs its own flag parsing, for tools that host several services.
//
// Version information comes from pkg/version and is embedded at build time:
//
//	go build -ldflags="-X 'github.com/NVIDIA/conch/pkg/version.version=1.0.0'"
package cli
