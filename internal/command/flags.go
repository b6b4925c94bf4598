// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/unspackgo/internal/fingerprint"
)

// NewFlags builds the root command's flags. Values come from the command
// line, then env vars, then the profile's section of the config file at
// source, then the top level of that file.
func NewFlags(source, profile string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "tool",
			Aliases: []string{"t"},
			Usage:   "leading word of the commands to memoize",
			Sources: chain(source, profile, "tool", "UNSPACK_TOOL"),
			Value:   "spack",
			Validator: func(value string) error {
				return FlagValidators(value, NotEmptyValidator, JammedFlagValidator)
			},
		},
		&cli.StringFlag{
			Name:    "subcommand",
			Usage:   "pattern for the word after the tool that makes a call memoizable",
			Sources: chain(source, profile, "subcommand"),
			Value:   "load",
			Validator: func(value string) error {
				return FlagValidators(value, NotEmptyValidator, PatternValidator)
			},
		},
		&cli.StringFlag{
			Name:    "exclude",
			Usage:   "pattern for a token that keeps a call out of the cache; such calls are dropped",
			Sources: chain(source, profile, "exclude"),
			Value:   "--list",
			Validator: func(value string) error {
				return FlagValidators(value, NotEmptyValidator, PatternValidator)
			},
		},
		&cli.StringFlag{
			Name:    "bootstrap",
			Aliases: []string{"b"},
			Usage:   "pattern for the setup script path that is hoisted to the top",
			Sources: chain(source, profile, "bootstrap", "UNSPACK_BOOTSTRAP"),
			Value:   `.*setup-env\.sh`,
			Validator: func(value string) error {
				return FlagValidators(value, NotEmptyValidator, PatternValidator)
			},
		},
		&cli.StringSliceFlag{
			Name:  "sources",
			Usage: "commands that dot-source a file",
			Value: []string{".", "source"},
		},
		&cli.StringFlag{
			Name:    "sentinel",
			Usage:   "flag that asks the tool for capturable shell output",
			Sources: chain(source, profile, "sentinel"),
			Value:   "--sh",
			Validator: func(value string) error {
				return FlagValidators(value, NotEmptyValidator)
			},
		},
		&cli.StringFlag{
			Name:    "prefix",
			Usage:   "prefix of the generated function names",
			Sources: chain(source, profile, "prefix"),
			Value:   fingerprint.DefaultPrefix,
			Validator: func(value string) error {
				return FlagValidators(value, ShellNameValidator)
			},
		},
		&cli.StringFlag{
			Name:    "digest",
			Aliases: []string{"d"},
			Usage:   "fingerprint digest, one of " + strings.Join(fingerprint.Names(), ", "),
			Sources: chain(source, profile, "digest", "UNSPACK_DIGEST"),
			Value:   "blake3",
			Validator: func(value string) error {
				return FlagValidators(value, DigestValidator)
			},
		},
		&cli.StringFlag{
			Name:  "profile",
			Usage: "config file section to read before the top level",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("UNSPACK_PROFILE"),
			),
		},
		&cli.BoolFlag{
			Name:    "stats",
			Aliases: []string{"s"},
			Usage:   "print rewrite diagnostics to stderr",
			Sources: chain(source, profile, "stats"),
			Value:   false,
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored diagnostics",
			Sources: chain(source, profile, "color"),
			Value:   false,
		},
		&cli.BoolFlag{
			Name:    "cache",
			Usage:   "reuse the generated script when the input and options are unchanged",
			Sources: chain(source, profile, "cache", "UNSPACK_CACHE"),
			Value:   false,
		},
		&cli.IntFlag{
			Name:    "cache-ttl",
			Usage:   "hours before a cached script is purged, 0 to keep forever",
			Sources: chain(source, profile, "cache-ttl"),
			Value:   168,
		},
		&cli.BoolFlag{
			Name:        "examples",
			Usage:       "print usage examples and exit",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:        "completion",
			Usage:       "print a completion script for bash or zsh and exit",
			HideDefault: true,
		},
	}
}

// chain builds a flag's value source chain: env vars first, then the
// profile's key, then the top-level key.
func chain(source, profile, key string, envs ...string) cli.ValueSourceChain {
	var srcs []cli.ValueSource
	for _, e := range envs {
		srcs = append(srcs, cli.EnvVar(e))
	}
	if source != "" {
		if profile != "" {
			srcs = append(srcs, yaml.YAML(profile+"."+key, altsrc.StringSourcer(source)))
		}
		srcs = append(srcs, yaml.YAML(key, altsrc.StringSourcer(source)))
	}
	return cli.NewValueSourceChain(srcs...)
}
