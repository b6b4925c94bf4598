// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/unspackgo/internal/config"
	"github.com/staranto/unspackgo/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	// The profile selects a namespace in the config file. It has to be known
	// before the flags are built because it is baked into their sources.
	profile := profileFromArgs(args)

	cfg, err := config.Load()
	if err != nil {
		log.Debugf("no config file: %v", err)
	}
	config.Config.Namespace = profile

	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		Profile:     profile,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:      "unspack",
		Usage:     "memoize spack load calls in a shell script",
		UsageText: "unspack [options] SCRIPT",
		ArgsUsage: "SCRIPT",
		Version:   meta.Version,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  NewFlags(cfg.Source, profile),
		Action: TransformAction,
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}

// profileFromArgs finds --profile in args, falling back to UNSPACK_PROFILE.
func profileFromArgs(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		if v, ok := strings.CutPrefix(a, "--profile="); ok {
			return v
		}
		if a == "--profile" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("UNSPACK_PROFILE")
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}
