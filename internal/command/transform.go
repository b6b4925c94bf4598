// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/unspackgo/internal/cacheutil"
	"github.com/staranto/unspackgo/internal/config"
	"github.com/staranto/unspackgo/internal/emit"
	"github.com/staranto/unspackgo/internal/fingerprint"
	"github.com/staranto/unspackgo/internal/match"
	"github.com/staranto/unspackgo/internal/meta"
	"github.com/staranto/unspackgo/internal/output"
	"github.com/staranto/unspackgo/internal/parse"
	"github.com/staranto/unspackgo/internal/rewrite"
)

// ErrUsage is returned when no input script is given.
var ErrUsage = errors.New("no input script specified")

// Examples are printed by --examples.
var Examples = [][2]string{
	{"unspack job.sh > job.fast.sh", "rewrite a job script"},
	{"unspack --stats job.sh > /dev/null", "show what was cached and dropped"},
	{"unspack --digest sha256 job.sh", "use sha256 fingerprints"},
	{"unspack --profile modules job.sh", "read the modules section of unspack.yaml"},
	{"unspack --cache job.sh", "reuse the script generated for an unchanged input"},
}

// TransformAction reads the script named by the first argument, rewrites it,
// and writes the generated script to the command's writer.
func TransformAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args)

	if shell := cmd.String("completion"); shell != "" {
		return Completion(cmd.Root().Writer, shell)
	}

	if cmd.Bool("examples") {
		output.Examples(cmd.Root().Writer, Examples)
		return nil
	}

	path := cmd.Args().First()
	if path == "" {
		fmt.Fprintf(cmd.Root().ErrWriter, "usage: %s\n", cmd.Root().UsageText)
		return ErrUsage
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	log.Debugf("read %s (%s)", path, humanize.Bytes(uint64(len(src))))

	opts, err := BuildOptions(cmd)
	if err != nil {
		return err
	}

	caching := cmd.Bool("cache")
	key := cacheKey(src, cmd, opts)
	if caching {
		if err := cacheutil.Purge(int(cmd.Int("cache-ttl"))); err != nil {
			log.WithError(err).Warn("cache purge failed")
		}
		// Stats need a real run.
		if e, ok := cacheutil.Read(scriptCache, key); ok && !cmd.Bool("stats") {
			log.Debugf("serving %s from %s", path, e.Path)
			if _, err := cmd.Root().Writer.Write(e.Data); err != nil {
				return fmt.Errorf("failed to write script: %w", err)
			}
			return nil
		}
	}

	results := parse.Script(src)
	res := rewrite.Run(results, opts)
	log.Debugf("%d statements, %d dropped, %d call sites, %d entries",
		res.Stats.Statements, res.Stats.Dropped, res.Stats.CallSites, res.Stats.Entries)

	var buf bytes.Buffer
	if err := emit.Write(&buf, res.Script); err != nil {
		return err
	}
	if _, err := cmd.Root().Writer.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}

	if caching {
		if err := cacheutil.Write(scriptCache, key, buf.Bytes()); err != nil {
			log.WithError(err).Warn("failed to cache script")
		}
	}

	if cmd.Bool("stats") {
		output.Stats(cmd.Root().ErrWriter, res, useColor(cmd))
	}

	return nil
}

// BuildOptions turns the command's flags into rewrite options.
func BuildOptions(cmd *cli.Command) (rewrite.Options, error) {
	eng, err := fingerprint.New(cmd.String("digest"))
	if err != nil {
		return rewrite.Options{}, err
	}
	eng.Prefix = cmd.String("prefix")

	patterns := map[string]string{
		"subcommand": cmd.String("subcommand"),
		"exclude":    cmd.String("exclude"),
		"bootstrap":  cmd.String("bootstrap"),
	}
	compiled := map[string]*regexp.Regexp{}
	for name, expr := range patterns {
		re, err := match.Pattern(expr)
		if err != nil {
			return rewrite.Options{}, fmt.Errorf("invalid --%s pattern: %w", name, err)
		}
		compiled[name] = re
	}

	sources := cmd.StringSlice("sources")
	if !cmd.IsSet("sources") {
		if s, err := config.GetStringSlice("sources"); err == nil && len(s) > 0 {
			sources = s
		}
	}

	return rewrite.Options{
		Tool:       cmd.String("tool"),
		Subcommand: compiled["subcommand"],
		Exclude:    compiled["exclude"],
		Bootstrap:  compiled["bootstrap"],
		Sources:    sources,
		Sentinel:   cmd.String("sentinel"),
		Engine:     eng,
	}, nil
}

// scriptCache is the cache subdirectory holding generated scripts.
var scriptCache = []string{"scripts"}

// cacheKey covers everything that changes the generated script.
func cacheKey(src []byte, cmd *cli.Command, opts rewrite.Options) string {
	parts := []string{meta.Version}
	for _, name := range []string{"tool", "subcommand", "exclude", "bootstrap", "sentinel", "prefix", "digest"} {
		parts = append(parts, name+"="+cmd.String(name))
	}
	parts = append(parts, "sources="+strings.Join(opts.Sources, ","), string(src))
	return strings.Join(parts, "\x00")
}

// useColor honors --color/--no-color and otherwise colors only a terminal.
func useColor(cmd *cli.Command) bool {
	if cmd.IsSet("color") {
		return cmd.Bool("color")
	}
	f, ok := cmd.Root().ErrWriter.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
