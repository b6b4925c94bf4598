// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rewrite

import (
	"regexp"

	"github.com/apex/log"

	"github.com/staranto/unspackgo/internal/ast"
	"github.com/staranto/unspackgo/internal/cache"
	"github.com/staranto/unspackgo/internal/emit"
	"github.com/staranto/unspackgo/internal/fingerprint"
	"github.com/staranto/unspackgo/internal/match"
	"github.com/staranto/unspackgo/internal/parse"
	"github.com/staranto/unspackgo/internal/printer"
)

// Options selects what the pass looks for.
type Options struct {
	// Tool is the leading word of the commands to memoize.
	Tool string
	// Subcommand matches the word right after Tool that makes a call
	// memoizable; the sentinel is spliced in right after it.
	Subcommand *regexp.Regexp
	// Exclude matches a token that disqualifies a call. Such statements are
	// dropped.
	Exclude *regexp.Regexp
	// Bootstrap matches the unquoted argument of the setup-script dot-source.
	Bootstrap *regexp.Regexp
	// Sources are the leading words that dot-source a file.
	Sources []string
	// Sentinel is the flag asking Tool for capturable output.
	Sentinel string
	Engine   *fingerprint.Engine
}

// DefaultOptions targets spack.
func DefaultOptions() Options {
	eng, _ := fingerprint.New("blake3")
	return Options{
		Tool:       "spack",
		Subcommand: match.MustPattern("load"),
		Exclude:    match.MustPattern("--list"),
		Bootstrap:  match.MustPattern(`.*setup-env\.sh`),
		Sources:    []string{".", "source"},
		Sentinel:   "--sh",
		Engine:     eng,
	}
}

// Stats counts what the pass did, including everything it recovered from.
type Stats struct {
	Statements  int
	Dropped     int
	Mismatched  int
	Passthrough int
	Excluded    int
	CallSites   int
	Entries     int
	Orphans     int
	Unsupported int
}

// Result is the outcome of one pass. Script is the rendered form handed to
// the emitter.
type Result struct {
	Bootstrap *ast.SimpleCommand
	Table     *cache.Table
	Body      []*ast.TopLevelCommand
	Script    emit.Script
	Stats     Stats
}

type pass struct {
	opts  Options
	res   *Result
	table *cache.Table
}

// Run rewrites the parsed statements in a single forward pass. Statements are
// modified in place. Each call builds its own cache table.
func Run(results []parse.Result, opts Options) *Result {
	p := &pass{
		opts:  opts,
		res:   &Result{},
		table: cache.NewTable(),
	}
	p.res.Table = p.table

	for _, r := range results {
		if r.Err != nil {
			p.res.Stats.Dropped++
			log.Debugf("dropping statement at line %d: %v", r.Line, r.Err)
			continue
		}
		p.res.Stats.Statements++
		if p.statement(r.Cmd, r.Line) {
			p.res.Body = append(p.res.Body, r.Cmd)
		}
	}

	p.finish()
	p.render()
	return p.res
}

// statement handles one statement and reports whether it stays in the body.
func (p *pass) statement(stmt *ast.TopLevelCommand, line int) bool {
	lead := match.Leading(stmt)
	if lead == nil {
		p.res.Stats.Mismatched++
		return true
	}

	if p.isBootstrap(lead) {
		return !p.captureBootstrap(stmt, lead, line)
	}

	if !match.StartsWith(lead, p.opts.Tool) {
		return true
	}

	if match.Subcommand(lead, p.opts.Subcommand) < 0 {
		p.res.Stats.Passthrough++
		return true
	}

	if match.Position(lead, p.opts.Exclude) >= 0 {
		p.res.Stats.Excluded++
		log.Debugf("dropping excluded call at line %d: %s", line, printer.String(lead))
		return false
	}

	clone := fingerprint.Normalize(lead)
	sum := p.opts.Engine.Sum(clone)
	name := p.opts.Engine.Key(sum)
	p.table.Insert(sum, name, clone)

	// Redirects among the words stay with the call site.
	call := []ast.RedirectOrCmdWord{ast.LitWord(name)}
	for _, tok := range lead.RedirectsOrCmdWords {
		if r, ok := tok.(*ast.Redirect); ok {
			call = append(call, r)
		}
	}
	lead.RedirectsOrCmdWords = call
	p.res.Stats.CallSites++
	return true
}

func (p *pass) isBootstrap(cmd *ast.SimpleCommand) bool {
	for _, src := range p.opts.Sources {
		if match.StartsWith(cmd, src) {
			return match.PositionUnquoted(cmd, p.opts.Bootstrap) > 0
		}
	}
	return false
}

// captureBootstrap keeps the first setup-script statement. It reports whether
// the statement was consumed. Only a statement that is nothing but the
// dot-source is taken, so no other command is lost with it.
func (p *pass) captureBootstrap(stmt *ast.TopLevelCommand, cmd *ast.SimpleCommand, line int) bool {
	if stmt.Job || len(stmt.List.Rest) > 0 || stmt.List.First != ast.ListableCommand(cmd) {
		log.Debugf("bootstrap at line %d is part of a larger statement, leaving it in place", line)
		return false
	}

	if p.res.Bootstrap == nil {
		p.res.Bootstrap = cmd
		log.Debugf("captured bootstrap at line %d", line)
		return true
	}

	if printer.String(p.res.Bootstrap) == printer.String(cmd) {
		log.Debugf("removing repeated bootstrap at line %d", line)
		return true
	}

	log.Warnf("second, different bootstrap at line %d left in place", line)
	return false
}

// finish splices the sentinel after the subcommand token of every entry.
// Entries without that token cannot produce output and are dropped.
func (p *pass) finish() {
	for _, e := range p.table.Entries() {
		idx := match.Subcommand(e.Command, p.opts.Subcommand)
		if idx < 0 {
			log.Warnf("dropping cache entry %s without a subcommand token", e.Name)
			p.table.Delete(e.Key)
			p.res.Stats.Orphans++
			continue
		}
		e.Command.Insert(idx+1, ast.LitWord(p.opts.Sentinel))
	}
	p.res.Stats.Entries = p.table.Len()
}

func (p *pass) render() {
	var pr printer.Printer

	script := emit.Script{
		Prefix:   p.opts.Engine.Prefix,
		Sentinel: p.opts.Sentinel,
	}
	if p.res.Bootstrap != nil {
		script.Bootstrap = pr.Node(p.res.Bootstrap)
	}
	for _, e := range p.table.Entries() {
		script.Directives = append(script.Directives, emit.Directive{
			Key:     e.Key,
			Name:    e.Name,
			Command: pr.Node(e.Command),
		})
	}
	for _, stmt := range p.res.Body {
		script.Body = append(script.Body, pr.Node(stmt))
	}

	p.res.Script = script
	p.res.Stats.Unsupported = pr.Unsupported
}
