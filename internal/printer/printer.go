// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package printer

import (
	"strconv"
	"strings"

	"github.com/staranto/unspackgo/internal/ast"
)

// Sentinel is emitted in place of any node the printer cannot render.
const Sentinel = "UNSUPPORTED"

// Printer renders syntax trees back to shell source. The zero value is ready
// to use. Unsupported counts the sentinels emitted so far.
type Printer struct {
	Unsupported int
}

// String renders n with a throwaway Printer.
func String(n ast.Node) string {
	var p Printer
	return p.Node(n)
}

// Node renders any tree node. It never fails; nodes outside the supported
// grammar render as Sentinel.
func (p *Printer) Node(n ast.Node) string {
	switch n := n.(type) {
	case *ast.TopLevelCommand:
		return p.command(n)
	case *ast.AndOrList:
		return p.andOr(n)
	case *ast.Pipe:
		return p.pipe(n)
	case *ast.SimpleCommand:
		return p.simple(n)
	case *ast.CompoundCommand:
		return p.compound(n)
	case *ast.FunctionDef:
		return p.function(n)
	case *ast.EnvVar:
		return p.envVar(n)
	case *ast.CmdWord:
		return p.complex(n.Word)
	case *ast.Redirect:
		return p.redirect(n)
	case *ast.Concat:
		return p.complex(n)
	case ast.Word:
		return p.word(n)
	case ast.Arithmetic:
		return p.arith(n)
	case ast.CompoundKind:
		return p.kind(n)
	default:
		return p.unsupported()
	}
}

// Body renders a statement list, one statement per line.
func (p *Printer) Body(stmts []*ast.TopLevelCommand) string {
	lines := make([]string, 0, len(stmts))
	for _, s := range stmts {
		lines = append(lines, p.command(s))
	}
	return strings.Join(lines, "\n")
}

func (p *Printer) unsupported() string {
	p.Unsupported++
	return Sentinel
}

func (p *Printer) command(c *ast.TopLevelCommand) string {
	if c == nil || c.List == nil {
		return p.unsupported()
	}
	list := p.andOr(c.List)
	if c.Job {
		return list + " &"
	}
	return list
}

func (p *Printer) andOr(l *ast.AndOrList) string {
	rest := make([]string, 0, len(l.Rest))
	for _, r := range l.Rest {
		rest = append(rest, join(" ", r.Op.String(), p.listable(r.Cmd)))
	}
	return join(" ", p.listable(l.First), join(" ", rest...))
}

func (p *Printer) listable(c ast.ListableCommand) string {
	switch c := c.(type) {
	case *ast.Pipe:
		return p.pipe(c)
	case ast.PipeableCommand:
		return p.pipeable(c)
	default:
		return p.unsupported()
	}
}

func (p *Printer) pipe(c *ast.Pipe) string {
	stages := make([]string, 0, len(c.Cmds))
	for _, cmd := range c.Cmds {
		stages = append(stages, p.pipeable(cmd))
	}
	out := strings.Join(stages, " | ")
	if c.Bang {
		return join(" ", "!", out)
	}
	return out
}

func (p *Printer) pipeable(c ast.PipeableCommand) string {
	switch c := c.(type) {
	case *ast.SimpleCommand:
		return p.simple(c)
	case *ast.CompoundCommand:
		return p.compound(c)
	case *ast.FunctionDef:
		return p.function(c)
	default:
		return p.unsupported()
	}
}

func (p *Printer) simple(c *ast.SimpleCommand) string {
	prefix := make([]string, 0, len(c.RedirectsOrEnvVars))
	for _, t := range c.RedirectsOrEnvVars {
		switch t := t.(type) {
		case *ast.EnvVar:
			prefix = append(prefix, p.envVar(t))
		case *ast.Redirect:
			prefix = append(prefix, p.redirect(t))
		default:
			prefix = append(prefix, p.unsupported())
		}
	}

	words := make([]string, 0, len(c.RedirectsOrCmdWords))
	for _, t := range c.RedirectsOrCmdWords {
		switch t := t.(type) {
		case *ast.CmdWord:
			words = append(words, p.complex(t.Word))
		case *ast.Redirect:
			words = append(words, p.redirect(t))
		default:
			words = append(words, p.unsupported())
		}
	}

	return join(" ", join(" ", prefix...), join(" ", words...))
}

func (p *Printer) envVar(e *ast.EnvVar) string {
	if e.Value == nil {
		return e.Name + "="
	}
	return e.Name + "=" + p.complex(e.Value)
}

func (p *Printer) redirect(r *ast.Redirect) string {
	if r.Op == ast.Heredoc || r.Target == nil {
		return p.unsupported()
	}
	op := r.Op.String()
	if r.Fd != ast.NoFd {
		op = strconv.Itoa(r.Fd) + op
	}
	if r.Op == ast.DupRead || r.Op == ast.DupWrite {
		return op + p.complex(r.Target)
	}
	return op + " " + p.complex(r.Target)
}

// join joins the non-empty parts with sep.
func join(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, sep)
}
