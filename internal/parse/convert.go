// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/apex/log"
	"mvdan.cc/sh/v3/syntax"

	"github.com/staranto/unspackgo/internal/ast"
)

// converter maps mvdan.cc/sh syntax trees onto the ast package. Anything the
// ast cannot express becomes an *ast.Unsupported in the matching slot.
type converter struct{}

func (c *converter) unsupported(what string) *ast.Unsupported {
	log.Debugf("unsupported construct: %s", what)
	return &ast.Unsupported{What: what}
}

func (c *converter) stmts(ss []*syntax.Stmt) []*ast.TopLevelCommand {
	out := make([]*ast.TopLevelCommand, 0, len(ss))
	for _, s := range ss {
		out = append(out, c.stmt(s))
	}
	return out
}

func (c *converter) stmt(s *syntax.Stmt) *ast.TopLevelCommand {
	return &ast.TopLevelCommand{Job: s.Background, List: c.andOr(s)}
}

// andOr flattens an && / || chain however the parser nested it. Grouping
// written in the source arrives as a block, never as a nested BinaryCmd.
func (c *converter) andOr(s *syntax.Stmt) *ast.AndOrList {
	b, ok := s.Cmd.(*syntax.BinaryCmd)
	if !ok || !plain(s) || (b.Op != syntax.AndStmt && b.Op != syntax.OrStmt) {
		return &ast.AndOrList{First: c.listable(s)}
	}

	list := c.andOr(b.X)
	op := ast.And
	if b.Op == syntax.OrStmt {
		op = ast.Or
	}
	right := c.andOr(b.Y)
	list.Rest = append(list.Rest, ast.AndOr{Op: op, Cmd: right.First})
	list.Rest = append(list.Rest, right.Rest...)
	return list
}

func plain(s *syntax.Stmt) bool {
	return !s.Negated && !s.Coprocess && len(s.Redirs) == 0
}

func (c *converter) group(s *syntax.Stmt) *ast.CompoundCommand {
	inner := *s
	inner.Background = false
	return &ast.CompoundCommand{Kind: &ast.Brace{Body: []*ast.TopLevelCommand{c.stmt(&inner)}}}
}

func (c *converter) listable(s *syntax.Stmt) ast.ListableCommand {
	if b, ok := s.Cmd.(*syntax.BinaryCmd); ok && isPipe(b.Op) && len(s.Redirs) == 0 && !s.Coprocess {
		return &ast.Pipe{Bang: s.Negated, Cmds: c.stages(b)}
	}

	cmd := c.pipeable(s)
	if s.Negated {
		return &ast.Pipe{Bang: true, Cmds: []ast.PipeableCommand{cmd}}
	}
	return cmd
}

func isPipe(op syntax.BinCmdOperator) bool {
	return op == syntax.Pipe || op == syntax.PipeAll
}

func (c *converter) stages(b *syntax.BinaryCmd) []ast.PipeableCommand {
	out := c.side(b.X)
	last := len(out) - 1

	// a |& b is a 2>&1 | b.
	if b.Op == syntax.PipeAll {
		switch left := out[last].(type) {
		case *ast.SimpleCommand:
			left.RedirectsOrCmdWords = append(left.RedirectsOrCmdWords, stderrToStdout())
		case *ast.CompoundCommand:
			left.Io = append(left.Io, stderrToStdout())
		default:
			out[last] = c.unsupported(fmt.Sprintf("|& after %T", left))
		}
	}
	return append(out, c.side(b.Y)...)
}

func (c *converter) side(s *syntax.Stmt) []ast.PipeableCommand {
	if sb, ok := s.Cmd.(*syntax.BinaryCmd); ok && isPipe(sb.Op) && plain(s) {
		return c.stages(sb)
	}
	return []ast.PipeableCommand{c.stage(s)}
}

func (c *converter) stage(s *syntax.Stmt) ast.PipeableCommand {
	if s.Negated {
		return c.group(s)
	}
	return c.pipeable(s)
}

func (c *converter) pipeable(s *syntax.Stmt) ast.PipeableCommand {
	if s.Coprocess {
		return c.unsupported("coproc")
	}

	switch cmd := s.Cmd.(type) {
	case nil:
		return c.call(nil, nil, s.Redirs)
	case *syntax.CallExpr:
		return c.call(cmd.Assigns, cmd.Args, s.Redirs)
	case *syntax.DeclClause:
		return c.decl(cmd, s.Redirs)
	case *syntax.FuncDecl:
		return c.function(cmd, s.Redirs)
	case *syntax.BinaryCmd:
		inner := &syntax.Stmt{Cmd: cmd}
		return &ast.CompoundCommand{
			Kind: &ast.Brace{Body: []*ast.TopLevelCommand{c.stmt(inner)}},
			Io:   c.redirects(s.Redirs),
		}
	default:
		return &ast.CompoundCommand{Kind: c.kind(cmd), Io: c.redirects(s.Redirs)}
	}
}

func (c *converter) kind(cmd syntax.Command) ast.CompoundKind {
	switch cmd := cmd.(type) {
	case *syntax.Block:
		return &ast.Brace{Body: c.stmts(cmd.Stmts)}
	case *syntax.Subshell:
		return &ast.Subshell{Body: c.stmts(cmd.Stmts)}
	case *syntax.WhileClause:
		gb := ast.GuardBodyPair{Guard: c.stmts(cmd.Cond), Body: c.stmts(cmd.Do)}
		if cmd.Until {
			return &ast.Until{GuardBodyPair: gb}
		}
		return &ast.While{GuardBodyPair: gb}
	case *syntax.IfClause:
		return c.ifClause(cmd)
	case *syntax.ForClause:
		return c.forClause(cmd)
	case *syntax.CaseClause:
		return c.caseClause(cmd)
	default:
		return c.unsupported(fmt.Sprintf("%T", cmd))
	}
}

func (c *converter) ifClause(ic *syntax.IfClause) ast.CompoundKind {
	k := &ast.If{}
	for cl := ic; cl != nil; cl = cl.Else {
		// The final "else" is an IfClause without a condition.
		if len(cl.Cond) == 0 {
			k.Else = c.stmts(cl.Then)
			break
		}
		k.Conditionals = append(k.Conditionals, ast.GuardBodyPair{
			Guard: c.stmts(cl.Cond),
			Body:  c.stmts(cl.Then),
		})
	}
	return k
}

func (c *converter) forClause(fc *syntax.ForClause) ast.CompoundKind {
	iter, ok := fc.Loop.(*syntax.WordIter)
	if !ok || fc.Select {
		return c.unsupported("c-style for or select")
	}
	return &ast.For{
		Var:   iter.Name.Value,
		In:    iter.InPos.IsValid(),
		Words: c.words(iter.Items),
		Body:  c.stmts(fc.Do),
	}
}

func (c *converter) caseClause(cc *syntax.CaseClause) ast.CompoundKind {
	k := &ast.Case{Word: c.word(cc.Word)}
	for _, item := range cc.Items {
		if item.Op != syntax.Break {
			return c.unsupported("case fallthrough " + item.Op.String())
		}
		k.Arms = append(k.Arms, ast.PatternBodyPair{
			Patterns: c.words(item.Patterns),
			Body:     c.stmts(item.Stmts),
		})
	}
	return k
}

func (c *converter) function(fd *syntax.FuncDecl, redirs []*syntax.Redirect) ast.PipeableCommand {
	if fd.Name == nil || fd.Body == nil {
		return c.unsupported("anonymous function")
	}
	switch fd.Body.Cmd.(type) {
	case *syntax.CallExpr, *syntax.DeclClause, *syntax.BinaryCmd, *syntax.FuncDecl, nil:
		return c.unsupported("function body is not a compound command")
	}
	body := &ast.CompoundCommand{
		Kind: c.kind(fd.Body.Cmd),
		Io:   append(c.redirects(fd.Body.Redirs), c.redirects(redirs)...),
	}
	return &ast.FunctionDef{Name: fd.Name.Value, Body: body}
}

// call builds a simple command. Assignments and redirects that come before
// the first argument form the prefix; later redirects stay interleaved with
// the words in source order.
func (c *converter) call(assigns []*syntax.Assign, args []*syntax.Word, redirs []*syntax.Redirect) *ast.SimpleCommand {
	type env struct {
		off uint
		tok ast.RedirectOrEnvVar
	}
	type word struct {
		off uint
		tok ast.RedirectOrCmdWord
	}

	first := ^uint(0)
	if len(args) > 0 {
		first = args[0].Pos().Offset()
	}

	var prefix []env
	var words []word
	for _, a := range assigns {
		prefix = append(prefix, env{a.Pos().Offset(), c.assign(a)})
	}
	for _, r := range redirs {
		for _, conv := range c.redirect(r) {
			if r.Pos().Offset() < first {
				prefix = append(prefix, env{r.Pos().Offset(), conv})
			} else {
				words = append(words, word{r.Pos().Offset(), conv})
			}
		}
	}
	for _, a := range args {
		words = append(words, word{a.Pos().Offset(), &ast.CmdWord{Word: c.word(a)}})
	}

	slices.SortStableFunc(prefix, func(a, b env) int { return cmpOffset(a.off, b.off) })
	slices.SortStableFunc(words, func(a, b word) int { return cmpOffset(a.off, b.off) })

	sc := &ast.SimpleCommand{}
	for _, e := range prefix {
		sc.RedirectsOrEnvVars = append(sc.RedirectsOrEnvVars, e.tok)
	}
	for _, w := range words {
		sc.RedirectsOrCmdWords = append(sc.RedirectsOrCmdWords, w.tok)
	}
	return sc
}

func cmpOffset(a, b uint) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (c *converter) assign(a *syntax.Assign) ast.RedirectOrEnvVar {
	if a.Name == nil || a.Append || a.Naked || a.Index != nil || a.Array != nil {
		return c.unsupported("assignment form")
	}
	ev := &ast.EnvVar{Name: a.Name.Value}
	if a.Value != nil && len(a.Value.Parts) > 0 {
		ev.Value = c.word(a.Value)
	}
	return ev
}

// decl carries export/local/readonly/declare as a plain simple command.
func (c *converter) decl(d *syntax.DeclClause, redirs []*syntax.Redirect) ast.PipeableCommand {
	sc := &ast.SimpleCommand{}
	sc.RedirectsOrCmdWords = append(sc.RedirectsOrCmdWords, ast.LitWord(d.Variant.Value))

	for _, a := range d.Args {
		var w ast.ComplexWord
		switch {
		case a.Index != nil || a.Array != nil:
			w = c.unsupported("array declaration")
		case a.Naked && a.Name != nil:
			w = ast.Lit(a.Name.Value)
		case a.Naked && a.Value != nil:
			w = c.word(a.Value)
		case a.Name != nil:
			op := "="
			if a.Append {
				op = "+="
			}
			parts := []ast.Word{ast.Lit(a.Name.Value + op)}
			if a.Value != nil {
				parts = append(parts, c.parts(a.Value.Parts)...)
			}
			w = concat(parts)
		default:
			w = c.unsupported("declaration argument")
		}
		sc.RedirectsOrCmdWords = append(sc.RedirectsOrCmdWords, &ast.CmdWord{Word: w})
	}

	for _, r := range redirs {
		for _, conv := range c.redirect(r) {
			sc.RedirectsOrCmdWords = append(sc.RedirectsOrCmdWords, conv)
		}
	}
	return sc
}

func (c *converter) redirects(rs []*syntax.Redirect) []*ast.Redirect {
	var out []*ast.Redirect
	for _, r := range rs {
		out = append(out, c.redirect(r)...)
	}
	return out
}

// redirect usually yields one redirect; &> and &>> are lowered to two.
func (c *converter) redirect(r *syntax.Redirect) []*ast.Redirect {
	fd := ast.NoFd
	if r.N != nil {
		n, err := strconv.Atoi(r.N.Value)
		if err != nil {
			c.unsupported("named file descriptor " + r.N.Value)
			return []*ast.Redirect{{Op: ast.Write, Fd: ast.NoFd}}
		}
		fd = n
	}

	var target ast.ComplexWord
	if r.Word != nil {
		target = c.word(r.Word)
	}
	one := func(op ast.RedirectOp) []*ast.Redirect {
		return []*ast.Redirect{{Op: op, Fd: fd, Target: target}}
	}

	switch r.Op {
	case syntax.RdrIn:
		return one(ast.Read)
	case syntax.RdrOut:
		return one(ast.Write)
	case syntax.RdrInOut:
		return one(ast.ReadWrite)
	case syntax.AppOut:
		return one(ast.Append)
	case syntax.ClbOut:
		return one(ast.Clobber)
	case syntax.DplIn:
		return one(ast.DupRead)
	case syntax.DplOut:
		return one(ast.DupWrite)
	case syntax.Hdoc, syntax.DashHdoc:
		return one(ast.Heredoc)
	case syntax.RdrAll:
		return []*ast.Redirect{{Op: ast.Write, Fd: ast.NoFd, Target: target}, stderrToStdout()}
	case syntax.AppAll:
		return []*ast.Redirect{{Op: ast.Append, Fd: ast.NoFd, Target: target}, stderrToStdout()}
	}

	c.unsupported("redirect " + r.Op.String())
	return []*ast.Redirect{{Op: ast.Write, Fd: fd}}
}

func stderrToStdout() *ast.Redirect {
	return ast.NewRedirect(ast.DupWrite, 2, "1")
}
