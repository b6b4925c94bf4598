// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package printer

import (
	"strings"

	"github.com/staranto/unspackgo/internal/ast"
)

// arith renders an expression exactly as the tree is shaped. Grouping comes
// only from explicit ArithGroup nodes.
func (p *Printer) arith(a ast.Arithmetic) string {
	switch a := a.(type) {
	case *ast.ArithVar:
		return a.Name
	case *ast.ArithNumber:
		return a.Text
	case *ast.ArithParam:
		return p.param(a.Param, false)
	case *ast.ArithUnary:
		x := p.arith(a.X)
		op := a.Op.String()
		if a.Op.Postfix() {
			return x + op
		}
		// - -x must not collapse into --x.
		if (a.Op == ast.UnaryPlus || a.Op == ast.UnaryMinus) && strings.HasPrefix(x, op) {
			return op + " " + x
		}
		return op + x
	case *ast.ArithBinary:
		return p.arith(a.X) + " " + a.Op.String() + " " + p.arith(a.Y)
	case *ast.ArithTernary:
		return p.arith(a.Cond) + " ? " + p.arith(a.Then) + " : " + p.arith(a.Else)
	case *ast.ArithAssign:
		return a.Name + " " + a.Op.String() + " " + p.arith(a.Value)
	case *ast.ArithSequence:
		exprs := make([]string, 0, len(a.Exprs))
		for _, e := range a.Exprs {
			exprs = append(exprs, p.arith(e))
		}
		return strings.Join(exprs, ", ")
	case *ast.ArithGroup:
		return "(" + p.arith(a.X) + ")"
	default:
		return p.unsupported()
	}
}

func (p *Printer) compound(c *ast.CompoundCommand) string {
	io := make([]string, 0, len(c.Io))
	for _, r := range c.Io {
		io = append(io, p.redirect(r))
	}
	return join(" ", p.kind(c.Kind), join(" ", io...))
}

func (p *Printer) function(f *ast.FunctionDef) string {
	if f.Body == nil {
		return p.unsupported()
	}
	return f.Name + "() " + p.compound(f.Body)
}

func (p *Printer) kind(k ast.CompoundKind) string {
	switch k := k.(type) {
	case *ast.Brace:
		return "{\n" + p.Body(k.Body) + "\n}"
	case *ast.Subshell:
		return "(\n" + p.Body(k.Body) + "\n)"
	case *ast.While:
		return p.loop("while", k.GuardBodyPair)
	case *ast.Until:
		return p.loop("until", k.GuardBodyPair)
	case *ast.If:
		return p.ifChain(k)
	case *ast.For:
		return p.forLoop(k)
	case *ast.Case:
		return p.caseArms(k)
	default:
		return p.unsupported()
	}
}

func (p *Printer) loop(keyword string, gb ast.GuardBodyPair) string {
	return keyword + " " + p.Body(gb.Guard) + "\ndo\n" + p.Body(gb.Body) + "\ndone"
}

// ifChain renders every conditional as a standalone "if" block; joining them
// with "\nel" turns all but the first into "elif".
func (p *Printer) ifChain(k *ast.If) string {
	blocks := make([]string, 0, len(k.Conditionals))
	for _, gb := range k.Conditionals {
		blocks = append(blocks, "if "+p.Body(gb.Guard)+"\nthen\n"+p.Body(gb.Body))
	}
	out := strings.Join(blocks, "\nel")
	if len(k.Else) > 0 {
		out += "\nelse\n" + p.Body(k.Else)
	}
	return out + "\nfi"
}

func (p *Printer) forLoop(k *ast.For) string {
	head := "for " + k.Var
	if k.In {
		words := make([]string, 0, len(k.Words))
		for _, w := range k.Words {
			words = append(words, p.complex(w))
		}
		head = join(" ", head, "in", join(" ", words...))
	}
	return head + "\ndo\n" + p.Body(k.Body) + "\ndone"
}

func (p *Printer) caseArms(k *ast.Case) string {
	arms := make([]string, 0, len(k.Arms))
	for _, arm := range k.Arms {
		patterns := make([]string, 0, len(arm.Patterns))
		for _, pat := range arm.Patterns {
			patterns = append(patterns, p.complex(pat))
		}
		text := strings.Join(patterns, " | ") + ")"
		if body := p.Body(arm.Body); body != "" {
			text += "\n" + body
		}
		arms = append(arms, text+"\n;;")
	}
	return join("\n", "case "+p.complex(k.Word)+" in", strings.Join(arms, "\n"), "esac")
}
