// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package printer

import (
	"strconv"
	"strings"

	"github.com/staranto/unspackgo/internal/ast"
)

func (p *Printer) complex(w ast.ComplexWord) string {
	switch w := w.(type) {
	case *ast.Concat:
		parts := make([]ast.Node, 0, len(w.Words))
		for _, word := range w.Words {
			parts = append(parts, word)
		}
		return p.adjacent(parts)
	case ast.Word:
		return p.word(w)
	default:
		return p.unsupported()
	}
}

func (p *Printer) word(w ast.Word) string {
	switch w := w.(type) {
	case *ast.SingleQuoted:
		return "'" + w.Value + "'"
	case *ast.DoubleQuoted:
		parts := make([]ast.Node, 0, len(w.Parts))
		for _, part := range w.Parts {
			parts = append(parts, part)
		}
		return `"` + p.adjacent(parts) + `"`
	case ast.SimpleWord:
		return p.simpleWord(w)
	default:
		return p.unsupported()
	}
}

// adjacent renders parts with no separator. A bare $name whose successor
// starts with a name character is braced so the two never merge.
func (p *Printer) adjacent(parts []ast.Node) string {
	out := make([]string, len(parts))
	for i := len(parts) - 1; i >= 0; i-- {
		if prm, ok := parts[i].(*ast.Param); ok && i+1 < len(parts) && startsName(out[i+1]) {
			out[i] = p.param(prm, true)
			continue
		}
		out[i] = p.Node(parts[i])
	}
	return strings.Join(out, "")
}

func startsName(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func (p *Printer) simpleWord(w ast.SimpleWord) string {
	switch w := w.(type) {
	case *ast.Literal:
		return w.Value
	case *ast.Escaped:
		return `\` + w.Value
	case *ast.Special:
		return w.Kind.String()
	case *ast.Param:
		return p.param(w, false)
	case *ast.Length:
		return "${#" + paramName(w.Param) + "}"
	case *ast.Arith:
		if w.Expr == nil {
			return "$(())"
		}
		return "$((" + p.arith(w.Expr) + "))"
	case *ast.CommandSubst:
		body := p.Body(w.Body)
		// $(( would open an arithmetic expansion.
		if strings.HasPrefix(body, "(") {
			body = " " + body
		}
		return "$(" + body + ")"
	case *ast.ParamSubst:
		return p.paramSubst(w)
	default:
		return p.unsupported()
	}
}

func (p *Printer) param(prm *ast.Param, braced bool) string {
	switch prm.Kind {
	case ast.ParamVar:
		if braced {
			return "${" + prm.Name + "}"
		}
		return "$" + prm.Name
	case ast.ParamPositional:
		if braced || prm.N > 9 {
			return "${" + strconv.Itoa(prm.N) + "}"
		}
		return "$" + strconv.Itoa(prm.N)
	default:
		return "$" + paramName(prm)
	}
}

// paramName is the parameter as written inside ${...}.
func paramName(prm *ast.Param) string {
	switch prm.Kind {
	case ast.ParamVar:
		return prm.Name
	case ast.ParamPositional:
		return strconv.Itoa(prm.N)
	case ast.ParamAt:
		return "@"
	case ast.ParamStar:
		return "*"
	case ast.ParamPound:
		return "#"
	case ast.ParamQuestion:
		return "?"
	case ast.ParamDash:
		return "-"
	case ast.ParamDollar:
		return "$"
	case ast.ParamBang:
		return "!"
	}
	return Sentinel
}

func (p *Printer) paramSubst(s *ast.ParamSubst) string {
	op := s.Op.String()
	if s.Colon && s.Op.Colonable() {
		op = ":" + op
	}
	word := ""
	if s.Word != nil {
		word = p.complex(s.Word)
	}
	return "${" + paramName(s.Param) + op + word + "}"
}
