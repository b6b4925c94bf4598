// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"embed"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"
)

const (
	// CompileFunc is the helper function each compile directive calls.
	CompileFunc = "__unspack_compile"
	// KeyVar carries the fingerprint into CompileFunc.
	KeyVar = "HASH"
	// BodyDelim is the heredoc delimiter for the deferred body. It grows when
	// a body line collides with it.
	BodyDelim = "__UNSPACK_BODY__"
)

//go:embed templates/*.tmpl
var templates embed.FS

var tmpl = template.Must(template.New("script").Funcs(template.FuncMap{
	"quote": Quote,
	"var":   func(name string) string { return "${" + name + "}" },
}).ParseFS(templates, "templates/*.tmpl"))

var shellName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Directive is one compile line: run Command once and define Name from it.
type Directive struct {
	Key     string
	Name    string
	Command string
}

// Script is everything the emitter needs, already rendered to text. Prefix
// and Sentinel must be the values the rewrite used to name entries and to
// extend their commands.
type Script struct {
	Prefix     string
	Sentinel   string
	Bootstrap  string
	Directives []Directive
	Body       []string
}

type data struct {
	Script
	Func   string
	KeyVar string
	Delim  string
}

// Write renders s to w.
func Write(w io.Writer, s Script) error {
	if !shellName.MatchString(s.Prefix) {
		return fmt.Errorf("function prefix %q is not a valid shell name", s.Prefix)
	}
	for _, d := range s.Directives {
		if d.Name != s.Prefix+d.Key {
			return fmt.Errorf("directive %s does not match prefix %q", d.Name, s.Prefix)
		}
	}

	err := tmpl.ExecuteTemplate(w, "script.sh.tmpl", data{
		Script: s,
		Func:   CompileFunc,
		KeyVar: KeyVar,
		Delim:  delimiter(s.Body),
	})
	if err != nil {
		return fmt.Errorf("failed to render script: %w", err)
	}
	return nil
}

// String renders s to a string.
func String(s Script) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, s); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Quote single-quotes s for the shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// delimiter picks a heredoc terminator that no body line equals.
func delimiter(body []string) string {
	lines := map[string]bool{}
	for _, stmt := range body {
		for _, l := range strings.Split(stmt, "\n") {
			lines[l] = true
		}
	}

	d := BodyDelim
	for lines[d] {
		d += "_"
	}
	return d
}
