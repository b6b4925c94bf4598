// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ast

// Lit returns a literal word.
func Lit(s string) *Literal {
	return &Literal{Value: s}
}

// LitWord returns a command word holding a single literal.
func LitWord(s string) *CmdWord {
	return &CmdWord{Word: Lit(s)}
}

// Simple builds a simple command from literal words.
func Simple(words ...string) *SimpleCommand {
	cmd := &SimpleCommand{}
	for _, w := range words {
		cmd.RedirectsOrCmdWords = append(cmd.RedirectsOrCmdWords, LitWord(w))
	}
	return cmd
}

// Statement wraps a single command into a top-level statement.
func Statement(cmd ListableCommand) *TopLevelCommand {
	return &TopLevelCommand{List: &AndOrList{First: cmd}}
}

// NewRedirect builds a redirect to a literal target. Pass NoFd for the
// operator's default descriptor.
func NewRedirect(op RedirectOp, fd int, target string) *Redirect {
	return &Redirect{Op: op, Fd: fd, Target: Lit(target)}
}

// Clone copies the command's token lists. Tokens themselves are shared; the
// tree never mutates a token in place.
func (c *SimpleCommand) Clone() *SimpleCommand {
	return &SimpleCommand{
		RedirectsOrEnvVars:  append([]RedirectOrEnvVar(nil), c.RedirectsOrEnvVars...),
		RedirectsOrCmdWords: append([]RedirectOrCmdWord(nil), c.RedirectsOrCmdWords...),
	}
}

// Words returns the command words, skipping interleaved redirects.
func (c *SimpleCommand) Words() []ComplexWord {
	var words []ComplexWord
	for _, t := range c.RedirectsOrCmdWords {
		if w, ok := t.(*CmdWord); ok {
			words = append(words, w.Word)
		}
	}
	return words
}

// Insert places tok at position i of the command's word list.
func (c *SimpleCommand) Insert(i int, tok RedirectOrCmdWord) {
	c.RedirectsOrCmdWords = append(c.RedirectsOrCmdWords, nil)
	copy(c.RedirectsOrCmdWords[i+1:], c.RedirectsOrCmdWords[i:])
	c.RedirectsOrCmdWords[i] = tok
}
