// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"

	"github.com/staranto/unspackgo/internal/ast"
	"github.com/staranto/unspackgo/internal/printer"
)

// DefaultPrefix is prepended to a digest to name the generated function.
const DefaultPrefix = "load_"

// Digest maps text to a fixed-width lowercase hex string.
type Digest func(string) string

var digests = map[string]Digest{
	"blake3": func(s string) string {
		sum := blake3.Sum256([]byte(s))
		return hex.EncodeToString(sum[:])
	},
	"blake2b": func(s string) string {
		sum := blake2b.Sum256([]byte(s))
		return hex.EncodeToString(sum[:])
	},
	"sha256": func(s string) string {
		sum := sha256.Sum256([]byte(s))
		return hex.EncodeToString(sum[:])
	},
}

// Names lists the supported digest algorithms.
func Names() []string {
	names := make([]string, 0, len(digests))
	for n := range digests {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the digest registered under name.
func Lookup(name string) (Digest, error) {
	d, ok := digests[name]
	if !ok {
		return nil, fmt.Errorf("unknown digest %q, must be one of %v", name, Names())
	}
	return d, nil
}

// Engine fingerprints commands.
type Engine struct {
	Digest Digest
	Prefix string
}

// New returns an Engine using the named digest and the default prefix.
func New(digest string) (*Engine, error) {
	d, err := Lookup(digest)
	if err != nil {
		return nil, err
	}
	return &Engine{Digest: d, Prefix: DefaultPrefix}, nil
}

// Normalize returns a copy of cmd holding only its words, so differing
// NAME=value prefixes and redirects share one fingerprint.
func Normalize(cmd *ast.SimpleCommand) *ast.SimpleCommand {
	n := cmd.Clone()
	n.RedirectsOrEnvVars = nil

	words := n.RedirectsOrCmdWords[:0]
	for _, tok := range n.RedirectsOrCmdWords {
		if _, ok := tok.(*ast.CmdWord); ok {
			words = append(words, tok)
		}
	}
	n.RedirectsOrCmdWords = words
	return n
}

// Sum digests the rendering of an already normalized command.
func (e *Engine) Sum(cmd *ast.SimpleCommand) string {
	return e.Digest(printer.String(cmd))
}

// Key is the cache key, and generated function name, for a digest.
func (e *Engine) Key(sum string) string {
	return e.Prefix + sum
}
