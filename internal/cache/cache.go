// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"github.com/apex/log"

	"github.com/staranto/unspackgo/internal/ast"
)

// Entry is one memoized command.
type Entry struct {
	// Key is the fingerprint digest of the normalized command.
	Key string
	// Name is the generated function name callers use, e.g. load_<Key>.
	Name string
	// Command is the normalized clone that the compile directive runs.
	Command *ast.SimpleCommand
	// Hits counts the call sites that resolved to this entry.
	Hits int
}

// Table holds at most one Entry per key, in first-insertion order. It lives
// for a single rewrite and is never shared.
type Table struct {
	order   []string
	entries map[string]*Entry
}

func NewTable() *Table {
	return &Table{entries: map[string]*Entry{}}
}

// Insert records a call site. The first insertion for a key stores cmd; later
// ones only bump Hits. It reports whether a new entry was created.
func (t *Table) Insert(key, name string, cmd *ast.SimpleCommand) (*Entry, bool) {
	if e, ok := t.entries[key]; ok {
		e.Hits++
		log.Debugf("cache hit %s (%d)", name, e.Hits)
		return e, false
	}

	e := &Entry{Key: key, Name: name, Command: cmd, Hits: 1}
	t.entries[key] = e
	t.order = append(t.order, key)
	log.Debugf("cache insert %s", name)
	return e, true
}

// Get returns the entry for key.
func (t *Table) Get(key string) (*Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Delete drops the entry for key.
func (t *Table) Delete(key string) {
	if _, ok := t.entries[key]; !ok {
		return
	}
	delete(t.entries, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Len is the number of entries.
func (t *Table) Len() int {
	return len(t.order)
}

// Entries returns the entries in first-insertion order.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.entries[k])
	}
	return out
}
