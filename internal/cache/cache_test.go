// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/unspackgo/internal/ast"
)

func TestTable_Insert(t *testing.T) {
	tbl := NewTable()
	first := ast.Simple("spack", "load", "foo")
	second := ast.Simple("spack", "load", "foo")

	e, created := tbl.Insert("k1", "load_k1", first)
	require.True(t, created)
	assert.Equal(t, 1, e.Hits)

	e, created = tbl.Insert("k1", "load_k1", second)
	assert.False(t, created)
	assert.Equal(t, 2, e.Hits)
	assert.Same(t, first, e.Command)

	assert.Equal(t, 1, tbl.Len())
}

func TestTable_Order(t *testing.T) {
	tbl := NewTable()
	for _, k := range []string{"c", "a", "b", "a"} {
		tbl.Insert(k, "load_"+k, ast.Simple(k))
	}

	var keys []string
	for _, e := range tbl.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"c", "a", "b"}, keys)
}

func TestTable_Delete(t *testing.T) {
	tbl := NewTable()
	tbl.Insert("a", "load_a", ast.Simple("a"))
	tbl.Insert("b", "load_b", ast.Simple("b"))

	tbl.Delete("a")
	tbl.Delete("missing")

	_, ok := tbl.Get("a")
	assert.False(t, ok)
	e, ok := tbl.Get("b")
	require.True(t, ok)
	assert.Equal(t, "load_b", e.Name)
	assert.Len(t, tbl.Entries(), 1)
}

func TestTable_Empty(t *testing.T) {
	tbl := NewTable()
	assert.Zero(t, tbl.Len())
	assert.Empty(t, tbl.Entries())
}
