// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package rewrite is the memoizing pass. Every memoizable tool call becomes a
// generated function name backed by one cache entry per distinct command.
package rewrite
