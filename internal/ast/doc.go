// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package ast defines the shell syntax tree consumed by the printer and the
// rewrite pass. Every variant set is closed: an interface with an unexported
// marker method and a fixed list of implementing types.
package ast
