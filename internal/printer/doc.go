// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package printer renders ast nodes back to shell source. The output reparses
// to the same tree. Nodes that cannot be rendered print as a sentinel word and
// are counted.
package printer
