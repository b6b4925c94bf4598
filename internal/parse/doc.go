// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package parse turns shell source into ast statements using
// mvdan.cc/sh/v3/syntax. Parsing is per statement: a statement that fails is
// reported and skipped, and the rest of the file is still converted.
package parse
