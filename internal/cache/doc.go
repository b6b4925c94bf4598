// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache provides the in-memory table that deduplicates expensive
// commands by fingerprint during a single rewrite.
package cache
