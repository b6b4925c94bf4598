// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders the diagnostic tables unspack prints to stderr.
package output
