// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package fingerprint names commands by a digest of their normalized
// rendering.
package fingerprint
