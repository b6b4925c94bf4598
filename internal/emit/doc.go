// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package emit assembles the generated script: bootstrap line, memoization
// helper, compile directives, and the deferred body, always in that order.
package emit
