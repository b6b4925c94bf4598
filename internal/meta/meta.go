// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/unspackgo/internal/config"
)

// Meta is the per-invocation state shared with command actions.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	Profile     string
	StartingDir string
}

// Version is stamped at build time with -ldflags.
var Version = "dev"
