// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the unspack CLI. It wires flags, config file
// sources, validators, and the transform action.
package command
