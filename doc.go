// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// unspackgo is the main package for the unspack command line tool. It reads
// a shell script, memoizes its spack load calls behind generated functions,
// and writes the rewritten script to stdout.
package main
