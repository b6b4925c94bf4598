// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/staranto/unspackgo/internal/command"
	mylog "github.com/staranto/unspackgo/internal/log"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args))
}

func realMain(args []string) int {
	mylog.InitLogger()

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No input script specified.")
		_ = app.Run(ctx, append(args, "--help"))
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, command.ErrUsage) {
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}
