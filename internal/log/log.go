// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// UNSPACK_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("UNSPACK_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(NewHandler(os.Stderr))

	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.ErrorLevel
	}
	log.SetLevel(lvl)
}

// CustomHandler formats log messages and writes them to W. Stdout is
// reserved for the generated script, so W is normally stderr.
type CustomHandler struct {
	W  io.Writer
	mu sync.Mutex
}

func NewHandler(w io.Writer) *CustomHandler {
	return &CustomHandler{W: w}
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.W, "%s %.1s %s\n", timestamp, level, e.Message)
	return err
}
