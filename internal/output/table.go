// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"

	"github.com/staranto/unspackgo/internal/cache"
	"github.com/staranto/unspackgo/internal/config"
	"github.com/staranto/unspackgo/internal/emit"
	"github.com/staranto/unspackgo/internal/rewrite"
)

// TableWriter renders rows under headers, honoring color and the configured
// padding.
func TableWriter(w io.Writer, headers []string, rows [][]string, color bool) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2)
	log.Debugf("padding: %v", pad)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Rows(rows...)

	// https://github.com/charmbracelet/lipgloss/issues/261
	if len(headers) > 0 {
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// Stats prints the rewrite counters, then one row per cache entry.
func Stats(w io.Writer, res *rewrite.Result, color bool) {
	st := res.Stats
	counters := []struct {
		name  string
		value int
	}{
		{"statements", st.Statements},
		{"dropped (parse error)", st.Dropped},
		{"mismatched shape", st.Mismatched},
		{"passed through", st.Passthrough},
		{"excluded", st.Excluded},
		{"call sites", st.CallSites},
		{"cache entries", st.Entries},
		{"orphan entries", st.Orphans},
		{"unsupported nodes", st.Unsupported},
	}

	rows := make([][]string, 0, len(counters))
	for _, c := range counters {
		rows = append(rows, []string{c.name, humanize.Comma(int64(c.value))})
	}
	TableWriter(w, []string{"Counter", "Value"}, rows, color)

	if res.Table == nil || res.Table.Len() == 0 {
		return
	}
	fmt.Fprintln(w)
	TableWriter(w, []string{"Entry", "Hits", "Command"}, entryRows(res.Table.Entries(), res.Script.Directives), color)
}

func entryRows(entries []*cache.Entry, directives []emit.Directive) [][]string {
	commands := map[string]string{}
	for _, d := range directives {
		commands[d.Name] = d.Command
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Name, humanize.Comma(int64(e.Hits)), commands[e.Name]})
	}
	return rows
}

// Examples renders a table of example command usages.
func Examples(w io.Writer, examples [][2]string) {
	var rows [][]string
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}
	TableWriter(w, []string{"Command", "Description"}, rows, false)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
