package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/calcmaster/internal/cli"
	"github.com/Veraticus/calcmaster/internal/favorites"
	"github.com/Veraticus/calcmaster/internal/history"
)

func historyTable(entries []history.Entry) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{strconv.Itoa(i + 1), e.Timestamp, e.Calculation, e.Result}
	}
	return cli.RenderTable([]string{"#", "Time", "Calculation", "Result"}, rows)
}

func statsView(s history.Stats) string {
	if s.Total == 0 {
		return cli.FormatInfo("No calculations in history.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total calculations: %d\n", s.Total)
	fmt.Fprintf(&b, "First calculation:  %s\n", s.FirstTimestamp)
	fmt.Fprintf(&b, "Last calculation:   %s\n\n", s.LastTimestamp)

	var rows [][]string
	for _, k := range history.Kinds {
		if n := s.ByType[k]; n > 0 {
			rows = append(rows, []string{string(k), strconv.Itoa(n)})
		}
	}
	b.WriteString(cli.RenderTable([]string{"Type", "Count"}, rows))
	return cli.RenderBox(cli.ChartIcon+" History Statistics", b.String())
}

func favoritesTable(entries []favorites.Entry) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			e.Name,
			e.Expression,
			e.Category,
			strconv.Itoa(e.UsageCount),
			e.LastUsedDisplay(),
		}
	}
	return cli.RenderTable([]string{"#", "Name", "Expression", "Category", "Used", "Last Used"}, rows)
}
