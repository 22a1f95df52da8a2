package cmd

import (
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/workcalmkite-hue/2025mbti/internal/dataset"
)

var (
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	headingColor = color.New(color.FgCyan, color.Bold)
)

func printOK(w io.Writer, format string, args ...any) {
	okColor.Fprintf(w, "✓ "+format+"\n", args...)
}

func printWarn(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, "⚠ "+format+"\n", args...)
}

func printHeading(w io.Writer, format string, args ...any) {
	headingColor.Fprintf(w, "\n"+format+"\n", args...)
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func pct(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) + "%" }

func num(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

func cell(v dataset.Value) string {
	if !v.Present {
		return ""
	}
	return num(v.V)
}

func ordinal(i int) string { return strconv.Itoa(i + 1) }
