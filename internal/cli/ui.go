package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rohan-flutterint/graphviz/pkg/pipeline"
)

// statusOut receives status lines. Documents go to stdout, so status output
// goes to stderr.
var statusOut io.Writer = os.Stderr

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

// Styles shared by the commands and the inspect views.
var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim   = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printStatus(icon string, style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(statusOut, style.Render(icon)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printStatus(iconSuccess, styleIconSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(iconError, styleIconError, format, args...) }
func printInfo(format string, args ...any)    { printStatus(iconInfo, styleIconInfo, format, args...) }

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats prints one line such as "3 graphs · 5 nodes · 4 edges · 1.2 KiB · cached".
func printStats(s pipeline.Stats, cached bool) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(statsLine(s, cached)))
}

func statsLine(s pipeline.Stats, cached bool) string {
	var parts []string
	for _, c := range []struct {
		n    int
		unit string
	}{{s.Graphs, "graphs"}, {s.Nodes, "nodes"}, {s.Edges, "edges"}} {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.unit))
		}
	}
	parts = append(parts, formatBytes(s.Bytes))
	if cached {
		parts = append(parts, "cached")
	} else {
		parts = append(parts, "fresh")
	}
	return strings.Join(parts, " · ")
}

// formatBytes renders n with a binary unit.
func formatBytes(n int) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	}
}
