package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/asmdeps/pkg/dag"
	"github.com/matzehuels/asmdeps/pkg/observability"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleAppName     = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printError prints an error line prefixed with the application name.
func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleAppName.Render(appName+" Error:")+" "+styleIconError.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats prints run statistics on a single line.
func printStats(w io.Writer, parts ...string) {
	var line strings.Builder
	line.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			line.WriteString(StyleDim.Render(" · "))
		}
		line.WriteString(StyleDim.Render(part))
	}
	fmt.Fprintln(w, line.String())
}

// =============================================================================
// Run Summary
// =============================================================================

// summary collects analysis events for the end-of-run summary.
// It is registered as an observability.AnalysisHooks for one run.
type summary struct {
	observability.NoopAnalysisHooks

	analyzed int
	skipped  map[string]int // reason -> count
	skips    [][]string     // {full name, reason} in worklist order
	types    int
	edges    int
	duration time.Duration
}

func newSummary() *summary {
	return &summary{skipped: make(map[string]int)}
}

func (s *summary) OnAssemblyComplete(_ context.Context, _ string, types, edges int, _ time.Duration) {
	s.analyzed++
	s.types += types
	s.edges += edges
}

func (s *summary) OnAssemblySkipped(_ context.Context, fullName, reason string) {
	s.skipped[reason]++
	s.skips = append(s.skips, []string{fullName, reason})
}

func (s *summary) OnAnalysisComplete(_ context.Context, _ string, _ int, d time.Duration, _ error) {
	s.duration = d
}

// print writes the summary lines for the analyzed primary assembly.
func (s *summary) print(w io.Writer, primary string) {
	printSuccess(w, "Analyzed %s", StyleTitle.Render(primary))

	parts := []string{
		plural(s.analyzed, "assembly", "assemblies"),
		plural(s.types, "type", "types"),
		plural(s.edges, "dependency", "dependencies"),
	}
	for _, reason := range []string{"missing", "mismatch", "unreadable"} {
		if n := s.skipped[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, reason))
		}
	}
	parts = append(parts, s.duration.Round(time.Millisecond).String())
	printStats(w, parts...)
}

// printSkipped writes a table of the assemblies that were not analyzed,
// each with the short names of the assemblies in g that reference it.
func (s *summary) printSkipped(w io.Writer, g *dag.DAG) {
	if len(s.skips) == 0 {
		return
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(s.skips))
	for i, skip := range s.skips {
		rows[i] = append(skip[:2:2], strings.Join(referencedBy(g, skip[0]), ", "))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Assembly", "Reason", "Referenced by").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 {
				return StyleWarning
			}
			return StyleDim
		})
	fmt.Fprintln(w, t.Render())
}

// referencedBy returns the short names of the assemblies with an edge to id.
func referencedBy(g *dag.DAG, id string) []string {
	if g == nil {
		return nil
	}
	parents := g.Parents(id)
	names := make([]string, 0, len(parents))
	for _, p := range parents {
		name := p
		if n, ok := g.Node(p); ok && n.Meta.String("name") != "" {
			name = n.Meta.String("name")
		}
		names = append(names, name)
	}
	return names
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
