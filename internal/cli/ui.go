package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tsio "github.com/matzehuels/treesearch/pkg/io"
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
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
	pathSep     = " › "
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(10)
	fmt.Fprintln(w, "  "+keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Search Results
// =============================================================================

// printResult prints a search result in human-readable form.
func printResult(w io.Writer, r tsio.Result) {
	if isCollection(r.Algorithm) {
		printCollection(w, r)
		return
	}

	switch r.Kind {
	case "success":
		printSuccess(w, "Found goal at depth %s %s", StyleNumber.Render(strconv.Itoa(r.Depth)), StyleDim.Render("("+r.Algorithm+")"))
		printKeyValue(w, "Path", strings.Join(r.States, pathSep))
		if len(r.Actions) > 0 {
			printKeyValue(w, "Actions", strings.Join(r.Actions, pathSep))
		}
		printKeyValue(w, "Cost", strconv.FormatFloat(r.Cost, 'g', -1, 64))
	case "cutoff":
		printWarning(w, "Search cut off at depth limit %d", r.Stats.Limit)
	default:
		printError(w, "No goal reachable (%s)", r.Algorithm)
	}
	printStats(w, r)
}

func printCollection(w io.Writer, r tsio.Result) {
	if len(r.Paths) == 0 {
		if r.BoundedRegionsRemain {
			printWarning(w, "No goals within depth limit %d", r.Stats.Limit)
		} else {
			printError(w, "No goal reachable (%s)", r.Algorithm)
		}
		printStats(w, r)
		return
	}

	noun := "paths"
	if len(r.Paths) == 1 {
		noun = "path"
	}
	printSuccess(w, "Found %s goal %s %s", StyleNumber.Render(strconv.Itoa(len(r.Paths))), noun, StyleDim.Render("("+r.Algorithm+")"))
	for i, p := range r.Paths {
		printKeyValue(w, strconv.Itoa(i+1), strings.Join(p, pathSep))
	}
	if r.BoundedRegionsRemain {
		printWarning(w, "Branches below depth %d were not explored; deeper goals may exist", r.Stats.Limit)
	}
	printStats(w, r)
}

func isCollection(algorithm string) bool {
	return strings.HasSuffix(algorithm, "-all")
}

// printStats prints search counters on a single dim line.
func printStats(w io.Writer, r tsio.Result) {
	s := r.Stats
	parts := []string{
		fmt.Sprintf("limit %d", s.Limit),
		fmt.Sprintf("%d iterations", s.Iterations),
		fmt.Sprintf("%d generated", s.Generated),
		fmt.Sprintf("%d expanded", s.Expanded),
	}
	if s.Pruned > 0 {
		parts = append(parts, fmt.Sprintf("%d pruned", s.Pruned))
	}
	if s.Cutoffs > 0 {
		parts = append(parts, fmt.Sprintf("%d cut off", s.Cutoffs))
	}
	parts = append(parts, fmt.Sprintf("frontier ≤ %d", s.MaxFrontier))

	status := iconFresh
	statusStyle := styleComputed
	if r.Cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Fprintln(w, line)
}
