package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal colors used for export summaries.
var (
	accentColor = lipgloss.Color("36")
	doneColor   = lipgloss.Color("35")
	warnColor   = lipgloss.Color("220")
	pathColor   = lipgloss.Color("255")
	labelColor  = lipgloss.Color("245")
	faintColor  = lipgloss.Color("240")
)

var (
	styleFaint  = lipgloss.NewStyle().Foreground(faintColor)
	stylePath   = lipgloss.NewStyle().Foreground(pathColor)
	styleCount  = lipgloss.NewStyle().Foreground(accentColor)
	styleTable  = lipgloss.NewStyle().Foreground(labelColor).Width(16)
	styleWarned = lipgloss.NewStyle().Foreground(warnColor)
)

// marker is the leading glyph of a status line.
type marker struct {
	glyph string
	style lipgloss.Style
	body  *lipgloss.Style // nil leaves the message unstyled
}

var (
	markDone = marker{"✓", lipgloss.NewStyle().Foreground(doneColor), nil}
	markWarn = marker{"!", styleWarned, &styleWarned}
	markNote = marker{"›", lipgloss.NewStyle().Foreground(labelColor), nil}
)

func (m marker) print(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if m.body != nil {
		msg = m.body.Render(msg)
	}
	fmt.Println(m.style.Render(m.glyph), msg)
}

// printSuccess reports a finished export, check or cache operation.
func printSuccess(format string, args ...any) { markDone.print(format, args...) }

// printWarning reports a skipped material or a suspicious mapping.
func printWarning(format string, args ...any) { markWarn.print(format, args...) }

func printInfo(format string, args ...any) { markNote.print(format, args...) }

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleFaint.Render(fmt.Sprintf(format, args...)))
}

// printFile lists one written file: scene.xml, a mesh or a diagram.
func printFile(path string) {
	fmt.Println("  " + styleFaint.Render("→") + " " + stylePath.Render(path))
}

// printKeyValue prints a mapping table name with its entry count.
func printKeyValue(key, value string) {
	fmt.Println("  " + styleTable.Render(key) + " " + styleCount.Render(value))
}

// printStats joins export counts into one dimmed line.
func printStats(parts ...string) {
	fmt.Println("  " + styleFaint.Render(strings.Join(parts, " · ")))
}
