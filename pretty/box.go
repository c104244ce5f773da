package pretty

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/wrangler-opencode/common"
	"golang.org/x/term"
)

// TerminalWidth falls back to 80 columns when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		common.Trace("Failed to get terminal width, using fallback: %v", err)
		return 80
	}
	return width
}

// Box frames lines with a rounded border, or indents them when colors are off.
func Box(title string, lines ...string) string {
	body := strings.Join(lines, "\n")
	if Colorless || Disabled {
		indented := make([]string, 0, len(lines)+1)
		indented = append(indented, title)
		for _, line := range lines {
			indented = append(indented, "  "+line)
		}
		return strings.Join(indented, "\n")
	}
	width := TerminalWidth() - 4
	if width > 96 {
		width = 96
	}
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Render(title)
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("214")).
		Padding(0, 1).
		MaxWidth(width)
	return style.Render(heading + "\n" + body)
}

func Notice(title string, lines ...string) {
	common.Log("%s", Box(title, lines...))
}
