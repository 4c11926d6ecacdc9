package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/kennyg/scribe/internal/canonical"
)

// IsTTY indicates whether stdout is an interactive terminal.
// When false, UI functions produce plain text without colors or decorations.
var IsTTY = term.IsTerminal(os.Stdout.Fd())

// ═══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Ink on vellum
// ═══════════════════════════════════════════════════════════════════════════════

var (
	// Primary palette
	Ink     = lipgloss.Color("#5DADE2") // Bright ink blue
	Indigo  = lipgloss.Color("#6C5CE7") // Deep indigo
	Teal    = lipgloss.Color("#76D7C4") // Quiet teal
	Vellum  = lipgloss.Color("#FAE5D3") // Pale vellum
	Sepia   = lipgloss.Color("#A67B5B") // Faded sepia

	// Accents
	Gold    = lipgloss.Color("#F4D03F")
	Copper  = lipgloss.Color("#DC7633")
	Green   = lipgloss.Color("#58D68D")
	Emerald = lipgloss.Color("#27AE60")
	Purple  = lipgloss.Color("#9B59B6")
	Pink    = lipgloss.Color("#FF6B9D")
	Magenta = lipgloss.Color("#E91E8C")

	// Neutrals
	White    = lipgloss.Color("#FDFEFE")
	Gray     = lipgloss.Color("#AAB7B8")
	DarkGray = lipgloss.Color("#5D6D7E")
	Black    = lipgloss.Color("#1C2833")
)

// ═══════════════════════════════════════════════════════════════════════════════
// TEXT STYLES
// ═══════════════════════════════════════════════════════════════════════════════

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ink)

	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Teal)

	Success = lipgloss.NewStyle().
		Foreground(Green)

	Error = lipgloss.NewStyle().
		Foreground(Pink).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Copper)

	Info = lipgloss.NewStyle().
		Foreground(Ink)

	Muted = lipgloss.NewStyle().
		Foreground(Gray)

	Dim = lipgloss.NewStyle().
		Foreground(DarkGray)

	Highlight = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)

	Code = lipgloss.NewStyle().
		Foreground(Magenta)
)

// ═══════════════════════════════════════════════════════════════════════════════
// BADGES - Feature indicators
// ═══════════════════════════════════════════════════════════════════════════════

var baseBadge = lipgloss.NewStyle().
	Padding(0, 1).
	Bold(true)

var kindBadges = map[canonical.Kind]struct {
	label string
	color lipgloss.Color
}{
	canonical.KindRules:     {"RULES", Ink},
	canonical.KindIgnore:    {"IGNORE", Copper},
	canonical.KindMCP:       {"MCP", Purple},
	canonical.KindCommands:  {"CMD", Emerald},
	canonical.KindSubagents: {"AGENT", Magenta},
	canonical.KindSkills:    {"SKILL", Gold},
	canonical.KindHooks:     {"HOOK", Teal},
}

// KindBadge returns the badge for a feature kind.
func KindBadge(kind canonical.Kind) string {
	b, ok := kindBadges[kind]
	if !ok {
		b.label = strings.ToUpper(string(kind))
		b.color = Gray
	}
	if !IsTTY {
		return "[" + b.label + "]"
	}
	fg := White
	if b.color == Gold {
		fg = Black
	}
	return baseBadge.Background(b.color).Foreground(fg).Render(b.label)
}

// StatusOK returns the success status badge
func StatusOK() string {
	if !IsTTY {
		return "[OK]"
	}
	return baseBadge.Background(Green).Foreground(White).Render("✓")
}

// StatusWarn returns the warning status badge
func StatusWarn() string {
	if !IsTTY {
		return "[!]"
	}
	return baseBadge.Background(Copper).Foreground(White).Render("!")
}

// StatusError returns the error status badge
func StatusError() string {
	if !IsTTY {
		return "[ERR]"
	}
	return baseBadge.Background(Pink).Foreground(White).Render("✗")
}

// ═══════════════════════════════════════════════════════════════════════════════
// LOGO
// ═══════════════════════════════════════════════════════════════════════════════

// Logo returns the scribe wordmark.
func Logo() string {
	if !IsTTY {
		return "\n  SCRIBE - One source of truth for AI assistant configs\n"
	}

	lines := []struct {
		text  string
		color lipgloss.Color
	}{
		{"", Black},
		{"   ▄▀▀ ▄▀▀ █▀▄ █ █▀▄ █▀▀", Ink},
		{"   ▀▀▄ █   █▀▄ █ █▀▄ █▀▀", Indigo},
		{"   ▀▀  ▀▀▀ ▀ ▀ ▀ ▀▀  ▀▀▀", Purple},
		{"", Black},
		{"   one source, every assistant", DarkGray},
		{"", Black},
	}

	var result strings.Builder
	for _, line := range lines {
		result.WriteString(lipgloss.NewStyle().Foreground(line.color).Render(line.text))
		result.WriteString("\n")
	}
	return result.String()
}

// LogoCompact returns a smaller wordmark for headers.
func LogoCompact() string {
	if !IsTTY {
		return "SCRIBE"
	}
	quill := lipgloss.NewStyle().Foreground(Sepia).Render("✒")
	name := lipgloss.NewStyle().Foreground(Ink).Bold(true).Render("SCRIBE")
	return fmt.Sprintf(" %s %s ", quill, name)
}

// ═══════════════════════════════════════════════════════════════════════════════
// DECORATIVE ELEMENTS
// ═══════════════════════════════════════════════════════════════════════════════

// Divider returns a horizontal divider
func Divider(width int) string {
	return lipgloss.NewStyle().
		Foreground(DarkGray).
		Render(strings.Repeat("─", width))
}

// SectionHeader creates a decorated section header
func SectionHeader(title string) string {
	if !IsTTY {
		return fmt.Sprintf("=== %s ===", title)
	}

	width := TerminalWidth()
	if width > 80 {
		width = 80
	}

	titleStyled := lipgloss.NewStyle().
		Foreground(Ink).
		Bold(true).
		Render(title)

	titleLen := lipgloss.Width(title)
	padLeft := (width - titleLen - 6) / 2
	padRight := width - titleLen - 6 - padLeft

	left := lipgloss.NewStyle().Foreground(DarkGray).Render(strings.Repeat("─", padLeft) + "┤ ")
	right := lipgloss.NewStyle().Foreground(DarkGray).Render(" ├" + strings.Repeat("─", padRight))

	return left + titleStyled + right
}

// ═══════════════════════════════════════════════════════════════════════════════
// TABLES - For the tools matrix
// ═══════════════════════════════════════════════════════════════════════════════

// TableHeader creates a styled table header
func TableHeader(columns ...string) string {
	var cells []string
	for _, col := range columns {
		cells = append(cells, lipgloss.NewStyle().
			Foreground(Ink).
			Bold(true).
			Render(col))
	}
	return strings.Join(cells, "  ")
}

// TableRow creates a styled table row
func TableRow(columns ...string) string {
	var cells []string
	for i, col := range columns {
		style := lipgloss.NewStyle().Foreground(White)
		if i > 0 {
			style = style.Foreground(Gray)
		}
		cells = append(cells, style.Render(col))
	}
	return strings.Join(cells, "  ")
}

// ═══════════════════════════════════════════════════════════════════════════════
// STATUS LINE COMPONENTS
// ═══════════════════════════════════════════════════════════════════════════════

// StatusLine creates a status line with icon and message
func StatusLine(icon, message string, color lipgloss.Color) string {
	if !IsTTY {
		return fmt.Sprintf("  %s %s", icon, message)
	}
	iconStyled := lipgloss.NewStyle().Foreground(color).Render(icon)
	msgStyled := lipgloss.NewStyle().Foreground(color).Render(message)
	return fmt.Sprintf("  %s %s", iconStyled, msgStyled)
}

// SuccessLine creates a success status line
func SuccessLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  OK: %s", message)
	}
	return StatusLine("✓", message, Green)
}

// ErrorLine creates an error status line
func ErrorLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  ERROR: %s", message)
	}
	return StatusLine("✗", message, Pink)
}

// WarningLine creates a warning status line
func WarningLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  WARN: %s", message)
	}
	return StatusLine("!", message, Copper)
}

// InfoLine creates an info status line
func InfoLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  %s", message)
	}
	return StatusLine("→", message, Ink)
}

// ═══════════════════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════════════════

// Pad adds padding to text
func Pad(text string, left int) string {
	return strings.Repeat(" ", left) + text
}

// Truncate truncates text to max length with ellipsis
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}

// Render applies a lipgloss style to text, returning plain text in non-TTY environments.
// Use this wrapper when you want TTY-aware styling.
func Render(style lipgloss.Style, text string) string {
	if !IsTTY {
		return text
	}
	return style.Render(text)
}

// Convenience functions for TTY-aware rendering of common styles

// RenderMuted renders text in muted style (TTY-aware)
func RenderMuted(text string) string {
	return Render(Muted, text)
}

// RenderDim renders text in dim style (TTY-aware)
func RenderDim(text string) string {
	return Render(Dim, text)
}

// RenderHighlight renders text in highlight style (TTY-aware)
func RenderHighlight(text string) string {
	return Render(Highlight, text)
}

// RenderSuccess renders text in success style (TTY-aware)
func RenderSuccess(text string) string {
	return Render(Success, text)
}

// RenderError renders text in error style (TTY-aware)
func RenderError(text string) string {
	return Render(Error, text)
}

// RenderWarning renders text in warning style (TTY-aware)
func RenderWarning(text string) string {
	return Render(Warning, text)
}

// RenderInfo renders text in info style (TTY-aware)
func RenderInfo(text string) string {
	return Render(Info, text)
}

// TerminalWidth returns the current terminal width, defaulting to 80 if unknown
func TerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
