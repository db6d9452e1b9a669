// Package styles defines the terminal look of texrack output and the picker.
// Colors follow the Catppuccin Mocha palette.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	Mauve    = lipgloss.Color("#CBA6F7")
	Red      = lipgloss.Color("#F38BA8")
	Peach    = lipgloss.Color("#FAB387")
	Green    = lipgloss.Color("#A6E3A1")
	Sapphire = lipgloss.Color("#74C7EC")
	Text     = lipgloss.Color("#CDD6F4")
	Subtext0 = lipgloss.Color("#A6ADC8")
	Overlay0 = lipgloss.Color("#6C7086")
	Surface1 = lipgloss.Color("#45475A")
)

// Semantic colors
var (
	Primary = Mauve
	Accent  = Sapphire
	Danger  = Red
	Warning = Peach
	Success = Green
	Muted   = Overlay0
	Border  = Surface1
)

var (
	// Title heads a command's output or the picker frame.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	// Label is the left column of key/value output.
	Label = lipgloss.NewStyle().
		Foreground(Subtext0).
		Width(10)

	// Value is the right column of key/value output.
	Value = lipgloss.NewStyle().
		Foreground(Text)

	// ID renders identifiers.
	ID = lipgloss.NewStyle().
		Foreground(Accent)

	// Dim renders secondary details such as paths.
	Dim = lipgloss.NewStyle().
		Foreground(Muted)

	// OK marks a successful or consistent result.
	OK = lipgloss.NewStyle().
		Bold(true).
		Foreground(Success)

	// Problem marks a missing asset or an error.
	Problem = lipgloss.NewStyle().
		Bold(true).
		Foreground(Danger)

	// Caution marks orphans and other warnings.
	Caution = lipgloss.NewStyle().
		Foreground(Warning)

	// Frame surrounds the interactive picker.
	Frame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	// Help renders key hints.
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)
)

// KeyValue renders an aligned "label value" line.
func KeyValue(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, Label.Render(label), Value.Render(value))
}
