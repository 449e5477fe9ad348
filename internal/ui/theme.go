package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, symbols and card borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Value lipgloss.Style

	Border        lipgloss.Border
	BorderColor   lipgloss.TerminalColor
	FocusColor    lipgloss.TerminalColor
	EditingColor  lipgloss.TerminalColor
	SymAdd        string
	SymEdit       string
	SymRemove     string
	SymOK, SymErr string
}

var current = classic()

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:         "neon",
			Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Value:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("5"),
			FocusColor:   lipgloss.Color("13"),
			EditingColor: lipgloss.Color("14"),
			SymAdd:       "+", SymEdit: "✎", SymRemove: "×",
			SymOK: "✔", SymErr: "✖",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Value: plain.Bold(true),
			Border:       lipgloss.NormalBorder(),
			BorderColor:  lipgloss.NoColor{},
			FocusColor:   lipgloss.NoColor{},
			EditingColor: lipgloss.NoColor{},
			SymAdd:       "+", SymEdit: "e", SymRemove: "x",
			SymOK: "ok", SymErr: "error:",
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Value:        lipgloss.NewStyle().Bold(true),
		Border:       lipgloss.RoundedBorder(),
		BorderColor:  lipgloss.Color("8"),
		FocusColor:   lipgloss.Color("12"),
		EditingColor: lipgloss.Color("214"),
		SymAdd:       "+", SymEdit: "✎", SymRemove: "×",
		SymOK: "✔", SymErr: "✖",
	}
}

// Expose what renderers need
func Current() Theme { return current }
