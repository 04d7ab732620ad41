// Package ui renders client screens as styled terminal text.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/gophnotes/internal/client/notify"
	"github.com/dmitrijs2005/gophnotes/internal/client/prefs"
)

type Palette struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Help    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Badge   lipgloss.Style
}

func NewPalette(theme prefs.Theme) Palette {
	if theme == prefs.ThemeLight {
		return Palette{
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
			Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")),
			Help:    lipgloss.NewStyle().Faint(true),
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			Badge:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("3")).Padding(0, 1),
		}
	}
	return Palette{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Help:    lipgloss.NewStyle().Faint(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Badge:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1),
	}
}

func (p Palette) kindStyle(k notify.Kind) (lipgloss.Style, string) {
	switch k {
	case notify.KindError:
		return p.Error, "✗"
	case notify.KindWarn:
		return p.Warn, "!"
	default:
		return p.Success, "✓"
	}
}
