// Package render formats records for terminal output, styled when the
// destination is a terminal and plain otherwise.
package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/addressbook/internal/contact"
)

// Renderer turns records and free-form lines into printable text.
type Renderer interface {
	Record(r *contact.Record) string
	Line(s string) string
}

// Verify at compile time that both renderers implement Renderer.
var (
	_ Renderer = Plain{}
	_ Renderer = Styled{}
)

// ForWriter returns a Styled renderer when w is a terminal, or Plain otherwise.
// forcePlain overrides TTY detection.
func ForWriter(w io.Writer, forcePlain bool) Renderer {
	if forcePlain || !isTTY(w) {
		return Plain{}
	}
	return NewStyled()
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Plain renders records exactly as Record.String does.
type Plain struct{}

// Record returns r.String().
func (Plain) Record(r *contact.Record) string { return r.String() }

// Line returns s unchanged.
func (Plain) Line(s string) string { return s }

// Styled renders records with lipgloss colors.
type Styled struct {
	label lipgloss.Style
	name  lipgloss.Style
	phone lipgloss.Style
	muted lipgloss.Style
}

// NewStyled returns a Styled renderer with the default palette.
func NewStyled() Styled {
	return Styled{
		label: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}),
		name:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
		phone: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
		muted: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}),
	}
}

// Record renders the same text as Record.String with the name and phones highlighted.
func (s Styled) Record(r *contact.Record) string {
	phones := r.Phones()
	values := make([]string, len(phones))
	for i, p := range phones {
		values[i] = s.phone.Render(p.Value())
	}
	return s.label.Render("Contact name: ") + s.name.Render(r.Name().Value()) +
		s.label.Render(", phones: ") + strings.Join(values, s.label.Render("; "))
}

// Line renders s in a muted color.
func (s Styled) Line(line string) string { return s.muted.Render(line) }
