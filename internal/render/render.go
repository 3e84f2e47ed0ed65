// Package render prints reports to a terminal.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/verte-zerg/gotypist-stats/internal/model"
)

const (
	titleMark  = "🟄"
	titleColor = "#C89A3A"
)

// Printer writes reports one after another.
type Printer struct {
	w     io.Writer
	color bool
	style lipgloss.Style
}

// NewPrinter returns a Printer for w. Titles are styled when mode asks for
// it, or in auto mode when w is a terminal and NO_COLOR is unset.
func NewPrinter(w io.Writer, mode model.ColorMode) *Printer {
	if w == nil {
		w = os.Stdout
	}
	color := shouldUseColor(w, mode)
	renderer := lipgloss.NewRenderer(w)
	if color {
		renderer.SetColorProfile(termenv.ANSI256)
	}
	return &Printer{
		w:     w,
		color: color,
		style: renderer.NewStyle().Foreground(lipgloss.Color(titleColor)).Bold(true),
	}
}

// Title formats a report title line.
func (p *Printer) Title(title string) string {
	line := fmt.Sprintf("%s %s %s", titleMark, title, titleMark)
	if p.color {
		return p.style.Render(line)
	}
	return line
}

// Print writes each report as an empty line, its title, an empty line and
// its content.
func (p *Printer) Print(reports []model.Report) error {
	for _, r := range reports {
		if _, err := fmt.Fprintf(p.w, "\n%s\n\n", p.Title(r.Title)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := fmt.Fprintln(p.w, r.Content); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func shouldUseColor(w io.Writer, mode model.ColorMode) bool {
	switch mode {
	case model.ColorNever:
		return false
	case model.ColorAlways:
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
