// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"io"

	"github.com/arthur-debert/dotlink/pkg/ui/styles"
	"github.com/arthur-debert/dotlink/pkg/ui/text"
	"github.com/charmbracelet/lipgloss"
)

// Renderer styles the text layout with the lipgloss registry
type Renderer struct {
	*text.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	lr := lipgloss.NewRenderer(w)
	inner, err := text.NewStyled(w, func(name, s string) string {
		style := styles.GetStyle(name)
		return style.Renderer(lr).Render(s)
	})
	if err != nil {
		return nil, err
	}
	return &Renderer{Renderer: inner}, nil
}
