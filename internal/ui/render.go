package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

const defaultWrap = 100

// Renderer prints Markdown blocks and status lines to a terminal.
type Renderer struct {
	out io.Writer
	md  *glamour.TermRenderer
}

// NewRenderer uses the named glamour style, or detects one from the terminal
// background when style is empty.
func NewRenderer(out io.Writer, style string) (*Renderer, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	md, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(defaultWrap))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return &Renderer{out: out, md: md}, nil
}

func (r *Renderer) Heading(title string) {
	fmt.Fprintln(r.out, TitleStyle.Render("## "+title))
}

// Markdown renders text, printing it unchanged if glamour cannot handle it.
func (r *Renderer) Markdown(text string) {
	rendered, err := r.md.Render(text)
	if err != nil {
		fmt.Fprintln(r.out, text)
		return
	}
	fmt.Fprint(r.out, rendered)
}

func (r *Renderer) Notice(msg string) {
	fmt.Fprintln(r.out, InfoStyle.Render(msg))
}

func (r *Renderer) Error(msg string) {
	fmt.Fprintln(r.out, ErrorStyle.Render(msg))
}
