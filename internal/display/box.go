package display

import (
	"fmt"
	"io"
	"strings"
)

type boxLine struct {
	text    string
	divider bool
}

// Box renders a fixed-width bordered block:
//
//	┌──────┐
//	│ text │
//	├──────┤
//	└──────┘
//
// Width is the number of columns between the two vertical borders.
type Box struct {
	Width int
	lines []boxLine
}

// NewBox creates a box whose interior is width columns wide.
func NewBox(width int) *Box {
	return &Box{Width: width}
}

// Line adds one padded line, truncated if it does not fit.
func (b *Box) Line(text string) *Box {
	b.lines = append(b.lines, boxLine{text: text})
	return b
}

// Wrapped adds text word-wrapped to the box interior.
func (b *Box) Wrapped(text string) *Box {
	for _, line := range WrapText(text, b.contentWidth()) {
		b.Line(line)
	}
	return b
}

// Centered adds one line centered in the box interior.
func (b *Box) Centered(text string) *Box {
	return b.Line(Center(text, b.contentWidth()))
}

// Divider adds a ├───┤ separator.
func (b *Box) Divider() *Box {
	b.lines = append(b.lines, boxLine{divider: true})
	return b
}

func (b *Box) contentWidth() int {
	return b.Width - 2
}

// String returns the rendered box, one line per row, newline-terminated.
func (b *Box) String() string {
	rule := strings.Repeat("─", b.Width)

	var sb strings.Builder
	sb.WriteString("┌" + rule + "┐\n")
	for _, l := range b.lines {
		if l.divider {
			sb.WriteString("├" + rule + "┤\n")
			continue
		}
		sb.WriteString("│ " + PadRight(l.text, b.contentWidth()) + " │\n")
	}
	sb.WriteString("└" + rule + "┘\n")
	return sb.String()
}

// Render writes the box to w.
func (b *Box) Render(w io.Writer) error {
	_, err := fmt.Fprint(w, b.String())
	return err
}
