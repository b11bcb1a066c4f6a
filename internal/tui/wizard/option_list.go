package wizard

import (
	"strings"

	"github.com/mark3labs/tailor/internal/tui/theme"
)

// option is one row of an OptionList.
type option struct {
	Label  string
	Detail string
}

// OptionList is a vertical single-choice list with a cursor. The chosen
// row is owned by the caller and passed to View.
type OptionList struct {
	options []option
	cursor  int
}

// NewOptionList creates a list with the cursor on the first row.
func NewOptionList(options []option) *OptionList {
	return &OptionList{options: options}
}

// Len returns the number of rows.
func (l *OptionList) Len() int {
	return len(l.options)
}

// Cursor returns the highlighted row.
func (l *OptionList) Cursor() int {
	return l.cursor
}

// SetCursor moves the cursor to i, clamped to the list.
func (l *OptionList) SetCursor(i int) {
	if len(l.options) == 0 {
		l.cursor = 0
		return
	}
	l.cursor = max(0, min(i, len(l.options)-1))
}

// Move shifts the cursor by delta, wrapping at both ends.
func (l *OptionList) Move(delta int) {
	n := len(l.options)
	if n == 0 {
		return
	}
	l.cursor = ((l.cursor+delta)%n + n) % n
}

// View renders the rows. chosen is the index of the selected row, or -1.
func (l *OptionList) View(chosen, width int) string {
	s := theme.Current().S()

	var b strings.Builder
	for i, opt := range l.options {
		marker := "  "
		if i == chosen {
			marker = s.ItemSelected.Render("✓ ")
		}

		label := opt.Label
		if i == l.cursor {
			label = s.ItemCursor.Render(" " + label + " ")
		} else {
			label = s.ItemNormal.Render(" " + label + " ")
		}

		line := marker + label
		if opt.Detail != "" {
			detail := opt.Detail
			if room := width - len(opt.Label) - 8; room > 3 && len(detail) > room {
				detail = detail[:room-1] + "…"
			}
			line += " " + s.ItemDetail.Render(detail)
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}
	return b.String()
}
