package options

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// HelpWidth is the column help text is wrapped at.
const HelpWidth = 80

// Help reflows help text to HelpWidth terminal columns. Blank lines separate
// paragraphs and are kept; activity paths and other words are never split.
func Help(text string) string {
	var paragraphs []string
	for _, p := range strings.Split(strings.TrimSpace(text), "\n\n") {
		if words := strings.Fields(p); len(words) > 0 {
			paragraphs = append(paragraphs, fill(words, HelpWidth))
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

func fill(words []string, width int) string {
	var b strings.Builder
	col := 0
	for i, w := range words {
		ww := runewidth.StringWidth(w)
		switch {
		case i == 0:
		case col+1+ww > width:
			b.WriteByte('\n')
			col = 0
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(w)
		col += ww
	}
	return b.String()
}
