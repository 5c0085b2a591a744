package format

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Urethramancer/m68kcounter/assembler"
	"github.com/Urethramancer/m68kcounter/cpu"
	"github.com/dustin/go-humanize"
)

// annotationWidth is the column the source text starts after.
const annotationWidth = 30

// ANSI escape sequences for the warning levels.
const (
	ansiReset  = "\x1b[0m"
	ansiBgRed  = "\x1b[41m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
)

var levelColors = map[cpu.Level]string{
	cpu.LevelVHigh: ansiBgRed,
	cpu.LevelHigh:  ansiRed,
	cpu.LevelMed:   ansiYellow,
	cpu.LevelLow:   ansiGreen,
}

var ansiSequence = regexp.MustCompile(`(\x9b|\x1b\[)[0-?]*[ -/]*[@-~]`)

// PlainText writes an annotated listing: the timings and size of each line
// right aligned in front of its source text, followed by the totals.
type PlainText struct {
	Color   bool
	Include Include
}

// Format implements Formatter.
func (f PlainText) Format(w io.Writer, lines []*assembler.Line, totals assembler.Totals) error {
	inc := f.Include
	if inc == nil {
		inc = AllElements()
	}

	var out strings.Builder
	if inc.lines() {
		for _, line := range lines {
			out.WriteString(f.formatLine(inc, line))
			out.WriteByte('\n')
		}
	}

	if inc[ElementTotals] {
		out.WriteString("\nTotals:\n")
		if totals.IsRange {
			fmt.Fprintf(&out, "%s - %s\n", totals.Min, totals.Max)
		} else {
			fmt.Fprintf(&out, "%s\n", totals.Min)
		}
		fmt.Fprintf(&out, "%s bytes (%s object, %s BSS)\n",
			formatNumber(totals.Bytes), formatNumber(totals.ObjectBytes), formatNumber(totals.BSSBytes))
	}

	if _, err := io.WriteString(w, out.String()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (f PlainText) formatLine(inc Include, line *assembler.Line) string {
	var annotation strings.Builder
	if line.Timing != nil && inc[ElementTimings] {
		for i, t := range line.Timing.Values {
			if i > 0 {
				annotation.WriteString(" / ")
			}
			annotation.WriteString(f.colorize(t.String(), t.Level()))
		}
	}
	if line.Bytes != 0 && inc[ElementBytes] {
		annotation.WriteByte(' ')
		annotation.WriteString(f.colorize(formatNumber(line.Bytes), cpu.LengthLevel(line.Bytes)))
	}

	s := pad(annotation.String(), annotationWidth)
	if inc[ElementText] {
		s += " | " + line.Statement.Text
	}
	return s
}

func (f PlainText) colorize(s string, level cpu.Level) string {
	if !f.Color {
		return s
	}
	return levelColors[level] + s + ansiReset
}

// pad right aligns s to width visible columns, ignoring escape sequences.
func pad(s string, width int) string {
	visible := utf8.RuneCountInString(ansiSequence.ReplaceAllString(s, ""))
	if visible >= width {
		return s
	}
	return strings.Repeat(" ", width-visible) + s
}

// formatNumber formats n with comma thousands separators.
func formatNumber(n int) string {
	return humanize.Comma(int64(n))
}
