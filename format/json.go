package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Urethramancer/m68kcounter/assembler"
)

// JSON writes the lines and totals as a JSON document.
type JSON struct {
	Pretty  bool
	Include Include
}

type jsonLine struct {
	Text   *string                      `json:"text,omitempty"`
	Timing *assembler.InstructionTiming `json:"timing,omitempty"`
	Bytes  *int                         `json:"bytes,omitempty"`
}

type jsonOutput struct {
	Lines  []jsonLine        `json:"lines,omitempty"`
	Totals *assembler.Totals `json:"totals,omitempty"`
}

// Format implements Formatter.
func (f JSON) Format(w io.Writer, lines []*assembler.Line, totals assembler.Totals) error {
	inc := f.Include
	if inc == nil {
		inc = AllElements()
	}

	var out jsonOutput
	if inc.lines() {
		out.Lines = make([]jsonLine, len(lines))
		for i, line := range lines {
			jl := &out.Lines[i]
			if inc[ElementText] {
				jl.Text = &line.Statement.Text
			}
			if inc[ElementTimings] {
				jl.Timing = line.Timing
			}
			if inc[ElementBytes] {
				jl.Bytes = &line.Bytes
			}
		}
	}
	if inc[ElementTotals] {
		out.Totals = &totals
	}

	enc := json.NewEncoder(w)
	if f.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
