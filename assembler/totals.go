package assembler

import "github.com/Urethramancer/m68kcounter/cpu"

// Totals sums the sizes and timings of a sequence of lines.
type Totals struct {
	// IsRange is set when the minimum and maximum differ, i.e. the total
	// depends on which way branches go.
	IsRange bool       `json:"isRange"`
	Min     cpu.Timing `json:"min"`
	Max     cpu.Timing `json:"max"`

	Bytes       int `json:"bytes"`
	BSSBytes    int `json:"bssBytes"`
	ObjectBytes int `json:"objectBytes"`
}

// CalculateTotals adds up the bytes and timings of lines. Each line adds
// the component-wise minimum and maximum of its timing alternatives.
func CalculateTotals(lines []*Line) Totals {
	var t Totals
	for _, line := range lines {
		switch {
		case line.MacroLines != nil:
			// expansions may switch sections part way through
			sub := CalculateTotals(line.MacroLines)
			t.Bytes += sub.Bytes
			t.BSSBytes += sub.BSSBytes
			t.ObjectBytes += sub.ObjectBytes

		case line.Bytes != 0:
			t.Bytes += line.Bytes
			if line.BSS {
				t.BSSBytes += line.Bytes
			} else {
				t.ObjectBytes += line.Bytes
			}
		}

		if line.Timing == nil || len(line.Timing.Values) == 0 {
			continue
		}
		t.Min = t.Min.Add(line.Timing.Min())
		t.Max = t.Max.Add(line.Timing.Max())
	}

	t.IsRange = t.Min != t.Max
	return t
}
