package cpu

import (
	"encoding/json"
	"fmt"
)

// Timing is the execution time of an instruction: clock periods plus the
// number of bus read and write cycles.
type Timing struct {
	Clock int
	Read  int
	Write int
}

// Add returns the component-wise sum of two timings.
func (t Timing) Add(o Timing) Timing {
	return Timing{t.Clock + o.Clock, t.Read + o.Read, t.Write + o.Write}
}

// Mul scales every component by n.
func (t Timing) Mul(n int) Timing {
	return Timing{t.Clock * n, t.Read * n, t.Write * n}
}

// Min returns the component-wise minimum of two timings.
func (t Timing) Min(o Timing) Timing {
	return Timing{min(t.Clock, o.Clock), min(t.Read, o.Read), min(t.Write, o.Write)}
}

// Max returns the component-wise maximum of two timings.
func (t Timing) Max(o Timing) Timing {
	return Timing{max(t.Clock, o.Clock), max(t.Read, o.Read), max(t.Write, o.Write)}
}

// String formats the timing the way the 68000 manuals do: clock(read/write).
func (t Timing) String() string {
	return fmt.Sprintf("%d(%d/%d)", t.Clock, t.Read, t.Write)
}

// MarshalJSON encodes the timing as a [clock, read, write] triple.
func (t Timing) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{t.Clock, t.Read, t.Write})
}

// UnmarshalJSON decodes a [clock, read, write] triple.
func (t *Timing) UnmarshalJSON(data []byte) error {
	var v [3]int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding timing: %w", err)
	}
	*t = Timing{v[0], v[1], v[2]}
	return nil
}
