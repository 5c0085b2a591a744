// Package format renders resolved assembly lines and their totals.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/Urethramancer/m68kcounter/assembler"
)

// Formatter writes lines and totals to w.
type Formatter interface {
	Format(w io.Writer, lines []*assembler.Line, totals assembler.Totals) error
}

// Element is a part of the output that can be included or left out.
type Element string

// Output elements.
const (
	ElementText    Element = "text"
	ElementTimings Element = "timings"
	ElementBytes   Element = "bytes"
	ElementTotals  Element = "totals"
)

// DefaultInclude lists all output elements.
const DefaultInclude = "text,timings,bytes,totals"

// Include is the set of elements to output.
type Include map[Element]bool

// ParseInclude parses a comma separated list of output elements.
func ParseInclude(s string) (Include, error) {
	inc := Include{}
	for _, name := range strings.Split(strings.ToLower(s), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		e := Element(name)
		switch e {
		case ElementText, ElementTimings, ElementBytes, ElementTotals:
			inc[e] = true
		default:
			return nil, fmt.Errorf("unknown output element '%s'", name)
		}
	}
	return inc, nil
}

// AllElements returns an Include with every element set.
func AllElements() Include {
	return Include{
		ElementText:    true,
		ElementTimings: true,
		ElementBytes:   true,
		ElementTotals:  true,
	}
}

// lines reports whether any per line element is included.
func (inc Include) lines() bool {
	return inc[ElementText] || inc[ElementTimings] || inc[ElementBytes]
}
