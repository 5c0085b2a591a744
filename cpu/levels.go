package cpu

// Level is a warning level used to highlight slow or long instructions.
type Level int

// Warning levels, from cheapest to most expensive.
const (
	LevelLow Level = iota
	LevelMed
	LevelHigh
	LevelVHigh
)

var levelNames = [...]string{"low", "med", "high", "vhigh"}

func (l Level) String() string {
	if l < LevelLow || l > LevelVHigh {
		return "unknown"
	}
	return levelNames[l]
}

// TimingLevel grades a timing by its clock count.
func TimingLevel(t Timing) Level {
	switch {
	case t.Clock > 30:
		return LevelVHigh
	case t.Clock > 20:
		return LevelHigh
	case t.Clock >= 12:
		return LevelMed
	default:
		return LevelLow
	}
}

// Level grades the timing by its clock count.
func (t Timing) Level() Level {
	return TimingLevel(t)
}

// LengthLevel grades an encoded instruction length in bytes.
func LengthLevel(bytes int) Level {
	switch {
	case bytes > 6:
		return LevelVHigh
	case bytes > 4:
		return LevelHigh
	case bytes == 4:
		return LevelMed
	default:
		return LevelLow
	}
}
