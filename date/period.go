package date

import (
	"fmt"
	"strings"
)

// Period is a pacing frequency: the length of one simulated period on the
// monthly grid.
type Period int

const (
	Monthly Period = iota
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "annual"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Months returns the number of grid months a full period of this frequency covers.
func (p Period) Months() int {
	switch p {
	case Monthly:
		return 1
	case Quarterly:
		return 3
	case Yearly:
		return 12
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod parses a frequency name. It is lenient about common synonyms.
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(p) {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "annual", "annually", "yearly", "year":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown period %q", p)
	}
}
