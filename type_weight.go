package pacing

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Weight is an exact non-negative fraction: a cohort's relative share, a
// reserve percentage, or a per-cohort cap. Weights are kept as decimals so
// that renormalization and share computation stay exact until the single
// rounding into minor units.
type Weight struct {
	value decimal.Decimal
}

// W builds a Weight from a literal. Mostly useful in tests and scenarios.
func W[T float32 | float64 | int | int64 | decimal.Decimal](value T) Weight {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Weight{value: v}
	case float32:
		return Weight{value: decimal.NewFromFloat32(v)}
	case float64:
		return Weight{value: decimal.NewFromFloat(v)}
	case int:
		return Weight{value: decimal.NewFromInt(int64(v))}
	case int64:
		return Weight{value: decimal.NewFromInt(v)}
	default:
		panic("unsupported type")
	}
}

// ParseWeight parses a decimal string into a Weight.
func ParseWeight(s string) (Weight, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Weight{}, fmt.Errorf("%w: %q is not a decimal weight", ErrInvalidConfiguration, s)
	}
	return Weight{value: d}, nil
}

func (w Weight) IsZero() bool             { return w.value.IsZero() }
func (w Weight) IsNegative() bool         { return w.value.IsNegative() }
func (w Weight) Equal(o Weight) bool      { return w.value.Equal(o.value) }
func (w Weight) Add(o Weight) Weight      { return Weight{value: w.value.Add(o.value)} }
func (w Weight) Decimal() decimal.Decimal { return w.value }
func (w Weight) String() string           { return w.value.String() }

// InUnitInterval reports whether the weight lies in [0, 1].
func (w Weight) InUnitInterval() bool {
	return !w.value.IsNegative() && w.value.LessThanOrEqual(decimal.NewFromInt(1))
}

// Of returns the exact (unrounded) product weight * amount, in minor units.
func (w Weight) Of(a Amount) decimal.Decimal {
	return w.value.Mul(decimal.NewFromInt(int64(a)))
}

// Over returns this weight renormalized against a total: w/total.
func (w Weight) Over(total Weight) Weight {
	return Weight{value: w.value.Div(total.value)}
}

func (w Weight) MarshalJSON() ([]byte, error) { return []byte(w.value.String()), nil }

func (w *Weight) UnmarshalJSON(b []byte) error {
	var raw json.Number
	if err := json.Unmarshal(b, &raw); err != nil {
		var s string
		if err2 := json.Unmarshal(b, &s); err2 != nil {
			return fmt.Errorf("%w: weight %s", ErrInvalidConfiguration, string(b))
		}
		raw = json.Number(s)
	}
	parsed, err := ParseWeight(raw.String())
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
