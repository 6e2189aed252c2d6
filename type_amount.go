package pacing

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// scale is the fixed minor-unit scale: 100 minor units (cents) per major unit.
const scale = 2

// Amount is a monetary magnitude as an integer count of minor units (cents).
//
// All engine arithmetic happens on Amount; decimals exist only at the input
// boundary (see Normalize) and where an exact fraction multiplies an Amount.
// No floating point is ever involved, so results are reproducible bit for
// bit across platforms.
type Amount int64

// Normalize converts a decimal major-unit value into minor units, applying
// banker's rounding (ROUND_HALF_EVEN) exactly once at the boundary.
func Normalize(value decimal.Decimal) Amount {
	return Amount(value.Shift(scale).RoundBank(0).IntPart())
}

// ParseAmount parses a decimal string ("1000000" or "1000000.50") into an Amount.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a decimal amount", ErrInvalidMagnitude, s)
	}
	return Normalize(d), nil
}

// MustParseAmount is like ParseAmount but panics on error. Test helper.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err.Error())
	}
	return a
}

// Decimal returns the amount in major units as an exact decimal.
func (a Amount) Decimal() decimal.Decimal { return decimal.New(int64(a), -scale) }

func (a Amount) IsZero() bool     { return a == 0 }
func (a Amount) IsNegative() bool { return a < 0 }
func (a Amount) IsPositive() bool { return a > 0 }

func (a Amount) Add(b Amount) Amount { return a + b }
func (a Amount) Sub(b Amount) Amount { return a - b }
func (a Amount) Neg() Amount         { return -a }

// Abs returns the magnitude of the amount.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// MinAmount returns the smallest of the given amounts.
func MinAmount(first Amount, rest ...Amount) Amount {
	m := first
	for _, a := range rest {
		if a < m {
			m = a
		}
	}
	return m
}

// MaxAmount returns the largest of the given amounts.
func MaxAmount(first Amount, rest ...Amount) Amount {
	m := first
	for _, a := range rest {
		if a > m {
			m = a
		}
	}
	return m
}

// String formats the amount for display using the USD minor-unit convention.
func (a Amount) String() string { return money.New(int64(a), money.USD).Display() }

// SignedString returns the display form with an explicit sign; zero is "-".
func (a Amount) SignedString() string {
	if a == 0 {
		return "-"
	}
	if a > 0 {
		return "+" + a.String()
	}
	return a.String()
}

// MarshalJSON encodes the amount as a plain decimal number in major units,
// always with two fractional digits, to keep fixtures byte-stable.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().StringFixed(scale)), nil
}

// UnmarshalJSON accepts either a JSON number or a decimal string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	var raw json.Number
	if err := json.Unmarshal(b, &raw); err != nil {
		var s string
		if err2 := json.Unmarshal(b, &s); err2 != nil {
			return fmt.Errorf("%w: %s", ErrInvalidMagnitude, string(b))
		}
		raw = json.Number(s)
	}
	parsed, err := ParseAmount(raw.String())
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

var _ json.Marshaler = Amount(0)
var _ json.Unmarshaler = (*Amount)(nil)
