package records

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a loosely formatted monetary string into a decimal.
// It tolerates surrounding whitespace and thousands separators; anything else
// non-numeric is an error.
func ParseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	return decimal.NewFromString(cleaned)
}

// Amount is a monetary value that tolerates the loosely typed inputs
// upstream forms produce: JSON numbers, numeric strings, empty strings, and
// null all decode without error. Values that fail to parse decode as invalid
// zero amounts so a single bad record never aborts an analysis; the
// aggregation layer reports them.
type Amount struct {
	value decimal.Decimal
	valid bool
	raw   string
}

// NewAmount builds a valid Amount from a float, for construction in code and
// tests.
func NewAmount(value float64) Amount {
	return Amount{value: decimal.NewFromFloat(value), valid: true}
}

// Decimal returns the parsed value; invalid amounts are zero.
func (a Amount) Decimal() decimal.Decimal {
	if !a.valid {
		return decimal.Zero
	}
	return a.value
}

// Float64 returns the parsed value as a float64; invalid amounts are zero.
func (a Amount) Float64() float64 {
	f, _ := a.Decimal().Float64()
	return f
}

// Valid reports whether the amount parsed cleanly. A missing or null amount
// is not valid but also carries no raw text.
func (a Amount) Valid() bool {
	return a.valid
}

// Raw returns the original text of an amount that failed to parse.
func (a Amount) Raw() string {
	return a.raw
}

func (a Amount) String() string {
	return a.Decimal().String()
}

// UnmarshalJSON accepts numbers, numeric strings, empty strings, and null.
// It never returns an error for scalar input; unparseable values become
// invalid zero amounts carrying their raw text.
func (a *Amount) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" {
		*a = Amount{}
		return nil
	}

	if text[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = Amount{raw: text}
			return nil
		}
		if strings.TrimSpace(s) == "" {
			*a = Amount{}
			return nil
		}
		value, err := ParseAmount(s)
		if err != nil {
			*a = Amount{raw: s}
			return nil
		}
		*a = Amount{value: value, valid: true}
		return nil
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		*a = Amount{raw: text}
		return nil
	}
	*a = Amount{value: value, valid: true}
	return nil
}

// MarshalJSON renders the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().String()), nil
}
