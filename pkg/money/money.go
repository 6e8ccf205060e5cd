// Package money keeps prices as integer cents and converts them at the edges.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrTooPrecise    = errors.New("amount has more than two decimal places")
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// Cents is the persisted price unit
type Cents int64

func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) Amount() Amount {
	return Amount{c.Decimal()}
}

func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// BRL renders c as Brazilian currency, e.g. "R$ 1.234,56"
func (c Cents) BRL() string {
	return FormatBRL(c)
}

func FromDecimal(d decimal.Decimal) (Cents, error) {
	scaled := d.Mul(hundred)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, ErrTooPrecise
	}
	if scaled.Abs().GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %s out of range", ErrInvalidAmount, d.String())
	}
	return Cents(scaled.IntPart()), nil
}

// ParseCents reads a currency amount as typed in the admin form.
// Both "1234.56" and the pt-BR "1.234,56" are accepted.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

func FormatBRL(c Cents) string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}

	units := fmt.Sprintf("%d", v/100)
	var grouped strings.Builder
	for i, r := range units {
		if i > 0 && (len(units)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped.String(), v%100)
}

// Amount is the decimal projection of a price. It encodes as a JSON number with two places.
type Amount struct {
	decimal.Decimal
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, s)
	}
	a.Decimal = d
	return nil
}

// Cents converts back, rounding half away from zero
func (a Amount) Cents() Cents {
	return Cents(a.Mul(hundred).Round(0).IntPart())
}
