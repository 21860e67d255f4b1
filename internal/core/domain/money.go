package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits carried by Money.
const MoneyScale = 2

// MaxMoney is the largest amount or balance the ledger holds. Any two values
// within it sum without overflowing int64.
const MaxMoney = Money(math.MaxInt64 / 4)

// Money is a fixed-point currency amount stored as integer minor units (cents).
// All ledger arithmetic happens on this type; decimal.Decimal is only used at
// the edges for parsing, formatting and NUMERIC columns.
type Money int64

// Zero is the zero amount.
const Zero Money = 0

// ParseMoney parses a decimal string such as "500", "500.5" or "500.00".
// More than two fractional digits is rejected rather than rounded.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return MoneyFromDecimal(d)
}

// MustParseMoney is ParseMoney for constants and tests. It panics on error.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromDecimal converts an exact decimal to Money.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	scaled := d.Shift(MoneyScale)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", d.String(), MoneyScale)
	}
	if scaled.Abs().GreaterThan(decimal.NewFromInt(int64(MaxMoney))) {
		return 0, fmt.Errorf("amount %s is out of range", d.String())
	}
	return Money(scaled.IntPart()), nil
}

// NewMoneyFromMinor builds Money from minor units.
func NewMoneyFromMinor(minor int64) Money {
	return Money(minor)
}

// Minor returns the amount in minor units.
func (m Money) Minor() int64 { return int64(m) }

// Decimal returns the exact decimal representation.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MoneyScale)
}

// String formats with exactly two decimals, e.g. "-100.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(MoneyScale)
}

func (m Money) Add(o Money) Money { return m + o }
func (m Money) Sub(o Money) Money { return m - o }

// AddChecked adds o to m and fails with apperrors.ErrValidation when either
// operand or the result lies outside ±MaxMoney.
func (m Money) AddChecked(o Money) (Money, error) {
	if !m.inRange() || !o.inRange() {
		return 0, fmt.Errorf("%w: amount exceeds %s", apperrors.ErrValidation, MaxMoney)
	}
	sum := m + o
	if !sum.inRange() {
		return 0, fmt.Errorf("%w: %s + %s exceeds %s", apperrors.ErrValidation, m, o, MaxMoney)
	}
	return sum, nil
}

func (m Money) inRange() bool { return m >= -MaxMoney && m <= MaxMoney }
func (m Money) Neg() Money        { return -m }

func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsPositive() bool { return m > 0 }
func (m Money) IsNegative() bool { return m < 0 }

// MarshalJSON encodes the amount as a fixed two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a JSON string ("100.00") or a JSON number (100.00).
// Numbers are parsed from their literal text, never through float64.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
