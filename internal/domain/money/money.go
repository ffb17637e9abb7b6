// Package money holds the fixed-point monetary value object shared by the
// reservation aggregates. Amounts are integer cents, so two-decimal rounding
// is exact by construction and never compounds across repeated mutations.
package money

import (
	"errors"
	"fmt"
)

var ErrNegativeAmount = errors.New("money cannot be negative")

type Money struct {
	cents int64
}

func New(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

// MustNew is for constants and tests where negativity is impossible.
func MustNew(cents int64) Money {
	m, err := New(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func Zero() Money {
	return Money{}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) Mul(n int64) Money {
	return Money{cents: m.cents * n}
}

// Sub floors at zero; monetary values in this domain are never negative.
func (m Money) Sub(other Money) Money {
	if other.cents >= m.cents {
		return Money{}
	}
	return Money{cents: m.cents - other.cents}
}

func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// Percent returns the given percentage of m, truncated to whole cents.
func (m Money) Percent(pct int64) Money {
	return Money{cents: m.cents * pct / 100}
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
