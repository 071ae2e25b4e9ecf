package fixedpoint

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
)

const (
	// RateScale is the fixed-point scale of exchange rates: 1e9 represents 1.0.
	RateScale uint64 = 1_000_000_000
	// BpsDenominator is the number of basis points in 100%.
	BpsDenominator uint64 = 10_000
	// PercentDenominator is the denominator of whole-percentage ratios.
	PercentDenominator uint64 = 100

	rateDecimals = 9
)

var (
	ErrArithmetic     = errors.New("arithmetic error")
	ErrOverflow       = fmt.Errorf("%w: overflow", ErrArithmetic)
	ErrUnderflow      = fmt.Errorf("%w: underflow", ErrArithmetic)
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrArithmetic)
)

// Add returns a+b or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrOverflow)
	}
	return sum, nil
}

// Sub returns a-b or ErrUnderflow when b > a.
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("%d - %d: %w", a, b, ErrUnderflow)
	}
	return a - b, nil
}

// Mul returns a*b or ErrOverflow.
func Mul(a, b uint64) (uint64, error) {
	return narrow(sdkmath.NewIntFromUint64(a).Mul(sdkmath.NewIntFromUint64(b)), "%d * %d", a, b)
}

// Div returns floor(a/b).
func Div(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%d / 0: %w", a, ErrDivisionByZero)
	}
	return a / b, nil
}

// MulDiv returns floor(a*b/d). The product is held in a 256-bit integer, so the
// call only fails when the quotient itself does not fit in 64 bits.
func MulDiv(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, fmt.Errorf("%d * %d / 0: %w", a, b, ErrDivisionByZero)
	}
	product := sdkmath.NewIntFromUint64(a).Mul(sdkmath.NewIntFromUint64(b))
	return narrow(product.Quo(sdkmath.NewIntFromUint64(d)), "%d * %d / %d", a, b, d)
}

// Bps returns floor(amount*bps/10000).
func Bps(amount, bps uint64) (uint64, error) {
	return MulDiv(amount, bps, BpsDenominator)
}

// Percent returns floor(amount*pct/100).
func Percent(amount, pct uint64) (uint64, error) {
	return MulDiv(amount, pct, PercentDenominator)
}

// RateDec converts a scaled rate into a decimal.
func RateDec(rate uint64) sdkmath.LegacyDec {
	return sdkmath.LegacyNewDecFromIntWithPrec(sdkmath.NewIntFromUint64(rate), rateDecimals)
}

// FormatRate renders a scaled rate, e.g. 1090000000 -> "1.090000000000000000".
func FormatRate(rate uint64) string {
	return RateDec(rate).String()
}

func narrow(v sdkmath.Int, format string, args ...any) (uint64, error) {
	if !v.IsUint64() {
		return 0, fmt.Errorf(format+": %w", append(args, ErrOverflow)...)
	}
	return v.Uint64(), nil
}
