// Package amount enforces the numeric contract on transaction amounts: every amount is a
// non-negative integer below 2^53, and so is every sum of amounts.
package amount

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/mezonai/coins/errors"
)

// MaxSafe is 2^53, the first integer a float64 cannot represent exactly. Amounts, balances and
// sums must stay strictly below it.
const MaxSafe uint64 = 1 << 53

var maxSafe = uint256.NewInt(MaxSafe)

// Validate checks a single amount and returns it as uint64. Checks run in a fixed order:
// type, sign, integrality, magnitude.
func Validate(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case int:
		return fromInt64(int64(n))
	case int8:
		return fromInt64(int64(n))
	case int16:
		return fromInt64(int64(n))
	case int32:
		return fromInt64(int64(n))
	case int64:
		return fromInt64(n)
	case uint:
		return fromUint64(uint64(n))
	case uint8:
		return fromUint64(uint64(n))
	case uint16:
		return fromUint64(uint64(n))
	case uint32:
		return fromUint64(uint64(n))
	case uint64:
		return fromUint64(n)
	case float32:
		return fromFloat64(float64(n))
	case float64:
		return fromFloat64(n)
	case json.Number:
		return fromNumber(n)
	default:
		return 0, errors.ErrInvalidAmount
	}
}

func fromInt64(n int64) (uint64, error) {
	if n < 0 {
		return 0, errors.ErrNegativeAmount
	}
	return fromUint64(uint64(n))
}

func fromUint64(n uint64) (uint64, error) {
	if n >= MaxSafe {
		return 0, errors.ErrAmountTooLarge
	}
	return n, nil
}

func fromFloat64(f float64) (uint64, error) {
	// NaN compares false against everything, so it fails the sign check.
	if !(f >= 0) {
		return 0, errors.ErrNegativeAmount
	}
	if f != math.Trunc(f) {
		return 0, errors.ErrNonIntegerAmount
	}
	if f >= float64(MaxSafe) {
		return 0, errors.ErrAmountTooLarge
	}
	return uint64(f), nil
}

func fromNumber(n json.Number) (uint64, error) {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromInt64(i)
	}
	// Integer literals too wide for int64 are still exact in uint256.
	if u, err := uint256.FromDecimal(s); err == nil {
		if u.Cmp(maxSafe) >= 0 {
			return 0, errors.ErrAmountTooLarge
		}
		return u.Uint64(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		numErr, ok := err.(*strconv.NumError)
		if !ok || numErr.Err != strconv.ErrRange {
			return 0, errors.ErrInvalidAmount
		}
		// Out of float64 range: f is +/-Inf or +/-0.
	}
	return fromFloat64(f)
}

// Sum adds already validated amounts and fails with AmountOverflow as soon as the running
// total reaches MaxSafe.
func Sum(amounts []uint64) (uint64, error) {
	total := new(uint256.Int)
	for _, a := range amounts {
		if _, overflow := total.AddOverflow(total, uint256.NewInt(a)); overflow {
			return 0, errors.ErrAmountOverflow
		}
		if total.Cmp(maxSafe) >= 0 {
			return 0, errors.ErrAmountOverflow
		}
	}
	return total.Uint64(), nil
}

// Add returns a+b, failing with AmountOverflow when the result would reach MaxSafe.
func Add(a, b uint64) (uint64, error) {
	return Sum([]uint64{a, b})
}
