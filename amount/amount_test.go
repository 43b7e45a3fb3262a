package amount

import (
	"encoding/json"
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/mezonai/coins/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    uint64
		wantErr error
	}{
		{"int", 100, 100, nil},
		{"zero", 0, 0, nil},
		{"uint64", uint64(42), 42, nil},
		{"integral float", 100.0, 100, nil},
		{"json number", json.Number("123"), 123, nil},
		{"json number exponent", json.Number("1e3"), 1000, nil},
		{"largest safe", MaxSafe - 1, MaxSafe - 1, nil},
		{"string", "abc", 0, errors.ErrInvalidAmount},
		{"nil", nil, 0, errors.ErrInvalidAmount},
		{"bool", true, 0, errors.ErrInvalidAmount},
		{"numeric string", "100", 0, errors.ErrInvalidAmount},
		{"bad json number", json.Number("12abc"), 0, errors.ErrInvalidAmount},
		{"negative int", -100, 0, errors.ErrNegativeAmount},
		{"negative float", -0.5, 0, errors.ErrNegativeAmount},
		{"negative json number", json.Number("-1"), 0, errors.ErrNegativeAmount},
		{"NaN", math.NaN(), 0, errors.ErrNegativeAmount},
		{"fractional", 100.5, 0, errors.ErrNonIntegerAmount},
		{"fractional json number", json.Number("100.5"), 0, errors.ErrNonIntegerAmount},
		{"2^53", MaxSafe, 0, errors.ErrAmountTooLarge},
		{"2^60 float", math.Pow(2, 60), 0, errors.ErrAmountTooLarge},
		{"2^60 int", int64(1) << 60, 0, errors.ErrAmountTooLarge},
		{"wide json number", json.Number("123456789012345678901234567890"), 0, errors.ErrAmountTooLarge},
		{"infinity", math.Inf(1), 0, errors.ErrAmountTooLarge},
		{"out of float range", json.Number("1e400"), 0, errors.ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_NegativeFractionReportsSignFirst(t *testing.T) {
	_, err := Validate(-100.5)
	assert.ErrorIs(t, err, errors.ErrNegativeAmount)
}

func TestValidate_RandomSafeIntegers(t *testing.T) {
	f := fuzz.New()
	for i := 0; i < 1000; i++ {
		var n uint64
		f.Fuzz(&n)
		got, err := Validate(n)
		if n < MaxSafe {
			require.NoError(t, err)
			assert.Equal(t, n, got)
		} else {
			assert.ErrorIs(t, err, errors.ErrAmountTooLarge)
		}
	}
}

func TestSum(t *testing.T) {
	total, err := Sum([]uint64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(6), total)

	total, err = Sum(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)

	// Each addend is valid on its own; only the running total overflows.
	half := uint64(1) << 52
	_, err = Sum([]uint64{half, half, half})
	assert.ErrorIs(t, err, errors.ErrAmountOverflow)

	_, err = Sum([]uint64{half, half})
	assert.ErrorIs(t, err, errors.ErrAmountOverflow)

	total, err = Sum([]uint64{half, half - 1})
	require.NoError(t, err)
	assert.Equal(t, MaxSafe-1, total)
}

func TestAdd(t *testing.T) {
	got, err := Add(10, 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), got)

	_, err = Add(MaxSafe-1, 1)
	assert.ErrorIs(t, err, errors.ErrAmountOverflow)
}
