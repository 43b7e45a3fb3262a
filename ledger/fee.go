package ledger

import (
	"github.com/mezonai/coins/amount"
	"github.com/mezonai/coins/errors"
	"github.com/mezonai/coins/types"
)

// FeePoolKey is the single entry of the fee pool that fee lines accumulate into.
const FeePoolKey = "default"

// checkFeePolicy requires the last output to be a fee line of at least MinFee. A fee line in
// any other position still counts toward conservation but does not satisfy the policy.
func (c *Coins) checkFeePolicy(outputs []types.Line, outAmounts []uint64) error {
	if c.config.MinFee == nil {
		return nil
	}
	last := len(outputs) - 1
	if last < 0 || outputs[last].Type() != FeeType {
		return errors.ErrMustPayFee
	}
	if outAmounts[last] < *c.config.MinFee {
		return errors.MustPayFeeOfAtLeast(*c.config.MinFee)
	}
	return nil
}

func depositFee(state *types.State, amt uint64) error {
	pool := state.FeePool()
	total, err := amount.Add(pool[FeePoolKey], amt)
	if err != nil {
		return err
	}
	pool[FeePoolKey] = total
	return nil
}
