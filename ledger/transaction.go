package ledger

import (
	"fmt"

	"github.com/mezonai/coins/amount"
	"github.com/mezonai/coins/errors"
	"github.com/mezonai/coins/logx"
	"github.com/mezonai/coins/types"
)

// checkedTx is a transaction that passed every check that runs before any state is touched.
type checkedTx struct {
	inputs     []types.Line
	outputs    []types.Line
	outAmounts []uint64
}

func (c *Coins) handleTransaction(state *types.State, tx types.Transaction, fields map[string]interface{}) error {
	checked, err := c.checkTransaction(tx)
	if err == nil {
		err = c.dispatch(state, tx, checked, fields)
	}
	if err != nil {
		logx.Warn("LEDGER", fmt.Sprintf("Rejected tx: %v", err))
		return err
	}

	logx.Debug("LEDGER", fmt.Sprintf("Committed tx | inputs=%d | outputs=%d", len(checked.inputs), len(checked.outputs)))
	return nil
}

// checkTransaction runs normalization, the structural check, amount validation, the
// conservation check and the fee policy. It never mutates state.
func (c *Coins) checkTransaction(tx types.Transaction) (*checkedTx, error) {
	inputs, okFrom := tx.Inputs()
	outputs, okTo := tx.Outputs()
	if !okFrom || !okTo {
		return nil, errors.ErrMalformedTransaction
	}
	if len(inputs) == 0 {
		return nil, errors.ErrNoInputs
	}

	inAmounts, err := validateAmounts(inputs)
	if err != nil {
		return nil, err
	}
	outAmounts, err := validateAmounts(outputs)
	if err != nil {
		return nil, err
	}

	inSum, err := amount.Sum(inAmounts)
	if err != nil {
		return nil, err
	}
	outSum, err := amount.Sum(outAmounts)
	if err != nil {
		return nil, err
	}
	if inSum != outSum {
		return nil, errors.ErrAmountMismatch
	}

	if err := c.checkFeePolicy(outputs, outAmounts); err != nil {
		return nil, err
	}
	// The fee pool is a sink only. A fee input would have no owner to debit.
	for _, input := range inputs {
		if input.Type() == FeeType {
			return nil, errors.MissingCapability(FeeType, CapabilityOnInput)
		}
	}

	return &checkedTx{
		inputs:     inputs,
		outputs:    outputs,
		outAmounts: outAmounts,
	}, nil
}

func validateAmounts(lines []types.Line) ([]uint64, error) {
	amounts := make([]uint64, len(lines))
	for i, line := range lines {
		a, err := amount.Validate(line.Amount())
		if err != nil {
			return nil, err
		}
		amounts[i] = a
	}
	return amounts, nil
}

// dispatch hands every input, then every output, to its handler. Mutations made by hooks that
// already ran are kept if a later one fails.
func (c *Coins) dispatch(state *types.State, tx types.Transaction, checked *checkedTx, fields map[string]interface{}) error {
	sigHash, ok := callerSigHash(fields)
	if !ok {
		var err error
		if sigHash, err = SigHash(tx); err != nil {
			return err
		}
	}
	ctx := newContext(state, tx, sigHash, fields)

	for _, input := range checked.inputs {
		typeName := input.Type()
		onInput, err := c.registry.inputHook(typeName)
		if err != nil {
			return err
		}
		if err := onInput(input, state.SubState(typeName), ctx); err != nil {
			return err
		}
	}

	for i, output := range checked.outputs {
		typeName := output.Type()
		if typeName == FeeType {
			if err := depositFee(state, checked.outAmounts[i]); err != nil {
				return err
			}
			continue
		}
		onOutput, err := c.registry.outputHook(typeName)
		if err != nil {
			return err
		}
		if err := onOutput(output, state.SubState(typeName), ctx); err != nil {
			return err
		}
	}
	return nil
}
