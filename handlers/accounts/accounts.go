// Package accounts implements the default asset type: plain address balances, spent by
// signed inputs and credited by outputs.
//
// Input line:  {"type": "coin", "amount": n, "pubkey": b58, "sequence": n, "signature": b58}
// Output line: {"type": "coin", "amount": n, "address": b58}
package accounts

import (
	"fmt"

	"github.com/mezonai/coins/amount"
	"github.com/mezonai/coins/common"
	"github.com/mezonai/coins/errors"
	"github.com/mezonai/coins/ledger"
	"github.com/mezonai/coins/logx"
	"github.com/mezonai/coins/types"
)

// TypeName is the line type this handler is normally registered under.
const TypeName = "coin"

const (
	FieldPubKey    = "pubkey"
	FieldSignature = types.FieldSignature
	FieldSequence  = "sequence"
	FieldAddress   = "address"
)

type accountsHandler struct {
	verifier Verifier
}

// NewHandler returns a handler that authorizes inputs with verifier.
func NewHandler(verifier Verifier) ledger.Handler {
	h := &accountsHandler{verifier: verifier}
	return ledger.Handler{
		OnInput:  h.onInput,
		OnOutput: h.onOutput,
	}
}

func (h *accountsHandler) onInput(input types.Line, _ types.SubState, ctx *ledger.Context) error {
	pubKey, err := decodeField(input, FieldPubKey)
	if err != nil {
		return err
	}
	addr, err := h.verifier.Address(pubKey)
	if err != nil {
		return errors.NewErrorf(errors.ErrCodeInvalidAddress, errors.ErrMsgInvalidAddress, input[FieldPubKey])
	}

	// Missing accounts read as sequence 0 and are only created once the input is authorized.
	account, _ := ctx.LookupAccount(addr)
	sequence, err := amount.Validate(input[FieldSequence])
	if err != nil {
		return errors.NewErrorf(errors.ErrCodeInvalidSequence, "Input must have a valid `sequence`: %v", err)
	}
	if sequence != account.Sequence {
		return errors.NewErrorf(errors.ErrCodeInvalidSequence, errors.ErrMsgInvalidSequence, account.Sequence, sequence)
	}

	sig, err := decodeField(input, FieldSignature)
	if err != nil {
		return errors.ErrInvalidSignature
	}
	if !h.verifier.Verify(pubKey, ctx.SigHash, sig) {
		return errors.ErrInvalidSignature
	}

	amt, err := amount.Validate(input.Amount())
	if err != nil {
		return err
	}
	if err := ctx.Burn(addr, amt); err != nil {
		return err
	}
	next := ctx.IncrementSequence(addr)

	logx.Debug("ACCOUNTS", fmt.Sprintf("spent %d from %s, sequence=%d", amt, addr, next))
	return nil
}

func (h *accountsHandler) onOutput(output types.Line, _ types.SubState, ctx *ledger.Context) error {
	addr, ok := output.String(FieldAddress)
	if !ok || !common.IsValidBase58(addr) {
		return errors.NewErrorf(errors.ErrCodeInvalidAddress, errors.ErrMsgInvalidAddress, output[FieldAddress])
	}
	amt, err := amount.Validate(output.Amount())
	if err != nil {
		return err
	}
	return ctx.Mint(addr, amt)
}

func decodeField(line types.Line, field string) ([]byte, error) {
	raw, ok := line.String(field)
	if !ok || raw == "" {
		return nil, errors.NewErrorf(errors.ErrCodeInvalidAddress, "Input must have a base58 `%s`", field)
	}
	b, err := common.DecodeBase58ToBytes(raw)
	if err != nil {
		return nil, errors.NewErrorf(errors.ErrCodeInvalidAddress, "Input `%s` is not base58: %v", field, err)
	}
	return b, nil
}
