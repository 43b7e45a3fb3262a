// Package app is a reference host for the coins engine. It owns one State, serializes every
// call, and decides whether a failed transaction's partial effects are kept.
package app

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/mezonai/coins/errors"
	"github.com/mezonai/coins/events"
	"github.com/mezonai/coins/exception"
	"github.com/mezonai/coins/ledger"
	"github.com/mezonai/coins/logx"
	"github.com/mezonai/coins/monitoring"
	"github.com/mezonai/coins/types"
)

// Options configures the host.
type Options struct {
	// Atomic restores the pre-transaction state when DeliverTx fails
	Atomic bool
	// EventBus receives commit, reject and block events. May be nil.
	EventBus *events.EventBus
}

type App struct {
	mu     sync.Mutex
	coins  *ledger.Coins
	state  *types.State
	opts   Options
	height uint64

	blockTxs   int
	blockStart map[string]types.Account
	bankHash   [32]byte
}

func New(coins *ledger.Coins, opts Options) *App {
	return &App{
		coins:      coins,
		state:      types.NewState(),
		opts:       opts,
		blockStart: map[string]types.Account{},
	}
}

// InitChain runs the engine initializers against a fresh state.
func (a *App) InitChain(fields map[string]interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := types.NewState()
	err := exception.SafeCall("InitChain", func() error {
		return a.coins.RunInitializers(state, fields)
	})
	if err != nil {
		logx.Error("APP", "InitChain failed:", err)
		return err
	}
	a.state = state
	a.height = 0
	a.blockTxs = 0
	a.blockStart = snapshotAccounts(state.Accounts)
	a.bankHash = ComputeAccountsDeltaHash(a.blockStart)
	logx.Info("APP", fmt.Sprintf("Chain initialized | accounts=%d | handlers=%v", len(state.Accounts), a.coins.HandlerNames()))
	return nil
}

// CheckTx runs tx against a copy of the state. Nothing is ever committed.
func (a *App) CheckTx(tx types.Transaction, fields map[string]interface{}) error {
	a.mu.Lock()
	scratch := a.state.Clone()
	a.mu.Unlock()

	return exception.SafeCall("CheckTx", func() error {
		return a.coins.RunTransactionHandlers(scratch, tx, fields)
	})
}

// DeliverTx applies tx to the live state. With Options.Atomic a failure leaves the state as
// it was; otherwise whatever the hooks did before failing is kept.
func (a *App) DeliverTx(tx types.Transaction, fields map[string]interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	txHash, fields := withSigHash(tx, fields)

	var snapshot *types.State
	if a.opts.Atomic {
		snapshot = a.state.Clone()
	}
	feeBefore := a.state.FeePool()[ledger.FeePoolKey]
	err := exception.SafeCall("DeliverTx", func() error {
		return a.coins.RunTransactionHandlers(a.state, tx, fields)
	})
	if err != nil {
		if snapshot != nil {
			a.state.Restore(snapshot)
		}
		monitoring.RecordRejectedTx(string(errors.CodeOf(err)))
		a.publish(events.NewTransactionRejected(txHash, string(errors.CodeOf(err)), err.Error(), snapshot != nil))
		return err
	}

	a.blockTxs++
	monitoring.RecordCommittedTx(lineCount(tx))
	if feeAfter := a.state.FeePool()[ledger.FeePoolKey]; feeAfter > feeBefore {
		monitoring.RecordFee(feeAfter - feeBefore)
	}
	a.publish(events.NewTransactionCommitted(txHash, a.height+1))
	return nil
}

// EndBlock runs the block hooks, advances the height and folds the block's account changes
// into the bank hash. It returns the new height.
func (a *App) EndBlock(fields map[string]interface{}) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := exception.SafeCall("EndBlock", func() error {
		return a.coins.RunBlockHandlers(a.state, fields)
	})
	if err != nil {
		logx.Error("APP", fmt.Sprintf("EndBlock failed at height %d: %v", a.height+1, err))
		return a.height, err
	}

	if updated := changedAccounts(a.blockStart, a.state.Accounts); len(updated) > 0 {
		a.bankHash = CombineBankHash(a.bankHash, ComputeAccountsDeltaHash(updated))
	}
	a.blockStart = snapshotAccounts(a.state.Accounts)

	a.height++
	txCount := a.blockTxs
	a.blockTxs = 0
	logx.Info("APP", fmt.Sprintf("Block processed | height=%d | txs=%d | bankhash=%x", a.height, txCount, a.bankHash))
	a.publish(events.NewBlockProcessed(a.height, txCount))
	return a.height, nil
}

// State returns a deep copy of the current state.
func (a *App) State() *types.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Clone()
}

func (a *App) Height() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.height
}

// BankHash returns the running hash over every block's account changes.
func (a *App) BankHash() [32]byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bankHash
}

func (a *App) publish(event events.LedgerEvent) {
	if a.opts.EventBus == nil {
		return
	}
	a.opts.EventBus.Publish(event)
}

func lineCount(tx types.Transaction) int {
	inputs, _ := tx.Inputs()
	outputs, _ := tx.Outputs()
	return len(inputs) + len(outputs)
}

// withSigHash returns the hex transaction hash and the fields to pass to the engine. When the
// caller did not supply a sigHash the derived one is added so the engine does not derive it
// again.
func withSigHash(tx types.Transaction, fields map[string]interface{}) (string, map[string]interface{}) {
	if v, ok := fields[ledger.FieldSigHash]; ok {
		switch h := v.(type) {
		case []byte:
			if len(h) > 0 {
				return hex.EncodeToString(h), fields
			}
		case string:
			if h != "" {
				return h, fields
			}
		}
	}
	sigHash, err := ledger.SigHash(tx)
	if err != nil {
		return "", fields
	}
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged[ledger.FieldSigHash] = sigHash
	return hex.EncodeToString(sigHash), merged
}
