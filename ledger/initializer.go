package ledger

import (
	"fmt"

	"github.com/mezonai/coins/logx"
	"github.com/mezonai/coins/types"
)

// initialize seeds genesis state: accounts from InitialBalances, an empty fee pool, and one
// sub-state per handler, after which each handler's Initialize hook may refine its own region.
func (c *Coins) initialize(state *types.State, fields map[string]interface{}) error {
	state.Accounts = make(map[string]*types.Account, len(c.config.InitialBalances))
	for addr, balance := range c.config.InitialBalances {
		state.Accounts[addr] = &types.Account{Sequence: 0, Balance: balance}
	}
	state.Fee = make(map[string]uint64)
	if state.Handlers == nil {
		state.Handlers = make(map[string]types.SubState)
	}

	ctx := newContext(state, nil, nil, fields)
	for _, name := range c.registry.names {
		h := c.registry.handlers[name]

		sub := types.SubState{}
		if h.InitialState != nil {
			if initial := h.InitialState(); initial != nil {
				sub = initial.Clone()
			}
		}
		state.Handlers[name] = sub

		if h.Initialize != nil {
			if err := h.Initialize(sub, ctx, &c.config); err != nil {
				logx.Error("LEDGER", fmt.Sprintf("Initialize of handler %q failed: %v", name, err))
				return err
			}
		}
	}

	logx.Info("LEDGER", fmt.Sprintf("Genesis seeded | accounts=%d | handlers=%d", len(state.Accounts), len(c.registry.names)))
	return nil
}
