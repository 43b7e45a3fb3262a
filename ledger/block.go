package ledger

import (
	"fmt"

	"github.com/mezonai/coins/logx"
	"github.com/mezonai/coins/monitoring"
	"github.com/mezonai/coins/types"
)

func (c *Coins) handleBlock(state *types.State, fields map[string]interface{}) error {
	ctx := newContext(state, nil, nil, fields)
	for _, name := range c.registry.names {
		h := c.registry.handlers[name]
		if h.OnBlock == nil {
			continue
		}
		if err := h.OnBlock(state.SubState(name), ctx); err != nil {
			logx.Error("LEDGER", fmt.Sprintf("OnBlock of handler %q failed: %v", name, err))
			return err
		}
	}
	monitoring.IncreaseBlockCount()
	return nil
}
