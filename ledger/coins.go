package ledger

import (
	"github.com/mezonai/coins/amount"
	"github.com/mezonai/coins/errors"
	"github.com/mezonai/coins/types"
)

// Config is supplied once at construction.
type Config struct {
	// InitialBalances seeds accounts at genesis
	InitialBalances map[string]uint64
	// Handlers maps a line type to the handler that owns it
	Handlers map[string]Handler
	// MinFee, when set, requires every transaction to end with a fee output of at least
	// this amount. A configured zero still requires the trailing fee output.
	MinFee *uint64
}

type (
	InitializerFunc  func(state *types.State, fields map[string]interface{}) error
	TxHandlerFunc    func(state *types.State, tx types.Transaction, fields map[string]interface{}) error
	BlockHandlerFunc func(state *types.State, fields map[string]interface{}) error
)

// Coins is the engine. The host calls every element of each hook collection in order; the
// engine registers exactly one of each, so a host composing several modules can append its
// own.
//
// Coins holds no locks. The host must not call hooks concurrently on the same State.
type Coins struct {
	Initializers        []InitializerFunc
	TransactionHandlers []TxHandlerFunc
	BlockHandlers       []BlockHandlerFunc

	config   Config
	registry *registry
}

// New validates cfg and builds the engine.
func New(cfg Config) (*Coins, error) {
	for addr, balance := range cfg.InitialBalances {
		if balance >= amount.MaxSafe {
			return nil, errors.NewErrorf(errors.ErrCodeInvalidConfig, "Initial balance of %q must be < 2^53", addr)
		}
	}
	if cfg.MinFee != nil && *cfg.MinFee >= amount.MaxSafe {
		return nil, errors.NewError(errors.ErrCodeInvalidConfig, "Minimum fee must be < 2^53")
	}

	reg, err := newRegistry(cfg.Handlers)
	if err != nil {
		return nil, err
	}

	c := &Coins{
		config:   cfg,
		registry: reg,
	}
	c.Initializers = []InitializerFunc{c.initialize}
	c.TransactionHandlers = []TxHandlerFunc{c.handleTransaction}
	c.BlockHandlers = []BlockHandlerFunc{c.handleBlock}
	return c, nil
}

// Config returns the configuration the engine was built with.
func (c *Coins) Config() *Config {
	return &c.config
}

// HandlerNames returns the registered handler names in dispatch order.
func (c *Coins) HandlerNames() []string {
	return append([]string(nil), c.registry.names...)
}

// RunInitializers calls every initializer in order, stopping at the first error.
func (c *Coins) RunInitializers(state *types.State, fields map[string]interface{}) error {
	for _, f := range c.Initializers {
		if err := f(state, fields); err != nil {
			return err
		}
	}
	return nil
}

// RunTransactionHandlers calls every transaction handler in order, stopping at the first error.
func (c *Coins) RunTransactionHandlers(state *types.State, tx types.Transaction, fields map[string]interface{}) error {
	for _, f := range c.TransactionHandlers {
		if err := f(state, tx, fields); err != nil {
			return err
		}
	}
	return nil
}

// RunBlockHandlers calls every block handler in order, stopping at the first error.
func (c *Coins) RunBlockHandlers(state *types.State, fields map[string]interface{}) error {
	for _, f := range c.BlockHandlers {
		if err := f(state, fields); err != nil {
			return err
		}
	}
	return nil
}
