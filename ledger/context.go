package ledger

import (
	"encoding/hex"

	"github.com/mezonai/coins/store"
	"github.com/mezonai/coins/types"
)

// FieldSigHash is the caller field that carries a precomputed signature digest.
const FieldSigHash = "sigHash"

// Context is handed to every hook. Transaction and SigHash are only set for transaction
// hooks; Fields holds a shallow copy of whatever the caller passed in.
type Context struct {
	Transaction types.Transaction
	SigHash     []byte
	Fields      map[string]interface{}

	accounts store.AccountStore
}

func newContext(state *types.State, tx types.Transaction, sigHash []byte, fields map[string]interface{}) *Context {
	merged := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		merged[k] = v
	}
	return &Context{
		Transaction: tx,
		SigHash:     sigHash,
		Fields:      merged,
		accounts:    store.NewStateAccountStore(state),
	}
}

// Value returns a caller-supplied field.
func (c *Context) Value(key string) (interface{}, bool) {
	v, ok := c.Fields[key]
	return v, ok
}

// GetAccount returns a copy of the account for addr, creating it on first access. Changes
// to the copy are not stored; balances move only through Mint and Burn.
func (c *Context) GetAccount(addr string) types.Account {
	return *c.accounts.GetAccount(addr)
}

// LookupAccount returns a copy of the account for addr. ok is false and nothing is created
// when the account does not exist.
func (c *Context) LookupAccount(addr string) (types.Account, bool) {
	return c.accounts.Lookup(addr)
}

// IncrementSequence advances the sequence of addr, creating the account if needed, and
// returns the new sequence.
func (c *Context) IncrementSequence(addr string) uint64 {
	return c.accounts.IncrementSequence(addr)
}

// Mint credits amt to addr.
func (c *Context) Mint(addr string, amt uint64) error {
	return c.accounts.Mint(addr, amt)
}

// Burn debits amt from addr.
func (c *Context) Burn(addr string, amt uint64) error {
	return c.accounts.Burn(addr, amt)
}

// callerSigHash extracts a digest supplied by the caller, as raw bytes or a hex string.
func callerSigHash(fields map[string]interface{}) ([]byte, bool) {
	switch v := fields[FieldSigHash].(type) {
	case []byte:
		if len(v) > 0 {
			return v, true
		}
	case string:
		if v == "" {
			return nil, false
		}
		if b, err := hex.DecodeString(v); err == nil {
			return b, true
		}
		return []byte(v), true
	}
	return nil, false
}
