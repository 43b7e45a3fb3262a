package store

import (
	"fmt"

	"github.com/mezonai/coins/amount"
	"github.com/mezonai/coins/errors"
	"github.com/mezonai/coins/logx"
	"github.com/mezonai/coins/types"
)

// AccountStore is the only way handlers touch accounts. Balances change only through Mint and
// Burn, which keep them non-negative and below 2^53.
type AccountStore interface {
	// GetAccount returns the account for addr, creating an empty one on first access
	GetAccount(addr string) *types.Account
	// Lookup returns a copy of the account for addr without creating it
	Lookup(addr string) (types.Account, bool)
	// IncrementSequence advances the sequence of addr and returns the new value
	IncrementSequence(addr string) uint64
	// Mint credits amount to addr
	Mint(addr string, amt uint64) error
	// Burn debits amount from addr, failing with InsufficientFunds if the balance is smaller
	Burn(addr string, amt uint64) error
}

// StateAccountStore keeps accounts in the accounts region of a State.
type StateAccountStore struct {
	accounts map[string]*types.Account
}

func NewStateAccountStore(state *types.State) *StateAccountStore {
	return &StateAccountStore{
		accounts: state.AccountMap(),
	}
}

func (as *StateAccountStore) GetAccount(addr string) *types.Account {
	acc, ok := as.accounts[addr]
	if !ok || acc == nil {
		acc = &types.Account{Sequence: 0, Balance: 0}
		as.accounts[addr] = acc
	}
	return acc
}

func (as *StateAccountStore) Lookup(addr string) (types.Account, bool) {
	acc, ok := as.accounts[addr]
	if !ok || acc == nil {
		return types.Account{}, false
	}
	return *acc, true
}

func (as *StateAccountStore) IncrementSequence(addr string) uint64 {
	acc := as.GetAccount(addr)
	acc.Sequence++
	return acc.Sequence
}

func (as *StateAccountStore) Mint(addr string, amt uint64) error {
	if _, err := amount.Validate(amt); err != nil {
		return err
	}
	acc := as.GetAccount(addr)
	balance, err := amount.Add(acc.Balance, amt)
	if err != nil {
		return err
	}
	acc.Balance = balance
	logx.Debug("ACCOUNT_STORE", fmt.Sprintf("mint %d to %s, balance=%d", amt, addr, balance))
	return nil
}

func (as *StateAccountStore) Burn(addr string, amt uint64) error {
	if _, err := amount.Validate(amt); err != nil {
		return err
	}
	if current, _ := as.Lookup(addr); current.Balance < amt {
		return errors.ErrInsufficientFunds
	}
	acc := as.GetAccount(addr)
	acc.Balance -= amt
	logx.Debug("ACCOUNT_STORE", fmt.Sprintf("burn %d from %s, balance=%d", amt, addr, acc.Balance))
	return nil
}
