package types

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mezonai/coins/jsonx"
	"github.com/mohae/deepcopy"
)

// Reserved top-level regions of State. No handler may be registered under these names.
const (
	RegionAccounts = "accounts"
	RegionFee      = "fee"
)

// SubState is the region of State owned by one handler. It is handed to the handler by
// reference on every hook call.
type SubState map[string]interface{}

// State is the application state the host owns and passes in on every call. The zero value
// is ready to use.
type State struct {
	Accounts map[string]*Account
	Fee      map[string]uint64
	Handlers map[string]SubState
}

// NewState returns an empty state with all regions allocated.
func NewState() *State {
	s := &State{}
	s.ensure()
	return s
}

func (s *State) ensure() {
	if s.Accounts == nil {
		s.Accounts = make(map[string]*Account)
	}
	if s.Fee == nil {
		s.Fee = make(map[string]uint64)
	}
	if s.Handlers == nil {
		s.Handlers = make(map[string]SubState)
	}
}

// AccountMap returns the account region, allocating it if needed.
func (s *State) AccountMap() map[string]*Account {
	s.ensure()
	return s.Accounts
}

// FeePool returns the fee region, allocating it if needed.
func (s *State) FeePool() map[string]uint64 {
	s.ensure()
	return s.Fee
}

// SubState returns the region owned by the named handler, allocating an empty one if the
// handler has none yet.
func (s *State) SubState(name string) SubState {
	s.ensure()
	sub, ok := s.Handlers[name]
	if !ok || sub == nil {
		sub = SubState{}
		s.Handlers[name] = sub
	}
	return sub
}

// MarshalJSON writes the flat layout {"accounts":..., "fee":..., "<handler>":...}.
func (s *State) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(s.Handlers)+2)
	for name, sub := range s.Handlers {
		flat[name] = sub
	}
	accounts := s.Accounts
	if accounts == nil {
		accounts = map[string]*Account{}
	}
	fee := s.Fee
	if fee == nil {
		fee = map[string]uint64{}
	}
	flat[RegionAccounts] = accounts
	flat[RegionFee] = fee
	return jsonx.Marshal(flat)
}

// UnmarshalJSON reads the flat layout written by MarshalJSON.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := jsonx.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = State{}
	s.ensure()
	for name, value := range raw {
		switch name {
		case RegionAccounts:
			if err := jsonx.Unmarshal(value, &s.Accounts); err != nil {
				return fmt.Errorf("decode accounts: %w", err)
			}
		case RegionFee:
			if err := jsonx.Unmarshal(value, &s.Fee); err != nil {
				return fmt.Errorf("decode fee: %w", err)
			}
		default:
			var sub SubState
			if err := jsonx.UnmarshalUseNumber(value, &sub); err != nil {
				return fmt.Errorf("decode sub-state %q: %w", name, err)
			}
			s.Handlers[name] = sub
		}
	}
	s.ensure()
	return nil
}

// HandlerNames returns the names of all populated sub-states in sorted order.
func (s *State) HandlerNames() []string {
	names := make([]string, 0, len(s.Handlers))
	for name := range s.Handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy. Sub-states are copied recursively through maps, slices, pointers
// and the exported fields of structs; unexported struct fields come back zeroed.
func (s *State) Clone() *State {
	c := &State{
		Accounts: make(map[string]*Account, len(s.Accounts)),
		Fee:      make(map[string]uint64, len(s.Fee)),
		Handlers: make(map[string]SubState, len(s.Handlers)),
	}
	for addr, acc := range s.Accounts {
		if acc == nil {
			continue
		}
		cp := *acc
		c.Accounts[addr] = &cp
	}
	for k, v := range s.Fee {
		c.Fee[k] = v
	}
	for name, sub := range s.Handlers {
		c.Handlers[name] = SubState(cloneMap(sub))
	}
	return c
}

// Restore overwrites s in place with the regions of snapshot, so pointers to s held by the
// host stay valid. snapshot is taken over and must not be used afterwards.
func (s *State) Restore(snapshot *State) {
	s.Accounts = snapshot.Accounts
	s.Fee = snapshot.Fee
	s.Handlers = snapshot.Handlers
	s.ensure()
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	return deepcopy.Copy(m).(map[string]interface{})
}

// Clone returns a deep copy of the sub-state, following the same rules as State.Clone.
func (s SubState) Clone() SubState {
	if s == nil {
		return nil
	}
	return SubState(cloneMap(s))
}
