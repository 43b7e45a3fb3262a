package ledger

import "github.com/mezonai/coins/types"

// Capability names as reported in MissingCapability errors.
const (
	CapabilityOnInput  = "onInput"
	CapabilityOnOutput = "onOutput"
)

// FeeType is the reserved line type that pays into the fee pool. It never resolves to a
// registered handler.
const FeeType = "fee"

// Handler is the business logic for one asset type. Every hook is optional; a nil hook means
// the handler lacks that capability. Each hook receives only the handler's own sub-state.
type Handler struct {
	// InitialState seeds the handler's sub-state at genesis. The returned map is copied.
	InitialState func() types.SubState
	// Initialize runs once at genesis after the sub-state has been seeded.
	Initialize func(sub types.SubState, ctx *Context, cfg *Config) error
	// OnInput processes one input line routed to this handler.
	OnInput func(input types.Line, sub types.SubState, ctx *Context) error
	// OnOutput processes one output line routed to this handler.
	OnOutput func(output types.Line, sub types.SubState, ctx *Context) error
	// OnBlock runs once per block.
	OnBlock func(sub types.SubState, ctx *Context) error
}
