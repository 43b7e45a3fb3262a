package ledger

import (
	"sort"

	"github.com/mezonai/coins/errors"
	"github.com/mezonai/coins/types"
)

// registry resolves line types to handlers. Names are kept sorted so that every fan-out over
// handlers happens in the same order on every replica.
type registry struct {
	handlers map[string]Handler
	names    []string
}

func newRegistry(handlers map[string]Handler) (*registry, error) {
	r := &registry{
		handlers: make(map[string]Handler, len(handlers)),
		names:    make([]string, 0, len(handlers)),
	}
	for name, h := range handlers {
		switch name {
		case "":
			return nil, errors.NewError(errors.ErrCodeInvalidConfig, "Handler name must not be empty")
		case types.RegionAccounts, types.RegionFee:
			return nil, errors.NewErrorf(errors.ErrCodeReservedHandlerName, errors.ErrMsgReservedHandlerName, name)
		}
		r.handlers[name] = h
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// resolve looks up the handler for a line type. The reserved fee type is handled by the
// caller and never reaches here.
func (r *registry) resolve(typeName string) (Handler, error) {
	h, ok := r.handlers[typeName]
	if !ok {
		return Handler{}, errors.UnknownHandlerType(typeName)
	}
	return h, nil
}

func (r *registry) inputHook(typeName string) (func(types.Line, types.SubState, *Context) error, error) {
	h, err := r.resolve(typeName)
	if err != nil {
		return nil, err
	}
	if h.OnInput == nil {
		return nil, errors.MissingCapability(typeName, CapabilityOnInput)
	}
	return h.OnInput, nil
}

func (r *registry) outputHook(typeName string) (func(types.Line, types.SubState, *Context) error, error) {
	h, err := r.resolve(typeName)
	if err != nil {
		return nil, err
	}
	if h.OnOutput == nil {
		return nil, errors.MissingCapability(typeName, CapabilityOnOutput)
	}
	return h.OnOutput, nil
}
