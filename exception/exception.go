package exception

import (
	"runtime/debug"

	"github.com/mezonai/coins/errors"
	"github.com/mezonai/coins/logx"
	"github.com/mezonai/coins/monitoring"
)

// SafeCall runs fn and turns a panic into a handler_panic error, so a faulty handler rejects
// the current call instead of taking the host down.
func SafeCall(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			monitoring.IncreasePanicCount()
			logx.Error("PANIC", "Panic in: ", name, " ", r, " ", string(debug.Stack()))
			err = errors.NewErrorf(errors.ErrCodeHandlerPanic, errors.ErrMsgHandlerPanic, name, r)
		}
	}()
	return fn()
}

func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				monitoring.IncreasePanicCount()
				logx.Error("PANIC", "Panic in: ", name, " ", r, " ", string(debug.Stack()))
			}
		}()
		fn()
	}()
}
