package main

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/coins/cmd"
	"github.com/mezonai/coins/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("COINS CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
