package cmd

import (
	"os"

	"github.com/mezonai/coins/logx"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coins",
	Short: "Coins ledger engine CLI",
	Long:  "Command line interface for replaying transactions through the coins ledger engine.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
