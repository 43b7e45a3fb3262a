package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/mezonai/coins/ledger"
	"github.com/mezonai/coins/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var sigHashTxPath string

var sigHashCmd = &cobra.Command{
	Use:   "sighash [flags]",
	Short: "Print the digest a transaction's inputs must sign",
	RunE: func(cmd *cobra.Command, args []string) error {
		digest, err := sigHashFile(sigHashTxPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, digest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sigHashCmd)

	sigHashCmd.Flags().StringVarP(&sigHashTxPath, "tx", "t", "", "JSON file holding one transaction")
	_ = sigHashCmd.MarkFlagRequired("tx")
}

func sigHashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read tx file %s", path)
	}
	tx, err := types.ParseTransaction(data)
	if err != nil {
		return "", errors.Wrapf(err, "decode tx file %s", path)
	}
	digest, err := ledger.SigHash(tx)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest), nil
}
