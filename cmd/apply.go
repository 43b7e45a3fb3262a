package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mezonai/coins/app"
	"github.com/mezonai/coins/config"
	"github.com/mezonai/coins/events"
	"github.com/mezonai/coins/exception"
	"github.com/mezonai/coins/handlers/accounts"
	"github.com/mezonai/coins/jsonx"
	"github.com/mezonai/coins/ledger"
	"github.com/mezonai/coins/logx"
	"github.com/mezonai/coins/monitoring"
	"github.com/mezonai/coins/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type ApplyConfig struct {
	GenesisPath string
	ConfigPath  string
	BlocksPath  string
	Verifier    string
	Atomic      bool
	Precheck    bool
	MetricsAddr string
}

// ApplySummary is printed after the final state.
type ApplySummary struct {
	Blocks    int    `json:"blocks"`
	Committed int    `json:"committed"`
	Rejected  int    `json:"rejected"`
	BankHash  string `json:"bank_hash"`
}

var applyConfig ApplyConfig

var applyCmd = &cobra.Command{
	Use:   "apply [flags]",
	Short: "Replay blocks of transactions from genesis",
	Long: `Builds the ledger from a genesis file, delivers every transaction of every block in
order and prints the final state followed by a summary.

The blocks file is a JSON array of blocks, each block an array of transactions.
Coin lines are handled by the built-in account handler under the type "coin".

Examples:
  # Replay with a minimum fee and roll back failed transactions
  apply -g genesis.yml -c node.ini -b blocks.json --atomic`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApply(applyConfig)
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyConfig.GenesisPath, "genesis", "g", "", "genesis.yml with initial balances")
	applyCmd.Flags().StringVarP(&applyConfig.ConfigPath, "config", "c", "", "node .ini with [fee] and [log] sections")
	applyCmd.Flags().StringVarP(&applyConfig.BlocksPath, "blocks", "b", "", "JSON file of blocks to replay")
	applyCmd.Flags().StringVar(&applyConfig.Verifier, "verifier", "ed25519", "signature scheme for coin inputs: ed25519 or secp256k1")
	applyCmd.Flags().BoolVar(&applyConfig.Atomic, "atomic", false, "restore state when a transaction fails")
	applyCmd.Flags().BoolVar(&applyConfig.Precheck, "precheck", false, "check every block's transactions in parallel before delivering them")
	applyCmd.Flags().StringVar(&applyConfig.MetricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	_ = applyCmd.MarkFlagRequired("blocks")
}

func runApply(cfg ApplyConfig) error {
	var genesis *config.GenesisConfig
	var fee *config.FeeConfig
	var err error

	if cfg.ConfigPath != "" {
		logCfg, err := config.LoadLogConfig(cfg.ConfigPath)
		if err != nil {
			return err
		}
		logx.Configure(logCfg.LogOptions())
		if fee, err = config.LoadFeeConfig(cfg.ConfigPath); err != nil {
			return err
		}
	}
	if cfg.GenesisPath != "" {
		if genesis, err = config.LoadGenesisConfig(cfg.GenesisPath); err != nil {
			return err
		}
	}

	verifier, err := verifierByName(cfg.Verifier)
	if err != nil {
		return err
	}
	handlers := map[string]ledger.Handler{accounts.TypeName: accounts.NewHandler(verifier)}
	coins, err := ledger.New(config.ToLedgerConfig(genesis, fee, handlers))
	if err != nil {
		return errors.Wrap(err, "build ledger")
	}

	blocks, err := loadBlocks(cfg.BlocksPath)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		serveMetrics(cfg.MetricsAddr)
	}

	bus := events.NewEventBus()
	subID, ch := bus.Subscribe()
	done := make(chan struct{})
	exception.SafeGo("ApplyEventLogger", func() {
		defer close(done)
		for event := range ch {
			logEvent(event)
		}
	})

	host := app.New(coins, app.Options{Atomic: cfg.Atomic, EventBus: bus})
	var checker *app.BatchChecker
	if cfg.Precheck {
		checker = app.NewBatchChecker(host)
	}
	summary, err := replay(host, checker, blocks)
	bus.Unsubscribe(subID)
	<-done
	if err != nil {
		return err
	}

	return writeResult(os.Stdout, host.State(), summary)
}

// replay delivers every block. Rejected transactions are counted, not fatal. With a checker,
// each block is first checked against the pre-block state and the failures are logged.
func replay(host *app.App, checker *app.BatchChecker, blocks [][]types.Transaction) (*ApplySummary, error) {
	if err := host.InitChain(nil); err != nil {
		return nil, errors.Wrap(err, "init chain")
	}
	summary := &ApplySummary{}
	for i, block := range blocks {
		if checker != nil {
			for j, err := range checker.CheckAll(context.Background(), block, nil) {
				if err != nil {
					logx.Warn("APPLY CLI", fmt.Sprintf("Precheck block %d tx %d: %v", i+1, j, err))
				}
			}
		}
		for _, tx := range block {
			if err := host.DeliverTx(tx, nil); err != nil {
				summary.Rejected++
				continue
			}
			summary.Committed++
		}
		if _, err := host.EndBlock(nil); err != nil {
			return nil, errors.Wrapf(err, "end block %d", i+1)
		}
		summary.Blocks++
	}
	bankHash := host.BankHash()
	summary.BankHash = fmt.Sprintf("%x", bankHash[:])
	return summary, nil
}

// writeResult prints the final state and then the summary, one JSON document per line.
func writeResult(w io.Writer, state *types.State, summary *ApplySummary) error {
	encoder := jsonx.NewEncoder(w)
	if err := encoder.Encode(state); err != nil {
		return errors.Wrap(err, "encode state")
	}
	if err := encoder.Encode(summary); err != nil {
		return errors.Wrap(err, "encode summary")
	}
	return nil
}

func loadBlocks(path string) ([][]types.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open blocks file %s", path)
	}
	defer file.Close()

	var blocks [][]types.Transaction
	decoder := jsonx.NewDecoder(file)
	decoder.UseNumber()
	if err := decoder.Decode(&blocks); err != nil {
		return nil, errors.Wrapf(err, "decode blocks file %s", path)
	}
	return blocks, nil
}

func verifierByName(name string) (accounts.Verifier, error) {
	switch name {
	case "ed25519":
		return accounts.Ed25519Verifier{}, nil
	case "secp256k1":
		return accounts.Secp256k1Verifier{}, nil
	}
	return nil, errors.Errorf("unknown verifier %q", name)
}

func serveMetrics(addr string) {
	monitoring.InitMetrics()
	mux := http.NewServeMux()
	monitoring.RegisterMetrics(mux)
	exception.SafeGo("MetricsServer", func() {
		logx.Info("APPLY CLI", "Serving metrics on", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logx.Error("APPLY CLI", "Metrics server stopped:", err)
		}
	})
}

func logEvent(event events.LedgerEvent) {
	switch e := event.(type) {
	case *events.TransactionCommitted:
		logx.Info("APPLY CLI", fmt.Sprintf("Committed tx %s at height %d", e.TxHash(), e.Height()))
	case *events.TransactionRejected:
		logx.Warn("APPLY CLI", fmt.Sprintf("Rejected tx %s: %s (%s) rolled_back=%v", e.TxHash(), e.ErrorMessage(), e.Code(), e.RolledBack()))
	case *events.BlockProcessed:
		logx.Info("APPLY CLI", fmt.Sprintf("Block %d processed with %d txs", e.Height(), e.TxCount()))
	}
}
