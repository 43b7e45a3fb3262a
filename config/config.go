package config

import (
	"os"

	"github.com/mezonai/coins/ledger"
	"github.com/mezonai/coins/logx"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const (
	feeSection    = "fee"
	minFeeKey     = "min_fee"
	logSection    = "log"
	configLogName = "CONFIG"
)

// LoadGenesisConfig reads and parses the genesis.yml file
func LoadGenesisConfig(path string) (*GenesisConfig, error) {
	logx.Info(configLogName, "LoadGenesisConfig called with path:", path)
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open genesis file %s", path)
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfgFile); err != nil {
		return nil, errors.Wrapf(err, "decode genesis file %s", path)
	}
	if cfgFile.Config.InitialBalances == nil {
		cfgFile.Config.InitialBalances = map[string]uint64{}
	}
	logx.Info(configLogName, "Loaded genesis with", len(cfgFile.Config.InitialBalances), "initial balances")
	return &cfgFile.Config, nil
}

// LoadFeeConfig reads the fee policy from an .ini file
func LoadFeeConfig(path string) (*FeeConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	feeCfg := &FeeConfig{}
	section := cfg.Section(feeSection)
	if !section.HasKey(minFeeKey) {
		return feeCfg, nil
	}
	minFee, err := section.Key(minFeeKey).Uint64()
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s.%s", feeSection, minFeeKey)
	}
	feeCfg.MinFee = &minFee
	return feeCfg, nil
}

// LoadLogConfig reads the log settings from an .ini file
func LoadLogConfig(path string) (*LogConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	logCfg := &LogConfig{}
	if err := cfg.Section(logSection).MapTo(logCfg); err != nil {
		return nil, errors.Wrapf(err, "map section %s", logSection)
	}
	return logCfg, nil
}

// LogOptions converts the [log] section into logger options.
func (l *LogConfig) LogOptions() logx.Options {
	return logx.Options{
		Filename:   l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxAgeDays: l.MaxAgeDays,
		Debug:      l.Debug,
	}
}

// ToLedgerConfig assembles the engine configuration. Either file config may be nil.
func ToLedgerConfig(genesis *GenesisConfig, fee *FeeConfig, handlers map[string]ledger.Handler) ledger.Config {
	cfg := ledger.Config{Handlers: handlers}
	if genesis != nil {
		cfg.InitialBalances = genesis.InitialBalances
	}
	if fee != nil {
		cfg.MinFee = fee.MinFee
	}
	return cfg
}
