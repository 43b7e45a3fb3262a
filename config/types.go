package config

// GenesisConfig holds the configuration from genesis.yml
type GenesisConfig struct {
	InitialBalances map[string]uint64 `yaml:"initial_balances"`
}

// ConfigFile is the top-level structure for genesis.yml
type ConfigFile struct {
	Config GenesisConfig `yaml:"config"`
}

// FeeConfig is the [fee] section of the node .ini file. MinFee is nil when the key is absent,
// which disables the fee policy.
type FeeConfig struct {
	MinFee *uint64
}

// LogConfig is the [log] section of the node .ini file
type LogConfig struct {
	File       string `ini:"file"`
	MaxSizeMB  int    `ini:"max_size_mb"`
	MaxAgeDays int    `ini:"max_age_days"`
	Debug      bool   `ini:"debug"`
}
