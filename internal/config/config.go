package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	DataSource struct {
		BaseURL         string   `yaml:"base_url"`
		APIKey          string   `yaml:"api_key"`
		Symbols         []string `yaml:"symbols"`
		BenchmarkSymbol string   `yaml:"benchmark_symbol"`
		BackfillDays    int      `yaml:"backfill_days"`
	} `yaml:"data_source"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Indicators struct {
		RSIPeriod        int     `yaml:"rsi_period"`
		BollingerPeriod  int     `yaml:"bollinger_period"`
		BollingerMult    float64 `yaml:"bollinger_mult"`
		MACDFast         int     `yaml:"macd_fast"`
		MACDSlow         int     `yaml:"macd_slow"`
		MACDSignal       int     `yaml:"macd_signal"`
		VolatilityWindow int     `yaml:"volatility_window"`
		BetaLookback     int     `yaml:"beta_lookback"`
		RangeWindow      int     `yaml:"range_window"`
	} `yaml:"indicators"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.DataSource.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("BENCHMARK_SYMBOL"); v != "" {
		cfg.DataSource.BenchmarkSymbol = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/finsight.db"
	}
	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = []string{"AAPL"}
	}
	if cfg.DataSource.BenchmarkSymbol == "" {
		cfg.DataSource.BenchmarkSymbol = "^GSPC"
	}
	if cfg.DataSource.BackfillDays == 0 {
		cfg.DataSource.BackfillDays = 500
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 22 * * 1-5"
	}
	ind := &cfg.Indicators
	if ind.RSIPeriod == 0 {
		ind.RSIPeriod = 14
	}
	if ind.BollingerPeriod == 0 {
		ind.BollingerPeriod = 20
	}
	if ind.BollingerMult == 0 {
		ind.BollingerMult = 2.0
	}
	if ind.MACDFast == 0 {
		ind.MACDFast = 12
	}
	if ind.MACDSlow == 0 {
		ind.MACDSlow = 26
	}
	if ind.MACDSignal == 0 {
		ind.MACDSignal = 9
	}
	if ind.VolatilityWindow == 0 {
		ind.VolatilityWindow = 21
	}
	if ind.BetaLookback == 0 {
		ind.BetaLookback = 252
	}
	if ind.RangeWindow == 0 {
		ind.RangeWindow = 252
	}

	return cfg, nil
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if len(c.DataSource.Symbols) == 0 {
		return fmt.Errorf("data_source.symbols must not be empty")
	}
	if c.DataSource.BackfillDays <= 0 {
		return fmt.Errorf("data_source.backfill_days must be positive")
	}
	ind := c.Indicators
	for name, v := range map[string]int{
		"rsi_period":        ind.RSIPeriod,
		"bollinger_period":  ind.BollingerPeriod,
		"macd_fast":         ind.MACDFast,
		"macd_slow":         ind.MACDSlow,
		"macd_signal":       ind.MACDSignal,
		"volatility_window": ind.VolatilityWindow,
		"beta_lookback":     ind.BetaLookback,
		"range_window":      ind.RangeWindow,
	} {
		if v <= 0 {
			return fmt.Errorf("indicators.%s must be positive", name)
		}
	}
	if ind.BollingerMult <= 0 {
		return fmt.Errorf("indicators.bollinger_mult must be positive")
	}
	return nil
}

func splitSymbols(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
