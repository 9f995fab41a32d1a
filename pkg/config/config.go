package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	Cache struct {
		Enabled  bool          `yaml:"enabled"`
		Host     string        `yaml:"host"`
		Port     int           `yaml:"port"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Dataset struct {
		Indicators struct {
			ATRPeriod        int     `yaml:"atr_period"`
			SMAPeriods       []int   `yaml:"sma_periods"`
			BollingerPeriod  int     `yaml:"bollinger_period"`
			BollingerStdDev  float64 `yaml:"bollinger_std_dev"`
			RSIPeriod        int     `yaml:"rsi_period"`
			MACDFast         int     `yaml:"macd_fast"`
			MACDSlow         int     `yaml:"macd_slow"`
			MACDSignal       int     `yaml:"macd_signal"`
			StochasticPeriod int     `yaml:"stochastic_period"`
			StochasticSmooth int     `yaml:"stochastic_smooth"`
			ADXPeriod        int     `yaml:"adx_period"`
			CCIPeriod        int     `yaml:"cci_period"`
		} `yaml:"indicators"`
		LabelThreshold     float64 `yaml:"label_threshold"`
		TrainRatio         float64 `yaml:"train_ratio"`
		ValRatio           float64 `yaml:"val_ratio"`
		TestRatio          float64 `yaml:"test_ratio"`
		ImbalanceThreshold float64 `yaml:"imbalance_threshold"`
		BalancingMethod    string  `yaml:"balancing_method"`
		SMOTENeighbours    int     `yaml:"smote_neighbours"`
		SMOTESeed          int64   `yaml:"smote_seed"`
		FitOnTrainOnly     bool    `yaml:"fit_on_train_only"`
		MaxCandles         int     `yaml:"max_candles"`
	} `yaml:"dataset"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Host = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	d := &c.Dataset
	ind := &d.Indicators
	if ind.ATRPeriod == 0 {
		ind.ATRPeriod = 14
	}
	if len(ind.SMAPeriods) == 0 {
		ind.SMAPeriods = []int{20, 50}
	}
	if ind.BollingerPeriod == 0 {
		ind.BollingerPeriod = 20
	}
	if ind.BollingerStdDev == 0 {
		ind.BollingerStdDev = 2.0
	}
	if ind.RSIPeriod == 0 {
		ind.RSIPeriod = 14
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
	if ind.StochasticPeriod == 0 {
		ind.StochasticPeriod = 14
	}
	if ind.StochasticSmooth == 0 {
		ind.StochasticSmooth = 3
	}
	if ind.ADXPeriod == 0 {
		ind.ADXPeriod = 14
	}
	if ind.CCIPeriod == 0 {
		ind.CCIPeriod = 20
	}
	if d.LabelThreshold == 0 {
		d.LabelThreshold = 0.005
	}
	if d.TrainRatio == 0 && d.ValRatio == 0 && d.TestRatio == 0 {
		d.TrainRatio, d.ValRatio, d.TestRatio = 0.7, 0.15, 0.15
	}
	if d.ImbalanceThreshold == 0 {
		d.ImbalanceThreshold = 0.3
	}
	if d.BalancingMethod == "" {
		d.BalancingMethod = "smote"
	}
	if d.SMOTENeighbours == 0 {
		d.SMOTENeighbours = 5
	}
	if d.MaxCandles == 0 {
		d.MaxCandles = 10000
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Cache.Enabled && c.Cache.Host == "" {
		return fmt.Errorf("cache.host is required when cache is enabled")
	}
	d := c.Dataset
	if d.BalancingMethod != "smote" && d.BalancingMethod != "none" {
		return fmt.Errorf("dataset.balancing_method must be 'smote' or 'none', got '%s'", d.BalancingMethod)
	}
	sum := d.TrainRatio + d.ValRatio + d.TestRatio
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("dataset split ratios must sum to 1.0, got %.3f", sum)
	}
	return nil
}
