package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
environment: dev
server:
  port: 8080
clickhouse:
  host: localhost
  port: 9000
  database: trendml
dataset:
  label_threshold: 0.01
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Environment != "dev" {
		t.Fatalf("unexpected environment %q", c.Environment)
	}
	if c.Dataset.LabelThreshold != 0.01 {
		t.Fatalf("unexpected label threshold %v", c.Dataset.LabelThreshold)
	}
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ind := c.Dataset.Indicators
	if ind.ATRPeriod != 14 || ind.BollingerPeriod != 20 || ind.CCIPeriod != 20 {
		t.Fatalf("indicator defaults not applied: %+v", ind)
	}
	if len(ind.SMAPeriods) != 2 || ind.SMAPeriods[0] != 20 || ind.SMAPeriods[1] != 50 {
		t.Fatalf("unexpected sma periods %v", ind.SMAPeriods)
	}
	if ind.BollingerStdDev != 2.0 || ind.MACDFast != 12 || ind.MACDSlow != 26 || ind.MACDSignal != 9 {
		t.Fatalf("indicator defaults not applied: %+v", ind)
	}
	d := c.Dataset
	if d.TrainRatio != 0.7 || d.ValRatio != 0.15 || d.TestRatio != 0.15 {
		t.Fatalf("split defaults not applied: %v/%v/%v", d.TrainRatio, d.ValRatio, d.TestRatio)
	}
	if d.ImbalanceThreshold != 0.3 || d.BalancingMethod != "smote" {
		t.Fatalf("balancing defaults not applied: %+v", d)
	}
}

func TestValidateMissingEnvironment(t *testing.T) {
	_, err := Load(writeConfig(t, "clickhouse:\n  host: localhost\n"))
	if err == nil {
		t.Fatal("expected error for missing environment")
	}
}

func TestValidateMissingClickHouse(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: dev\n"))
	if err == nil {
		t.Fatal("expected error for missing clickhouse host")
	}
}

func TestValidateBadRatios(t *testing.T) {
	body := validYAML + `
  train_ratio: 0.8
  val_ratio: 0.3
  test_ratio: 0.3
`
	_, err := Load(writeConfig(t, body))
	if err == nil {
		t.Fatal("expected error for split ratios not summing to 1")
	}
}

func TestValidateBadBalancingMethod(t *testing.T) {
	body := validYAML + `
  balancing_method: undersample
`
	_, err := Load(writeConfig(t, body))
	if err == nil {
		t.Fatal("expected error for unknown balancing method")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("CLICKHOUSE_HOST", "ch.internal")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ClickHouse.Host != "ch.internal" {
		t.Fatalf("clickhouse host not overridden: %q", c.ClickHouse.Host)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.Brokers[0] != "k1:9092" {
		t.Fatalf("kafka brokers not overridden: %v", c.Kafka.Brokers)
	}
}
