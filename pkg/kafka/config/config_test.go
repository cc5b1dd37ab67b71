package kafka_config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "broker-a:9092, broker-b:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "broker-b:9092" {
		t.Errorf("Brokers = %v", cfg.Brokers)
	}
	if cfg.ProducerCompression != DefaultProducerCompression {
		t.Errorf("ProducerCompression = %s", cfg.ProducerCompression)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvKafkaProducerCompression, "brotli")
	t.Setenv(EnvKafkaProducerRequireAcks, "5")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "ProducerCompression") || !strings.Contains(err.Error(), "ProducerRequireAcks") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestLoad_ConsumerSettings(t *testing.T) {
	t.Setenv(EnvKafkaConsumerStartOffset, "-2")
	t.Setenv(EnvKafkaConsumerCommitInterval, "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ConsumerStartOffset != -2 || cfg.ConsumerCommitInterval != 0 {
		t.Errorf("consumer settings = offset %d, commit %s", cfg.ConsumerStartOffset, cfg.ConsumerCommitInterval)
	}

	t.Setenv(EnvKafkaConsumerStartOffset, "42")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ConsumerStartOffset") {
		t.Errorf("expected ConsumerStartOffset error, got %v", err)
	}
}
