package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type ProcessingConfig struct {
	Env            string `yaml:"env"`
	ProcessingDB   `yaml:"processing_db"`
	LogConfig      `yaml:"log_config"`
	MatcherConfig  `yaml:"matcher"`
	CallbackConfig `yaml:"callbacks"`
	KafkaService   `yaml:"kafka-service"`
	MetricsServer  `yaml:"metrics_server"`
}

type ProcessingDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type MatcherConfig struct {
	Interval            time.Duration `yaml:"interval" env-default:"100ms"`
	BatchSize           int           `yaml:"batch_size" env-default:"50"`
	AmountTolerance     float64       `yaml:"amount_tolerance" env-default:"1"`
	ExpirySweepInterval time.Duration `yaml:"expiry_sweep_interval" env-default:"5s"`
	DeviceOfflineAfter  time.Duration `yaml:"device_offline_after" env-default:"2m"`
	WatchdogInterval    time.Duration `yaml:"watchdog_interval" env-default:"10s"`
}

type CallbackConfig struct {
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type KafkaService struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Topic   string `yaml:"topic" env-default:"transaction-events"`
	Enabled bool   `yaml:"enabled" env-default:"false"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

func MustLoad() *ProcessingConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PROCESSING_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PROCESSING_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg ProcessingConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
