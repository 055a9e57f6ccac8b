package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	S3 struct {
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"s3"`
	AI struct {
		PricingURL   string `yaml:"pricing_url"`
		PricingKey   string `yaml:"pricing_key"`
		OptimizerURL string `yaml:"optimizer_url"`
		OptimizerKey string `yaml:"optimizer_key"`
	} `yaml:"ai"`
	FCM struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"fcm"`
	Auth struct {
		SigningKey string `yaml:"signing_key"`
	} `yaml:"auth"`
	Wizard WizardConfig `yaml:"wizard"`
}

// WizardConfig tunes the sell wizard orchestration.
type WizardConfig struct {
	PollInterval         time.Duration `yaml:"poll_interval"`
	AutoAdvanceDelay     time.Duration `yaml:"auto_advance_delay"`
	HealthScoreThreshold int           `yaml:"health_score_threshold"`
	StudioBaseURL        string        `yaml:"studio_base_url"`
}

const (
	defaultPollInterval     = 5 * time.Second
	defaultAutoAdvanceDelay = 1500 * time.Millisecond
	// a listing scoring 60 or better is treated as good enough
	defaultHealthScoreGoodEnough = 60
)

func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}

	if cfg.Wizard.PollInterval == 0 {
		cfg.Wizard.PollInterval = defaultPollInterval
	}
	if cfg.Wizard.AutoAdvanceDelay == 0 {
		cfg.Wizard.AutoAdvanceDelay = defaultAutoAdvanceDelay
	}
	if cfg.Wizard.HealthScoreThreshold == 0 {
		cfg.Wizard.HealthScoreThreshold = defaultHealthScoreGoodEnough
	}
	return cfg
}
