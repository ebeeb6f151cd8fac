package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"immojobs-engine/internal/vocab"
)

// DateFilter values accepted by scraper.date_filter.
var DateFilters = []string{"", "1day", "1week", "2weeks", "1month"}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Scraper struct {
		MaxPages          int     `yaml:"max_pages" json:"max_pages"`
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int     `yaml:"burst" json:"burst"`
		RequestTimeoutSec int     `yaml:"request_timeout_seconds" json:"request_timeout_seconds"`
		MaxRuntimeSec     int     `yaml:"max_runtime_seconds" json:"max_runtime_seconds"`
		MaxRetries        int     `yaml:"max_retries" json:"max_retries"`
		DateFilter        string  `yaml:"date_filter" json:"date_filter"`
	} `yaml:"scraper" json:"scraper"`

	Queries struct {
		French          string   `yaml:"french" json:"french"`
		English         string   `yaml:"english" json:"english"`
		Location        string   `yaml:"location" json:"location"`
		AdditionalTerms []string `yaml:"additional_terms" json:"additional_terms"`
	} `yaml:"queries" json:"queries"`

	Sites struct {
		Indeed   bool `yaml:"indeed" json:"indeed"`
		APEC     bool `yaml:"apec" json:"apec"`
		LinkedIn bool `yaml:"linkedin" json:"linkedin"`
		WTTJ     bool `yaml:"wttj" json:"wttj"`
	} `yaml:"sites" json:"sites"`

	Output struct {
		Filename string `yaml:"filename" json:"filename"`
		Report   bool   `yaml:"report" json:"report"`
	} `yaml:"output" json:"output"`

	Salary struct {
		Model      string  `yaml:"model" json:"model"`
		FeePercent float64 `yaml:"fee_percent" json:"fee_percent"`
	} `yaml:"salary" json:"salary"`

	// Vocabulary overrides individual term lists; empty lists fall
	// back to the built-in defaults.
	Vocabulary vocab.Vocabulary `yaml:"vocabulary" json:"vocabulary"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Vocab resolves the effective vocabulary (defaults + overrides).
func (c Config) Vocab() vocab.Vocabulary {
	return vocab.Merge(vocab.Default(), c.Vocabulary)
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Scraper.RequestTimeoutSec) * time.Second
}

func (c Config) MaxRuntime() time.Duration {
	return time.Duration(c.Scraper.MaxRuntimeSec) * time.Second
}
