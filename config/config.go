// Package config loads the service configuration: VLM backend and
// prompt selection, detector settings, doctrine location, and output
// folder. Configuration errors are fatal before any image is processed.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfig overrides the config file location.
	EnvConfig = "BDA_CONFIG"

	// DefaultConfigPath is used when EnvConfig is unset.
	DefaultConfigPath = "config.yaml"
)

// ErrInvalidConfig marks a configuration document that failed validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full service configuration.
type Config struct {
	VLM      VLMConfig      `yaml:"vlm"`
	Detector DetectorConfig `yaml:"detector"`
	Doctrine string         `yaml:"doctrine"` // path to the doctrine document
	Output   string         `yaml:"output"`   // artifact output folder
}

// VLMConfig selects the vision-language-model backend.
type VLMConfig struct {
	BaseURL      string `yaml:"base_url"`
	Model        string `yaml:"model"`
	SystemPrompt string `yaml:"system_prompt"`
}

// DetectorConfig selects the object-detection backend.
type DetectorConfig struct {
	ModelPath     string   `yaml:"model_path"` // ONNX detection model
	ModelName     string   `yaml:"model_name"` // identifier recorded in artifacts
	Labels        []string `yaml:"labels"`     // class labels, index-aligned with the model
	InputSize     int      `yaml:"input_size"`
	ConfThreshold float32  `yaml:"confidence_threshold"`
	NMSThreshold  float32  `yaml:"nms_threshold"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		VLM: VLMConfig{
			BaseURL: "http://localhost:11434",
			Model:   "qwen2.5vl:7b",
			SystemPrompt: "You are a battle damage assessment analyst. " +
				"Assess the damage visible in each image strictly according to the provided doctrine.",
		},
		Detector: DetectorConfig{
			ModelPath:     "models/detector.onnx",
			ModelName:     "yolov8n",
			Labels:        []string{"vehicle", "building", "aircraft", "bridge"},
			InputSize:     640,
			ConfThreshold: 0.4,
			NMSThreshold:  0.45,
		},
		Doctrine: "doctrine.yaml",
		Output:   "data/output",
	}
}

// Load reads the configuration. A missing file falls back to defaults;
// a present but malformed file is a fatal error.
func Load() (*Config, error) {
	// Load .env if present; absence is fine.
	_ = godotenv.Load()

	path := os.Getenv(EnvConfig)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields every run depends on.
func (c *Config) Validate() error {
	if c.VLM.Model == "" {
		return fmt.Errorf("%w: vlm.model is required", ErrInvalidConfig)
	}
	if c.Doctrine == "" {
		return fmt.Errorf("%w: doctrine path is required", ErrInvalidConfig)
	}
	if c.Detector.ConfThreshold < 0 || c.Detector.ConfThreshold > 1 {
		return fmt.Errorf("%w: detector.confidence_threshold %v outside [0, 1]", ErrInvalidConfig, c.Detector.ConfThreshold)
	}
	if c.Detector.NMSThreshold < 0 || c.Detector.NMSThreshold > 1 {
		return fmt.Errorf("%w: detector.nms_threshold %v outside [0, 1]", ErrInvalidConfig, c.Detector.NMSThreshold)
	}
	return nil
}
