// Package config loads clustools run configuration from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/TrevorS/clustools"
)

// DefaultConfigYAML is the built-in config file, also written by `clustools init`.
//
//go:embed default.yaml
var DefaultConfigYAML []byte

var validate = validator.New()

// Config is the run configuration read from a YAML file.
type Config struct {
	Input   string  `yaml:"input"`
	Policy  string  `yaml:"policy" validate:"required,oneof=hierarchical hierarchical_cutoff strict upgma spicker kmedoid"`
	Measure string  `yaml:"measure" validate:"required,oneof=distance similarity"`
	Cutoff  float64 `yaml:"cutoff" validate:"gte=0"`
	KMedoid KMedoid `yaml:"kmedoid"`
	Output  Output  `yaml:"output"`
	Logging Logging `yaml:"logging"`
}

// KMedoid holds settings used only by the kmedoid policy.
type KMedoid struct {
	Seed          int64 `yaml:"seed"`
	MaxIterations int   `yaml:"max_iterations" validate:"gte=1"`
}

// Output selects the report format and the optional run database.
type Output struct {
	Format   string `yaml:"format" validate:"oneof=text json"`
	Database string `yaml:"database"`
}

// Logging sets the minimum log level.
type Logging struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default is invalid: %v", err))
	}
	return cfg
}

// Load reads, parses and validates a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Policy:  string(clustools.PolicySpicker),
		Measure: string(clustools.MeasureSimilarity),
		Cutoff:  0.5908,
		KMedoid: KMedoid{MaxIterations: 100},
		Output:  Output{Format: "text"},
		Logging: Logging{Level: "info"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", clustools.ErrInvalidConfiguration, strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// Clustering converts the file settings into a core clustools.Config.
func (c *Config) Clustering() clustools.Config {
	return clustools.Config{
		Policy:        clustools.Policy(c.Policy),
		Measure:       clustools.Measure(c.Measure),
		Cutoff:        c.Cutoff,
		Seed:          c.KMedoid.Seed,
		MaxIterations: c.KMedoid.MaxIterations,
	}
}
