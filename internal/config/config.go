package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"pv-clipping/internal/analysis"
	"pv-clipping/internal/loader"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server ServerConfig `yaml:"server"`
	Policy PolicyConfig `yaml:"policy"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// PolicyConfig names the behaviors that were observed to vary between
// implementations of this calculation; each one must be explicit and stable.
type PolicyConfig struct {
	// ReferenceYear is substituted into year-less timestamp labels.
	ReferenceYear int `yaml:"reference_year"`
	// ZeroPriceEligible: pay the EEG tariff at a market price of exactly
	// zero (threshold price >= 0 instead of > 0).
	ZeroPriceEligible bool `yaml:"zero_price_eligible"`
	// MatchToleranceMinutes bounds nearest-neighbor series alignment.
	MatchToleranceMinutes int `yaml:"match_tolerance_minutes"`
}

// Default returns the documented defaults: fixed reference year, inclusive
// zero threshold, quarter-hour tolerance.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Policy: PolicyConfig{
			ReferenceYear:         loader.DefaultReferenceYear,
			ZeroPriceEligible:     true,
			MatchToleranceMinutes: int(analysis.DefaultMatchTolerance / time.Minute),
		},
	}
}

// Load reads and validates a YAML config. A missing file is not an error;
// the defaults apply.
func Load(path string) (*Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Policy.ReferenceYear < 2000 || c.Policy.ReferenceYear > 2100 {
		return fmt.Errorf("policy.reference_year %d out of range", c.Policy.ReferenceYear)
	}
	if c.Policy.MatchToleranceMinutes <= 0 {
		return fmt.Errorf("policy.match_tolerance_minutes must be > 0")
	}
	return nil
}

// EnginePolicy converts the YAML policy block into engine terms.
func (c *Config) EnginePolicy() analysis.Policy {
	return analysis.Policy{
		ZeroPriceEligible: c.Policy.ZeroPriceEligible,
		MatchTolerance:    time.Duration(c.Policy.MatchToleranceMinutes) * time.Minute,
	}
}

// LoaderOptions converts the YAML policy block into loader terms.
func (c *Config) LoaderOptions() loader.Options {
	return loader.Options{ReferenceYear: c.Policy.ReferenceYear}
}
