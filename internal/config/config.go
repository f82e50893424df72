package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".smv.yaml"

// Failure policies for a batch.
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

const (
	DefaultDelimiter       = "%"
	DefaultMaxVars         = 100
	DefaultMaxHelperOutput = 65536
)

type Config struct {
	Delimiter       string `yaml:"delimiter"`
	Helper          string `yaml:"helper"`
	HelperTimeout   int    `yaml:"helper-timeout"` // seconds, 0 = none
	MvFlags         string `yaml:"mv-flags"`
	MakePath        bool   `yaml:"make-path"`
	IgnoreCase      bool   `yaml:"ignore-case"`
	OnError         string `yaml:"on-error"`
	MaxVars         int    `yaml:"max-vars"`
	MaxHelperOutput int    `yaml:"max-helper-output"`
	Journal         string `yaml:"journal"`

	// Set from flags only.
	DryRun  bool `yaml:"-"`
	Quiet   bool `yaml:"-"`
	Verbose bool `yaml:"-"`
}

// Default returns a config with every default applied.
func Default() *Config {
	return &Config{
		Delimiter:       DefaultDelimiter,
		OnError:         OnErrorAbort,
		MaxVars:         DefaultMaxVars,
		MaxHelperOutput: DefaultMaxHelperOutput,
	}
}

// Load reads a YAML config file and returns a validated Config.
// A missing file is not an error when optional is set.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DelimiterRune returns the delimiter as a rune. Call after Validate.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return '%'
}
