package config

import (
	"fmt"
	"unicode/utf8"
)

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if cfg.Delimiter == "" {
		cfg.Delimiter = DefaultDelimiter
	}
	if utf8.RuneCountInString(cfg.Delimiter) != 1 {
		return fmt.Errorf("config: 'delimiter' must be a single character, got %q", cfg.Delimiter)
	}
	switch d := cfg.DelimiterRune(); {
	case d == ',':
		return fmt.Errorf("config: 'delimiter' cannot be ',' (it separates offsets)")
	case d >= '0' && d <= '9':
		return fmt.Errorf("config: 'delimiter' cannot be a digit, got %q", cfg.Delimiter)
	case d == utf8.RuneError:
		return fmt.Errorf("config: 'delimiter' is not valid UTF-8")
	}

	switch cfg.OnError {
	case "":
		cfg.OnError = OnErrorAbort
	case OnErrorAbort, OnErrorSkip:
	default:
		return fmt.Errorf("config: unknown 'on-error' policy %q (want %s or %s)", cfg.OnError, OnErrorAbort, OnErrorSkip)
	}

	if cfg.MaxVars == 0 {
		cfg.MaxVars = DefaultMaxVars
	}
	if cfg.MaxVars < 1 {
		return fmt.Errorf("config: 'max-vars' must be positive, got %d", cfg.MaxVars)
	}
	if cfg.MaxHelperOutput == 0 {
		cfg.MaxHelperOutput = DefaultMaxHelperOutput
	}
	if cfg.MaxHelperOutput < 1 {
		return fmt.Errorf("config: 'max-helper-output' must be positive, got %d", cfg.MaxHelperOutput)
	}
	if cfg.HelperTimeout < 0 {
		return fmt.Errorf("config: 'helper-timeout' must not be negative, got %d", cfg.HelperTimeout)
	}
	return nil
}
