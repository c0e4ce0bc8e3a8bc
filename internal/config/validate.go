package config

import (
	"errors"
	"fmt"
)

var validEngines = map[string]struct{}{
	"standard":   {},
	"neural":     {},
	"long-form":  {},
	"generative": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVoice(); err != nil {
		return err
	}
	if err := c.validateSynthesis(); err != nil {
		return err
	}
	if err := c.validateSplice(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVoice() error {
	if c.Voice.Language == "" {
		return errors.New("voice.language must be set")
	}
	if c.Voice.Name == "" {
		return errors.New("voice.name must be set")
	}
	if _, ok := validEngines[c.Voice.Engine]; !ok {
		return fmt.Errorf("voice.engine must be one of standard, neural, long-form, generative (got %q)", c.Voice.Engine)
	}
	return nil
}

func (c *Config) validateSynthesis() error {
	if c.Synthesis.SampleRate <= 0 {
		return errors.New("synthesis.sample_rate must be positive")
	}
	if c.Synthesis.SampleRate%1000 != 0 {
		return fmt.Errorf("synthesis.sample_rate must be a whole number of samples per millisecond (got %d)", c.Synthesis.SampleRate)
	}
	return nil
}

func (c *Config) validateSplice() error {
	if c.Splice.SilenceThresholdDBFS >= 0 {
		return errors.New("splice.silence_threshold_dbfs must be negative")
	}
	if c.Splice.MinMarginMS < 0 {
		return errors.New("splice.min_margin_ms must be >= 0")
	}
	return nil
}
