package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVoice()
	c.normalizeSynthesis()
	c.normalizeSplice()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVoice() {
	c.Voice.Language = strings.TrimSpace(c.Voice.Language)
	if c.Voice.Language == "" {
		c.Voice.Language = defaultVoiceLanguage
	}
	c.Voice.Name = strings.TrimSpace(c.Voice.Name)
	if c.Voice.Name == "" {
		c.Voice.Name = defaultVoiceName
	}
	c.Voice.Engine = strings.ToLower(strings.TrimSpace(c.Voice.Engine))
	if c.Voice.Engine == "" {
		c.Voice.Engine = defaultVoiceEngine
	}
}

func (c *Config) normalizeSynthesis() {
	if c.Synthesis.SampleRate <= 0 {
		c.Synthesis.SampleRate = defaultSampleRate
	}
	c.Synthesis.Region = strings.TrimSpace(c.Synthesis.Region)
	if c.Synthesis.Region == "" {
		if value, ok := os.LookupEnv("AWS_REGION"); ok {
			c.Synthesis.Region = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeSplice() {
	if c.Splice.SilenceThresholdDBFS == 0 {
		c.Splice.SilenceThresholdDBFS = defaultSilenceThresholdDBFS
	}
	if c.Splice.MinMarginMS < 0 {
		c.Splice.MinMarginMS = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
