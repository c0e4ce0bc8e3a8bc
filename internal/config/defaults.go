package config

const (
	defaultOutputDir            = "."
	defaultLogDir               = "~/.local/share/audioheal/logs"
	defaultVoiceLanguage        = "en-GB"
	defaultVoiceName            = "Amy"
	defaultVoiceEngine          = "neural"
	defaultSampleRate           = 16000
	defaultSilenceThresholdDBFS = -60.0
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			CacheDir:  defaultCacheDir(),
		},
		Voice: Voice{
			Language: defaultVoiceLanguage,
			Name:     defaultVoiceName,
			Engine:   defaultVoiceEngine,
		},
		Synthesis: Synthesis{
			SampleRate: defaultSampleRate,
		},
		Splice: Splice{
			SilenceThresholdDBFS: defaultSilenceThresholdDBFS,
		},
		Cache: Cache{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
