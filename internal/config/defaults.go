package config

const (
	defaultDataDir           = "~/.local/share/themescope/data"
	defaultLogDir            = "~/.local/share/themescope/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultTestFraction      = 0.2
	defaultSplitSeed         = 42
	defaultKMin              = 2
	defaultKMax              = 10
	defaultFitTimeoutSeconds = 600
	defaultLDAIterations     = 100
	defaultMinLemmaLength    = 3
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Filter: Filter{
			MinLemmaLength: defaultMinLemmaLength,
		},
		Split: Split{
			TestFraction: defaultTestFraction,
			Seed:         defaultSplitSeed,
		},
		Sweep: Sweep{
			KMin:              defaultKMin,
			KMax:              defaultKMax,
			FitTimeoutSeconds: defaultFitTimeoutSeconds,
		},
		LDA: LDA{
			Iterations: defaultLDAIterations,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
