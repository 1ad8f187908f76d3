package config

const (
	defaultDataDir          = "~/.local/share/feedscope/data"
	defaultLogDir           = "~/.local/share/feedscope/logs"
	defaultAPIBind          = "127.0.0.1:7311"
	defaultCatalogSource    = "csv"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultQueryListLimit   = 10
	defaultQueryRankTopK    = 5
	defaultWeightResolution = 0.5
	defaultWeightFPS        = 0.3
	defaultWeightCodec      = 0.2
)

func defaultTheaters() []string {
	return []string{"PAC", "CONUS", "EUR", "ME", "AFR", "ARC"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Catalog: Catalog{
			Source:   defaultCatalogSource,
			Theaters: defaultTheaters(),
		},
		Ranking: Ranking{
			Resolution: defaultWeightResolution,
			FPS:        defaultWeightFPS,
			Codec:      defaultWeightCodec,
		},
		Query: Query{
			ListLimit: defaultQueryListLimit,
			RankTopK:  defaultQueryRankTopK,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
