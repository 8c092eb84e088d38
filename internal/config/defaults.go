package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.RequestTimeoutSec <= 0 {
		cfg.Server.RequestTimeoutSec = 60
	}
	if cfg.Server.ShutdownTimeoutSec <= 0 {
		cfg.Server.ShutdownTimeoutSec = 10
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "./data.json"
	}
	if cfg.Catalog.DebounceMs <= 0 {
		cfg.Catalog.DebounceMs = 400
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 4
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// Default returns a configuration with every default applied, for running without a file.
// The catalog path is left relative to the working directory.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
