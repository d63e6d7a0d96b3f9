package config

import "github.com/expmath/vdcorput/internal/bounds"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/vdcorput/data/hypotheses.db"
	}
	if cfg.Numerics.PrecisionBits == 0 {
		cfg.Numerics.PrecisionBits = bounds.DefaultPrecisionBits
	}
	if cfg.Closure.SearchDepth == 0 {
		cfg.Closure.SearchDepth = 5
	}
	// Prune defaults to true when unset (nil).
	if cfg.Closure.Prune == nil {
		t := true
		cfg.Closure.Prune = &t
	}
}
