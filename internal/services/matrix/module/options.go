package module

import "confmatrix/internal/platform/config"

// Options holds configuration settings for the matrix module
type Options struct {
	MaxSpace     int
	DefaultBound int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	mf := cfg.Prefix("CORE_MATRIX_")
	return Options{
		MaxSpace:     mf.MayPositiveInt("MAX_SPACE", 1_000_000),
		DefaultBound: mf.MayPositiveInt("DEFAULT_BOUND", 1),
	}
}
