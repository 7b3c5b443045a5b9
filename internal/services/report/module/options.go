package module

import (
	"time"

	"confmatrix/internal/platform/config"
)

// Source names
const (
	SourceFile = "file"
	SourcePG   = "pg"
	SourceCH   = "ch"
)

// Options holds configuration settings for the report module
type Options struct {
	Source  string
	File    string
	Table   string
	Timeout time.Duration
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("CORE_REPORT_")
	return Options{
		Source:  rf.MayEnum("SOURCE", SourceFile, SourceFile, SourcePG, SourceCH),
		File:    rf.MayString("FILE", "./exps.json"),
		Table:   rf.MayString("TABLE", "experiments"),
		Timeout: rf.MayDuration("TIMEOUT", 30*time.Second),
	}
}
