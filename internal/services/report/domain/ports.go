package domain

import "context"

// SourcePort loads experiment documents in their stored order
type SourcePort interface {
	Load(ctx context.Context) ([]Experiment, error)
}

// ReporterPort is consumed by handlers, the CLI and other modules
type ReporterPort interface {
	Build(ctx context.Context, q Query) (Report, error)
}
