package domain

import "context"

// PlannerPort is consumed by handlers, the CLI and other modules
type PlannerPort interface {
	Plan(ctx context.Context, in PlanInput) (Plan, error)
	Configurations(ctx context.Context, in PlanInput) (Listing, error)
}
