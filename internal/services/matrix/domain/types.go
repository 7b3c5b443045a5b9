// Package domain holds planner inputs and views shared by transports
package domain

import "confmatrix/internal/core/batch"

// AxisValues is one axis of a batch in declaration order
type AxisValues = batch.AxisValues

// PlanInput describes one matrix: axes in order, their variants and exclude rules
// Bound 0 means the configured default
// only the envelope is validated here, the matrix itself is checked by the core
type PlanInput struct {
	Test     string                `json:"test,omitempty" validate:"max=128"`
	Axes     []string              `json:"axes"`
	Variants map[string][]string   `json:"variants"`
	Excludes []map[string][]string `json:"excludes,omitempty"`
	Bound    int                   `json:"bound,omitempty" validate:"min=0"`
}

// BatchView is one batch as returned to callers
type BatchView struct {
	Index  int          `json:"index"`
	Weight int          `json:"weight"`
	Size   int          `json:"size"`
	Axes   []AxisValues `json:"axes"`
	DVC    string       `json:"dvc"`
}

// Stats summarises a plan
type Stats struct {
	Space    int `json:"space"`
	Excluded int `json:"excluded"`
	Valid    int `json:"valid"`
	Batches  int `json:"batches"`
	Bound    int `json:"bound"`
}

// Plan is the ordered batch list for one matrix
type Plan struct {
	Test    string      `json:"test,omitempty"`
	Batches []BatchView `json:"batches"`
	Stats   Stats       `json:"stats"`
}

// ConfigurationRow is one configuration of the full product
type ConfigurationRow struct {
	Ordinal  int      `json:"ordinal"`
	Values   []string `json:"values"`
	Excluded bool     `json:"excluded"`
}

// Listing is every configuration in enumeration order
type Listing struct {
	Test  string             `json:"test,omitempty"`
	Axes  []string           `json:"axes"`
	Rows  []ConfigurationRow `json:"rows"`
	Stats Stats              `json:"stats"`
}
