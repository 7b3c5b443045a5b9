// Package http provides http transport for the matrix planner
package http

import (
	stdhttp "net/http"

	"confmatrix/internal/modkit/httpkit"
	"confmatrix/internal/services/matrix/domain"
)

// planBody admits wide matrices, variant lists dominate the payload
var planBody = httpkit.JSONOptions{MaxBytes: 4 << 20, DisallowUnknown: true}

// Register mounts matrix endpoints on the given router
func Register(r httpkit.Router, p domain.PlannerPort) {
	h := &handlers{planner: p}

	// batches for one matrix
	httpkit.PostJSON[domain.PlanInput](r, "/batches", h.batches, planBody)

	// every configuration, excluded ones flagged
	httpkit.PostJSON[domain.PlanInput](r, "/configurations", h.configurations, planBody)
}

type handlers struct{ planner domain.PlannerPort }

func (h *handlers) batches(r *stdhttp.Request, in domain.PlanInput) (any, error) {
	return h.planner.Plan(r.Context(), in)
}

func (h *handlers) configurations(r *stdhttp.Request, in domain.PlanInput) (any, error) {
	return h.planner.Configurations(r.Context(), in)
}
