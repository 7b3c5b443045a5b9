// Package http provides http transport for experiment reports
package http

import (
	stdhttp "net/http"

	"confmatrix/internal/modkit/httpkit"
	"confmatrix/internal/services/report/domain"
)

// Register mounts report endpoints on the given router
func Register(r httpkit.Router, p domain.ReporterPort) {
	h := &handlers{reporter: p}

	// filtered and grouped chart series
	httpkit.PostJSON[domain.Query](r, "/series", h.series)
}

type handlers struct{ reporter domain.ReporterPort }

func (h *handlers) series(r *stdhttp.Request, q domain.Query) (any, error) {
	return h.reporter.Build(r.Context(), q)
}
