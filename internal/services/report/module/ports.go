package module

import "confmatrix/internal/services/report/domain"

// Ports is the port set the report module registers
type Ports struct {
	Reporter domain.ReporterPort
}
