package module

import "confmatrix/internal/services/matrix/domain"

// Ports is the port set the matrix module registers
type Ports struct {
	Planner domain.PlannerPort
}
