package metrics

import (
	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/sim"
)

// Default returns the standard metric set for a grid whose center is origin.
func Default(origin dynamo.Vec2) []sim.Metric {
	return []sim.Metric{
		NewMaxDisplacement(origin),
		NewMeanPrecession(),
		NewRMSSpeed(),
		NewTopologicalCharge(),
		NewCoreZ(),
	}
}
