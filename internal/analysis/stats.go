package analysis

import (
	"github.com/san-kum/skyrmsim/internal/dynamo"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises a core trajectory.
type Stats struct {
	Mean       dynamo.Vec2
	StdDev     dynamo.Vec2
	Min, Max   dynamo.Vec2
	PathLength float64
	Samples    int
}

func TrajectoryStats(points []dynamo.Vec2) Stats {
	if len(points) == 0 {
		return Stats{}
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	st := Stats{Min: points[0], Max: points[0], Samples: len(points)}

	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
		if p.X < st.Min.X {
			st.Min.X = p.X
		}
		if p.X > st.Max.X {
			st.Max.X = p.X
		}
		if p.Y < st.Min.Y {
			st.Min.Y = p.Y
		}
		if p.Y > st.Max.Y {
			st.Max.Y = p.Y
		}
		if i > 0 {
			st.PathLength += p.Dist(points[i-1])
		}
	}

	if len(points) > 1 {
		st.Mean.X, st.StdDev.X = stat.MeanStdDev(xs, nil)
		st.Mean.Y, st.StdDev.Y = stat.MeanStdDev(ys, nil)
	} else {
		st.Mean = points[0]
	}

	return st
}
