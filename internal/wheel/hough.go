package wheel

import "math"

// LineParameters describes a line in polar form: Rho is the signed distance
// from the image origin (top-left) to the line's closest point, Theta is
// the angle of the line's normal from the x-axis, restricted to [0, pi)
// because (rho, theta) and (-rho, theta+pi) describe the same line.
type LineParameters struct {
	Rho   float64
	Theta float64
}

// DetectLine runs a Hough voting transform over the on pixels of grid and
// returns the most-supported line. The second return value is false when no
// accumulator cell reaches cfg.VoteThreshold, including for an all-zero
// grid.
//
// The accumulator spans theta in [0, pi) stepped by cfg.ThetaStep and rho
// in [-D, D] stepped by cfg.RhoStep, where D is the grid diagonal. Each on
// pixel votes once per theta bin at rho = x*cos(theta) + y*sin(theta).
// When several cells share the maximum vote count the winner is the first
// in scan order, ascending theta then ascending rho. The returned
// parameters are the winning bin's sample point.
func DetectLine(grid *OccupancyGrid, cfg Config) (LineParameters, bool) {
	diag := math.Hypot(float64(grid.Width), float64(grid.Height))
	thetaBins := int(math.Ceil(math.Pi / cfg.ThetaStep))
	rhoBins := int(math.Floor(2*diag/cfg.RhoStep)) + 1

	// Trig tables, one entry per theta bin.
	cosTable := make([]float64, thetaBins)
	sinTable := make([]float64, thetaBins)
	for t := 0; t < thetaBins; t++ {
		theta := float64(t) * cfg.ThetaStep
		cosTable[t] = math.Cos(theta)
		sinTable[t] = math.Sin(theta)
	}

	acc := make([][]int, thetaBins)
	for t := range acc {
		acc[t] = make([]int, rhoBins)
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if !grid.At(x, y) {
				continue
			}
			for t := 0; t < thetaBins; t++ {
				rho := float64(x)*cosTable[t] + float64(y)*sinTable[t]
				r := int(math.Round((rho + diag) / cfg.RhoStep))
				if r < 0 || r >= rhoBins {
					continue
				}
				acc[t][r]++
			}
		}
	}

	// Scan order fixes the tie-break: ascending theta, then ascending rho,
	// first strict maximum wins.
	bestVotes := 0
	bestT, bestR := -1, -1
	for t := 0; t < thetaBins; t++ {
		for r := 0; r < rhoBins; r++ {
			if acc[t][r] > bestVotes {
				bestVotes = acc[t][r]
				bestT, bestR = t, r
			}
		}
	}

	if bestVotes < cfg.VoteThreshold || bestT < 0 {
		return LineParameters{}, false
	}
	return LineParameters{
		Rho:   -diag + float64(bestR)*cfg.RhoStep,
		Theta: float64(bestT) * cfg.ThetaStep,
	}, true
}
