package tpcgeo

import (
	"fmt"
	"math"
)

// DetectorGap is a dead region between two drift volumes.
type DetectorGap struct {
	X1, Y1, Z1 float64
	X2, Y2, Z2 float64
}

func (g DetectorGap) String() string {
	return fmt.Sprintf("gap x [%.2f, %.2f] y [%.2f, %.2f] z [%.2f, %.2f]", g.X1, g.X2, g.Y1, g.Y2, g.Z1, g.Z2)
}

// FindDetectorGaps returns one gap per pair of volumes facing each other
// across a drift coordinate separation of at most maxDisplacement.
func FindDetectorGaps(volumes []DriftVolume, maxDisplacement float64) []DetectorGap {
	gaps := make([]DetectorGap, 0)
	for i := range volumes {
		for j := i + 1; j < len(volumes); j++ {
			if volumes[i].VolumeID == volumes[j].VolumeID {
				continue
			}
			if gap, ok := gapBetween(volumes[i], volumes[j], maxDisplacement); ok {
				gaps = append(gaps, gap)
			}
		}
	}
	return gaps
}

func gapBetween(v1, v2 DriftVolume, maxDisplacement float64) (DetectorGap, bool) {
	deltaX := math.Abs(v1.Center.X - v2.Center.X)
	deltaY := math.Abs(v1.Center.Y - v2.Center.Y)
	deltaZ := math.Abs(v1.Center.Z - v2.Center.Z)
	widthX := 0.5 * (v1.Width.X + v2.Width.X)
	gapX := deltaX - widthX

	if gapX < 0 || gapX > maxDisplacement || deltaY > maxDisplacement || deltaZ > maxDisplacement {
		return DetectorGap{}, false
	}

	lower, upper := v1, v2
	if v2.Center.X < v1.Center.X {
		lower, upper = v2, v1
	}
	min1, max1 := v1.Min(), v1.Max()
	min2, max2 := v2.Min(), v2.Max()

	return DetectorGap{
		X1: lower.Max().X,
		X2: upper.Min().X,
		Y1: math.Min(min1.Y, min2.Y),
		Y2: math.Max(max1.Y, max2.Y),
		Z1: math.Min(min1.Z, min2.Z),
		Z2: math.Max(max1.Z, max2.Z),
	}, true
}

// LoadDetectorGaps finds the gaps between the given drift volumes.
func LoadDetectorGaps(volumes []DriftVolume, config Configuration) ([]DetectorGap, error) {
	if len(volumes) == 0 {
		return nil, fmt.Errorf("%w: cannot search for gaps without drift volumes", ErrNotLoaded)
	}
	gaps := FindDetectorGaps(volumes, config.MaxGapDisplacement)
	if config.Verbosity > 0 {
		message := fmt.Sprintf("Found %d detector gaps between %d drift volumes", len(gaps), len(volumes))
		logger.Info(message, "gaps")
	}
	if config.Verbosity > 1 {
		for _, gap := range gaps {
			logger.Info(gap.String(), "gaps")
		}
	}
	return gaps, nil
}
