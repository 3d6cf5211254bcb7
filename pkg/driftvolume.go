package tpcgeo

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// DriftVolume is a group of TPCs sharing drift direction, drift coordinate
// range and wire parameters. Values are never modified once built.
type DriftVolume struct {
	VolumeID      uint
	PositiveDrift bool
	WirePitch     [MaxPlanes]float64
	WireAngle     [MaxPlanes]float64
	Center        r3.Vec
	Width         r3.Vec
	SigmaUVZ      float64
	TPCs          []TPCKey
}

func (v DriftVolume) Pitch(view View) float64 {
	if !view.Valid() {
		return 0
	}
	return v.WirePitch[view]
}

func (v DriftVolume) Angle(view View) float64 {
	if !view.Valid() {
		return 0
	}
	return v.WireAngle[view]
}

func (v DriftVolume) Min() r3.Vec {
	return r3.Sub(v.Center, r3.Scale(0.5, v.Width))
}

func (v DriftVolume) Max() r3.Vec {
	return r3.Add(v.Center, r3.Scale(0.5, v.Width))
}

func (v DriftVolume) Contains(key TPCKey) bool {
	for _, k := range v.TPCs {
		if k == key {
			return true
		}
	}
	return false
}

func (v DriftVolume) String() string {
	return fmt.Sprintf("volume %d: drift %s, center (%.2f, %.2f, %.2f), width (%.2f, %.2f, %.2f), %d TPCs",
		v.VolumeID, driftLabel(v.PositiveDrift), v.Center.X, v.Center.Y, v.Center.Z,
		v.Width.X, v.Width.Y, v.Width.Z, len(v.TPCs))
}

func (v DriftVolume) clone() DriftVolume {
	c := v
	c.TPCs = make([]TPCKey, len(v.TPCs))
	copy(c.TPCs, v.TPCs)
	return c
}

func driftLabel(positive bool) string {
	if positive {
		return DriftPosX.String()
	}
	return DriftNegX.String()
}

type bounds struct {
	min r3.Vec
	max r3.Vec
}

func tpcBounds(unit TPCUnit) bounds {
	center := unit.Center()
	half := r3.Vec{X: unit.ActiveHalfWidth, Y: unit.ActiveHalfHeight, Z: 0.5 * unit.ActiveLength}
	return bounds{min: r3.Sub(center, half), max: r3.Add(center, half)}
}

func (b *bounds) extend(o bounds) {
	b.min = r3.Vec{X: min(b.min.X, o.min.X), Y: min(b.min.Y, o.min.Y), Z: min(b.min.Z, o.min.Z)}
	b.max = r3.Vec{X: max(b.max.X, o.max.X), Y: max(b.max.Y, o.max.Y), Z: max(b.max.Z, o.max.Z)}
}

func (b bounds) center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.min, b.max))
}

func (b bounds) width() r3.Vec {
	return r3.Sub(b.max, b.min)
}
