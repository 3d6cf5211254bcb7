package tpcgeo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// TransformationCalculator converts between world (y, z) positions and the
// wire coordinates of a drift volume. A view with wire angle theta measures
// z*cos(theta) - y*sin(theta).
type TransformationCalculator struct {
	sin    [MaxPlanes]float64
	cos    [MaxPlanes]float64
	zPitch float64
	uvToYZ *mat.Dense
}

func NewTransformationCalculator(volume DriftVolume) (*TransformationCalculator, error) {
	c := &TransformationCalculator{zPitch: volume.WirePitch[ViewW]}
	for view := ViewU; view <= ViewW; view++ {
		c.sin[view] = math.Sin(volume.WireAngle[view])
		c.cos[view] = math.Cos(volume.WireAngle[view])
	}

	projection := mat.NewDense(2, 2, []float64{
		-c.sin[ViewU], c.cos[ViewU],
		-c.sin[ViewV], c.cos[ViewV],
	})
	var inverse mat.Dense
	if err := inverse.Inverse(projection); err != nil {
		return nil, fmt.Errorf("volume %d: U and V wires are parallel: %w", volume.VolumeID, err)
	}
	c.uvToYZ = &inverse
	return c, nil
}

func (c *TransformationCalculator) YZtoU(y, z float64) float64 {
	return z*c.cos[ViewU] - y*c.sin[ViewU]
}

func (c *TransformationCalculator) YZtoV(y, z float64) float64 {
	return z*c.cos[ViewV] - y*c.sin[ViewV]
}

func (c *TransformationCalculator) YZtoW(y, z float64) float64 {
	return z*c.cos[ViewW] - y*c.sin[ViewW]
}

func (c *TransformationCalculator) Project(view View, y, z float64) (float64, error) {
	if !view.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownView, int(view))
	}
	return z*c.cos[view] - y*c.sin[view], nil
}

// UVtoYZ recovers the (y, z) position measured as u and v.
func (c *TransformationCalculator) UVtoYZ(u, v float64) (float64, float64) {
	var yz mat.VecDense
	yz.MulVec(c.uvToYZ, mat.NewVecDense(2, []float64{u, v}))
	return yz.AtVec(0), yz.AtVec(1)
}

// ZPitch is the wire pitch of the W view, used as the pseudo-layer spacing.
func (c *TransformationCalculator) ZPitch() float64 {
	return c.zPitch
}
