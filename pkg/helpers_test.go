package tpcgeo

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	angleU = 0.6283
	angleV = -0.6283
)

func standardPlanes() []WirePlane {
	return []WirePlane{
		{View: ViewU, WirePitch: 0.3, WireAngle: angleU},
		{View: ViewV, WirePitch: 0.3, WireAngle: angleV},
		{View: ViewW, WirePitch: 0.3, WireAngle: 0},
	}
}

// newTPC builds a 256 x 200 x 500 cm TPC centred on (x, y, z).
func newTPC(cryostat, tpc uint, x, y, z float64, drift DriftDirection) TPCUnit {
	return TPCUnit{
		Cryostat:         cryostat,
		TPC:              tpc,
		Transform:        NewTranslation(x, y, z),
		ActiveHalfWidth:  128,
		ActiveHalfHeight: 100,
		ActiveLength:     500,
		DriftDirection:   drift,
		Planes:           standardPlanes(),
	}
}

func newDescription(t *testing.T, units ...TPCUnit) *DetectorDescription {
	t.Helper()
	description, err := NewDetectorDescription("test", units)
	if err != nil {
		t.Fatalf("Failed to build detector description: %v", err)
	}
	return description
}

func testConfiguration() Configuration {
	return DefaultConfiguration()
}

func testVec(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}
