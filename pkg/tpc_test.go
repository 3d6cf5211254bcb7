package tpcgeo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestParseView(t *testing.T) {
	for input, want := range map[string]View{"U": ViewU, "v": ViewV, " W ": ViewW} {
		got, err := ParseView(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, input := range []string{"", "X", "Y", "UV"} {
		_, err := ParseView(input)
		assert.ErrorIs(t, err, ErrUnknownView, "input %q", input)
	}

	assert.Equal(t, "UNKNOWN", View(3).String())
	assert.Equal(t, "V", ViewV.String())
}

func TestParseDriftDirection(t *testing.T) {
	d, err := ParseDriftDirection("+x")
	require.NoError(t, err)
	assert.Equal(t, DriftPosX, d)

	d, err = ParseDriftDirection("NegX")
	require.NoError(t, err)
	assert.Equal(t, DriftNegX, d)

	_, err = ParseDriftDirection("+z")
	assert.Error(t, err)
}

func TestTransform_LocalToWorld(t *testing.T) {
	translation := NewTranslation(1, 2, 3)
	assert.Equal(t, testVec(2, 2, 3), translation.LocalToWorld(testVec(1, 0, 0)))

	// 180 degrees about y
	rotated := Transform{
		Rotation:    mat.NewDense(3, 3, []float64{-1, 0, 0, 0, 1, 0, 0, 0, -1}),
		Translation: testVec(100, 0, 0),
	}
	world := rotated.LocalToWorld(testVec(10, 5, 20))
	assert.InDelta(t, 90.0, world.X, 1e-12)
	assert.InDelta(t, 5.0, world.Y, 1e-12)
	assert.InDelta(t, -20.0, world.Z, 1e-12)
}

func TestTPCUnit_Validate(t *testing.T) {
	unit := newTPC(0, 0, 0, 0, 0, DriftNegX)
	require.NoError(t, unit.Validate())

	tooMany := unit
	tooMany.Planes = append(standardPlanes(), WirePlane{View: ViewW})
	assert.Error(t, tooMany.Validate())

	noDrift := unit
	noDrift.DriftDirection = DriftUnknown
	assert.Error(t, noDrift.Validate())

	badRotation := unit
	badRotation.Transform.Rotation = mat.NewDense(2, 2, nil)
	assert.Error(t, badRotation.Validate())
}
