package tpcgeo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxVolume(id uint, cx, cy, cz, wx, wy, wz float64) DriftVolume {
	return DriftVolume{VolumeID: id, Center: testVec(cx, cy, cz), Width: testVec(wx, wy, wz)}
}

func TestFindDetectorGaps_Adjacent(t *testing.T) {
	v1 := boxVolume(0, -133, 0, 0, 256, 200, 500)
	v2 := boxVolume(1, 133, 10, 20, 256, 220, 480)

	gaps := FindDetectorGaps([]DriftVolume{v1, v2}, DefaultMaxGapDisplacement)
	require.Len(t, gaps, 1)

	gap := gaps[0]
	assert.InDelta(t, -5.0, gap.X1, 1e-9)
	assert.InDelta(t, 5.0, gap.X2, 1e-9)
	assert.InDelta(t, -100.0, gap.Y1, 1e-9)
	assert.InDelta(t, 120.0, gap.Y2, 1e-9)
	assert.InDelta(t, -250.0, gap.Z1, 1e-9)
	assert.InDelta(t, 260.0, gap.Z2, 1e-9)
}

func TestFindDetectorGaps_Symmetric(t *testing.T) {
	pairs := [][2]DriftVolume{
		{boxVolume(0, -133, 0, 0, 256, 200, 500), boxVolume(1, 133, 10, 20, 256, 220, 480)},
		{boxVolume(0, 0, 0, 0, 100, 100, 100), boxVolume(1, 120, -5, 3, 120, 90, 110)},
		{boxVolume(0, 0, 0, 0, 100, 100, 100), boxVolume(1, 50, 0, 0, 100, 100, 100)},
		{boxVolume(0, 0, 0, 0, 100, 100, 100), boxVolume(1, 140, 0, 0, 100, 100, 100)},
	}
	for _, pair := range pairs {
		forward := FindDetectorGaps([]DriftVolume{pair[0], pair[1]}, DefaultMaxGapDisplacement)
		backward := FindDetectorGaps([]DriftVolume{pair[1], pair[0]}, DefaultMaxGapDisplacement)
		assert.Equal(t, forward, backward)
	}
}

func TestFindDetectorGaps_Rejected(t *testing.T) {
	tests := []struct {
		name string
		v2   DriftVolume
	}{
		{"overlapping in x", boxVolume(1, 90, 0, 0, 100, 100, 100)},
		{"too far in x", boxVolume(1, 131, 0, 0, 100, 100, 100)},
		{"too far in y", boxVolume(1, 110, 31, 0, 100, 100, 100)},
		{"too far in z", boxVolume(1, 110, 0, -31, 100, 100, 100)},
		{"same volume", boxVolume(0, 110, 0, 0, 100, 100, 100)},
	}
	v1 := boxVolume(0, 0, 0, 0, 100, 100, 100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, FindDetectorGaps([]DriftVolume{v1, tt.v2}, DefaultMaxGapDisplacement))
		})
	}
}

func TestFindDetectorGaps_TouchingVolumes(t *testing.T) {
	// gapX == 0 still produces a (zero width) gap
	gaps := FindDetectorGaps([]DriftVolume{
		boxVolume(0, 0, 0, 0, 100, 100, 100),
		boxVolume(1, 100, 0, 0, 100, 100, 100),
	}, DefaultMaxGapDisplacement)
	require.Len(t, gaps, 1)
	assert.InDelta(t, gaps[0].X1, gaps[0].X2, 1e-9)
}

func TestFindDetectorGaps_OnePerPair(t *testing.T) {
	volumes := []DriftVolume{
		boxVolume(0, -220, 0, 0, 200, 100, 100),
		boxVolume(1, 0, 0, 0, 200, 100, 100),
		boxVolume(2, 220, 0, 0, 200, 100, 100),
	}
	gaps := FindDetectorGaps(volumes, DefaultMaxGapDisplacement)
	require.Len(t, gaps, 2)
	assert.InDelta(t, -120.0, gaps[0].X1, 1e-9)
	assert.InDelta(t, -100.0, gaps[0].X2, 1e-9)
	assert.InDelta(t, 100.0, gaps[1].X1, 1e-9)
	assert.InDelta(t, 120.0, gaps[1].X2, 1e-9)
}

func TestLoadDetectorGaps_NoVolumes(t *testing.T) {
	_, err := LoadDetectorGaps(nil, testConfiguration())
	assert.ErrorIs(t, err, ErrNotLoaded)
}
