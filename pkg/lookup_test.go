package tpcgeo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeLookupTable(t *testing.T) {
	volumes := []DriftVolume{
		{VolumeID: 0, TPCs: []TPCKey{{1, 0}, {0, 2}}},
		{VolumeID: 1, PositiveDrift: true, TPCs: []TPCKey{{0, 0}, {0, 1}}},
	}
	table, err := NewVolumeLookupTable(volumes)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())
	assert.Equal(t, []TPCKey{{0, 0}, {0, 1}, {0, 2}, {1, 0}}, table.Keys())

	id, err := GetVolumeID(table, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)

	id, err = GetVolumeID(table, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(0), id)

	// A TPC index far beyond any stride cannot alias another cryostat
	_, err = GetVolumeID(table, 0, 10000)
	assert.ErrorIs(t, err, ErrTPCNotFound)

	volumeID, view, err := GlobalHitView(table, 0, 0, ViewU)
	require.NoError(t, err)
	assert.Equal(t, uint(1), volumeID)
	assert.Equal(t, ViewV, view)

	_, _, err = GlobalHitView(table, 1, 0, View(9))
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestVolumeLookupTable_Errors(t *testing.T) {
	_, err := GetVolumeID(nil, 0, 0)
	assert.ErrorIs(t, err, ErrEmptyLookup)

	_, err = GetVolumeID(&VolumeLookupTable{}, 0, 0)
	assert.ErrorIs(t, err, ErrEmptyLookup)

	_, err = NewVolumeLookupTable(nil)
	assert.ErrorIs(t, err, ErrNoDriftVolumes)

	_, err = NewVolumeLookupTable([]DriftVolume{
		{VolumeID: 0, TPCs: []TPCKey{{0, 0}}},
		{VolumeID: 1, TPCs: []TPCKey{{0, 0}}},
	})
	assert.ErrorIs(t, err, ErrDuplicateTPC)
}
