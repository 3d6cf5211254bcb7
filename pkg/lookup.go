package tpcgeo

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// VolumeLookupTable maps every TPC to the drift volume that owns it. It is
// built once and only read afterwards.
type VolumeLookupTable struct {
	volumes map[TPCKey]DriftVolume
}

func NewVolumeLookupTable(volumes []DriftVolume) (*VolumeLookupTable, error) {
	if len(volumes) == 0 {
		return nil, ErrNoDriftVolumes
	}
	table := &VolumeLookupTable{volumes: make(map[TPCKey]DriftVolume)}
	for _, volume := range volumes {
		for _, key := range volume.TPCs {
			if owner, ok := table.volumes[key]; ok {
				return nil, fmt.Errorf("%w: %v in volumes %d and %d", ErrDuplicateTPC, key, owner.VolumeID, volume.VolumeID)
			}
			table.volumes[key] = volume
		}
	}
	return table, nil
}

func (t *VolumeLookupTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.volumes)
}

// Keys returns the TPC keys ordered by cryostat then TPC.
func (t *VolumeLookupTable) Keys() []TPCKey {
	if t == nil {
		return nil
	}
	keys := maps.Keys(t.volumes)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Cryostat != keys[j].Cryostat {
			return keys[i].Cryostat < keys[j].Cryostat
		}
		return keys[i].TPC < keys[j].TPC
	})
	return keys
}

func (t *VolumeLookupTable) Volume(cryostat, tpc uint) (DriftVolume, error) {
	if t.Len() == 0 {
		return DriftVolume{}, ErrEmptyLookup
	}
	key := TPCKey{Cryostat: cryostat, TPC: tpc}
	volume, ok := t.volumes[key]
	if !ok {
		return DriftVolume{}, fmt.Errorf("%w: %v", ErrTPCNotFound, key)
	}
	return volume, nil
}

func GetVolumeID(table *VolumeLookupTable, cryostat, tpc uint) (uint, error) {
	volume, err := table.Volume(cryostat, tpc)
	if err != nil {
		return 0, err
	}
	return volume.VolumeID, nil
}

// GlobalHitView resolves the drift volume and global view of a hit read out
// on the given TPC and raw view.
func GlobalHitView(table *VolumeLookupTable, cryostat, tpc uint, view View) (uint, View, error) {
	volume, err := table.Volume(cryostat, tpc)
	if err != nil {
		return 0, view, err
	}
	global, err := GlobalView(volume.PositiveDrift, view)
	if err != nil {
		return 0, view, err
	}
	return volume.VolumeID, global, nil
}
