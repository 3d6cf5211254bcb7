package tpcgeo

import "fmt"

// LoadGeometry builds the drift volumes of source in the global view
// convention together with the lookup table from TPC to volume.
func LoadGeometry(source GeometrySource, config Configuration) ([]DriftVolume, *VolumeLookupTable, error) {
	raw, err := LoadDriftVolumes(source, config)
	if err != nil {
		return nil, nil, err
	}
	volumes, err := NormalizeVolumes(raw)
	if err != nil {
		return nil, nil, err
	}
	table, err := NewVolumeLookupTable(volumes)
	if err != nil {
		return nil, nil, err
	}
	return volumes, table, nil
}

// Geometry holds the drift volume abstraction of one detector for a run.
// Load and LoadDetectorGaps run once; afterwards every accessor is safe to
// call from many goroutines.
type Geometry struct {
	source GeometrySource
	config Configuration

	loaded     bool
	gapsLoaded bool
	raw        []DriftVolume
	volumes    []DriftVolume
	table      *VolumeLookupTable
	gaps       []DetectorGap
}

func NewGeometry(source GeometrySource, config Configuration) *Geometry {
	return &Geometry{source: source, config: config}
}

func (g *Geometry) Load() error {
	if g.loaded {
		return fmt.Errorf("%w: drift volumes already built", ErrAlreadyLoaded)
	}
	raw, err := LoadDriftVolumes(g.source, g.config)
	if err != nil {
		return fmt.Errorf("error loading drift volumes: %w", err)
	}
	volumes, err := NormalizeVolumes(raw)
	if err != nil {
		return fmt.Errorf("error normalizing drift volumes: %w", err)
	}
	table, err := NewVolumeLookupTable(volumes)
	if err != nil {
		return fmt.Errorf("error building volume lookup table: %w", err)
	}
	g.raw, g.volumes, g.table = raw, volumes, table
	g.loaded = true

	if g.config.Verbosity > 0 {
		message := fmt.Sprintf("Loaded %d drift volumes covering %d TPCs", len(volumes), table.Len())
		logger.Info(message, "geometry")
	}
	return nil
}

func (g *Geometry) LoadDetectorGaps() ([]DetectorGap, error) {
	if !g.loaded {
		return nil, fmt.Errorf("%w: load drift volumes before detector gaps", ErrNotLoaded)
	}
	if g.gapsLoaded {
		return nil, fmt.Errorf("%w: detector gaps already built", ErrAlreadyLoaded)
	}
	gaps, err := LoadDetectorGaps(g.volumes, g.config)
	if err != nil {
		return nil, err
	}
	g.gaps = gaps
	g.gapsLoaded = true
	return g.DetectorGaps(), nil
}

func (g *Geometry) Loaded() bool {
	return g.loaded
}

// DriftVolumes returns the volumes in the global view convention.
func (g *Geometry) DriftVolumes() []DriftVolume {
	return cloneVolumes(g.volumes)
}

// RawDriftVolumes returns the volumes with the views labelled as the source
// labels them.
func (g *Geometry) RawDriftVolumes() []DriftVolume {
	return cloneVolumes(g.raw)
}

func (g *Geometry) LookupTable() *VolumeLookupTable {
	return g.table
}

func (g *Geometry) DetectorGaps() []DetectorGap {
	gaps := make([]DetectorGap, len(g.gaps))
	copy(gaps, g.gaps)
	return gaps
}

func (g *Geometry) GetVolumeID(cryostat, tpc uint) (uint, error) {
	if !g.loaded {
		return 0, ErrNotLoaded
	}
	return GetVolumeID(g.table, cryostat, tpc)
}

// ShouldSwitchUVForTPC looks up the drift sign of a TPC in the geometry
// source and applies ShouldSwitchUV.
func (g *Geometry) ShouldSwitchUVForTPC(cryostat, tpc uint) (bool, error) {
	if g.source == nil {
		return false, fmt.Errorf("%w: no geometry source", ErrNotLoaded)
	}
	unit, err := g.source.TPC(cryostat, tpc)
	if err != nil {
		return false, err
	}
	return ShouldSwitchUV(unit.IsPositiveDrift()), nil
}

func (g *Geometry) GetGlobalView(cryostat, tpc uint, view View) (View, error) {
	if g.source == nil {
		return view, fmt.Errorf("%w: no geometry source", ErrNotLoaded)
	}
	unit, err := g.source.TPC(cryostat, tpc)
	if err != nil {
		return view, err
	}
	return GlobalView(unit.IsPositiveDrift(), view)
}

func cloneVolumes(volumes []DriftVolume) []DriftVolume {
	out := make([]DriftVolume, len(volumes))
	for i, volume := range volumes {
		out[i] = volume.clone()
	}
	return out
}
