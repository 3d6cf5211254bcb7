package tpcgeo

import (
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// DetectorDescription is an in-memory GeometrySource. Cryostat and TPC
// indices are positions in Cryostats.
type DetectorDescription struct {
	Name      string
	Cryostats [][]TPCUnit
}

// NewDetectorDescription groups units by cryostat. Cryostat and TPC ids must
// be contiguous from zero and every unit must be well formed.
func NewDetectorDescription(name string, units []TPCUnit) (*DetectorDescription, error) {
	sorted := make([]TPCUnit, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Cryostat != sorted[j].Cryostat {
			return sorted[i].Cryostat < sorted[j].Cryostat
		}
		return sorted[i].TPC < sorted[j].TPC
	})

	description := &DetectorDescription{Name: name}
	for _, unit := range sorted {
		if err := unit.Validate(); err != nil {
			return nil, err
		}
		nCryostats := uint(len(description.Cryostats))
		switch {
		case unit.Cryostat == nCryostats:
			description.Cryostats = append(description.Cryostats, nil)
		case unit.Cryostat > nCryostats:
			return nil, fmt.Errorf("cryostat ids are not contiguous: found %d after %d cryostats", unit.Cryostat, nCryostats)
		}
		tpcs := description.Cryostats[unit.Cryostat]
		if unit.TPC != uint(len(tpcs)) {
			return nil, fmt.Errorf("cryostat %d: TPC ids are not contiguous or repeated: found %d, expected %d",
				unit.Cryostat, unit.TPC, len(tpcs))
		}
		description.Cryostats[unit.Cryostat] = append(tpcs, unit)
	}
	return description, nil
}

func (d *DetectorDescription) NumCryostats() int {
	return len(d.Cryostats)
}

func (d *DetectorDescription) NumTPCs(cryostat uint) int {
	if cryostat >= uint(len(d.Cryostats)) {
		return 0
	}
	return len(d.Cryostats[cryostat])
}

func (d *DetectorDescription) TPC(cryostat, tpc uint) (TPCUnit, error) {
	if cryostat >= uint(len(d.Cryostats)) || tpc >= uint(len(d.Cryostats[cryostat])) {
		return TPCUnit{}, fmt.Errorf("%w: cryostat %d, tpc %d", ErrTPCNotFound, cryostat, tpc)
	}
	return d.Cryostats[cryostat][tpc], nil
}

func (d *DetectorDescription) NumUnits() int {
	n := 0
	for _, tpcs := range d.Cryostats {
		n += len(tpcs)
	}
	return n
}

type planeEntry struct {
	View  string  `yaml:"view"`
	Pitch float64 `yaml:"pitch"`
	Angle float64 `yaml:"angle"`
}

type tpcEntry struct {
	Center     [3]float64   `yaml:"center"`
	Rotation   []float64    `yaml:"rotation"`
	HalfWidth  float64      `yaml:"half_width"`
	HalfHeight float64      `yaml:"half_height"`
	Length     float64      `yaml:"length"`
	Drift      string       `yaml:"drift"`
	Planes     []planeEntry `yaml:"planes"`
}

type cryostatEntry struct {
	TPCs []tpcEntry `yaml:"tpcs"`
}

type descriptionFile struct {
	Detector  string          `yaml:"detector"`
	Cryostats []cryostatEntry `yaml:"cryostats"`
}

// LoadDescriptionFile reads a YAML detector description.
func LoadDescriptionFile(path string) (*DetectorDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrOpenFile{Filename: path, Err: err}
	}
	description, err := ParseDescription(data)
	if err != nil {
		return nil, fmt.Errorf("parse detector description %s: %w", path, err)
	}
	return description, nil
}

func ParseDescription(data []byte) (*DetectorDescription, error) {
	var file descriptionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	units := make([]TPCUnit, 0)
	for icstat, cryostat := range file.Cryostats {
		for itpc, entry := range cryostat.TPCs {
			unit, err := entry.toUnit(uint(icstat), uint(itpc))
			if err != nil {
				return nil, &ErrMalformedTPC{Cryostat: uint(icstat), TPC: uint(itpc), Err: err}
			}
			units = append(units, unit)
		}
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Detector %q: %d cryostats, %d TPCs", file.Detector, len(file.Cryostats), len(units))
		logger.Info(message, "description")
	}
	return NewDetectorDescription(file.Detector, units)
}

func (e tpcEntry) toUnit(cryostat, tpc uint) (TPCUnit, error) {
	drift, err := ParseDriftDirection(e.Drift)
	if err != nil {
		return TPCUnit{}, err
	}

	transform := NewTranslation(e.Center[0], e.Center[1], e.Center[2])
	switch len(e.Rotation) {
	case 0:
	case 9:
		transform.Rotation = mat.NewDense(3, 3, e.Rotation)
	default:
		return TPCUnit{}, fmt.Errorf("rotation needs 9 elements, found %d", len(e.Rotation))
	}

	planes := make([]WirePlane, len(e.Planes))
	for i, p := range e.Planes {
		view, err := ParseView(p.View)
		if err != nil {
			return TPCUnit{}, fmt.Errorf("plane %d: %w", i, err)
		}
		planes[i] = WirePlane{View: view, WirePitch: p.Pitch, WireAngle: p.Angle}
	}

	return TPCUnit{
		Cryostat:         cryostat,
		TPC:              tpc,
		Transform:        transform,
		ActiveHalfWidth:  e.HalfWidth,
		ActiveHalfHeight: e.HalfHeight,
		ActiveLength:     e.Length,
		DriftDirection:   drift,
		Planes:           planes,
	}, nil
}
