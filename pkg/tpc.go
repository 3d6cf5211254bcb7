package tpcgeo

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxPlanes is the number of wire views a TPC can read out.
const MaxPlanes = 3

type View int

const (
	ViewU View = iota
	ViewV
	ViewW
)

var viewStrings = []string{"U", "V", "W"}

func (v View) String() string {
	if !v.Valid() {
		return "UNKNOWN"
	}
	return viewStrings[v]
}

func (v View) Valid() bool {
	return v >= ViewU && v <= ViewW
}

func ParseView(s string) (View, error) {
	for i, name := range viewStrings {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}

type DriftDirection int

const (
	DriftUnknown DriftDirection = iota
	DriftPosX
	DriftNegX
)

func (d DriftDirection) String() string {
	switch d {
	case DriftPosX:
		return "+x"
	case DriftNegX:
		return "-x"
	default:
		return "unknown"
	}
}

func ParseDriftDirection(s string) (DriftDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+x", "posx", "pos", "+":
		return DriftPosX, nil
	case "-x", "negx", "neg", "-":
		return DriftNegX, nil
	}
	return DriftUnknown, fmt.Errorf("invalid drift direction: %q", s)
}

type WirePlane struct {
	View      View
	WirePitch float64
	WireAngle float64
}

// Transform maps TPC-local coordinates to world coordinates. A nil Rotation
// is the identity.
type Transform struct {
	Rotation    *mat.Dense
	Translation r3.Vec
}

func NewTranslation(x, y, z float64) Transform {
	return Transform{Translation: r3.Vec{X: x, Y: y, Z: z}}
}

func (t Transform) LocalToWorld(local r3.Vec) r3.Vec {
	if t.Rotation == nil {
		return r3.Add(local, t.Translation)
	}
	var world mat.VecDense
	world.MulVec(t.Rotation, mat.NewVecDense(3, []float64{local.X, local.Y, local.Z}))
	return r3.Add(r3.Vec{X: world.AtVec(0), Y: world.AtVec(1), Z: world.AtVec(2)}, t.Translation)
}

type TPCKey struct {
	Cryostat uint
	TPC      uint
}

func (k TPCKey) String() string {
	return fmt.Sprintf("C%d:T%d", k.Cryostat, k.TPC)
}

type TPCUnit struct {
	Cryostat         uint
	TPC              uint
	Transform        Transform
	ActiveHalfWidth  float64
	ActiveHalfHeight float64
	ActiveLength     float64
	DriftDirection   DriftDirection
	Planes           []WirePlane
}

func (t TPCUnit) Key() TPCKey {
	return TPCKey{Cryostat: t.Cryostat, TPC: t.TPC}
}

// Center is the world position of the TPC-local origin.
func (t TPCUnit) Center() r3.Vec {
	return t.Transform.LocalToWorld(r3.Vec{})
}

func (t TPCUnit) IsPositiveDrift() bool {
	return t.DriftDirection == DriftPosX
}

func (t TPCUnit) Validate() error {
	if err := t.validate(); err != nil {
		return &ErrMalformedTPC{Cryostat: t.Cryostat, TPC: t.TPC, Err: err}
	}
	return nil
}

func (t TPCUnit) validate() error {
	if t.DriftDirection != DriftPosX && t.DriftDirection != DriftNegX {
		return fmt.Errorf("drift direction %v is not along x", t.DriftDirection)
	}
	if t.ActiveHalfWidth <= 0 || t.ActiveHalfHeight <= 0 || t.ActiveLength <= 0 {
		return errors.New("active volume dimensions must be positive")
	}
	if len(t.Planes) == 0 || len(t.Planes) > MaxPlanes {
		return fmt.Errorf("expected 1 to %d wire planes, found %d", MaxPlanes, len(t.Planes))
	}
	if t.Transform.Rotation != nil {
		if r, c := t.Transform.Rotation.Dims(); r != 3 || c != 3 {
			return fmt.Errorf("rotation must be 3x3, found %dx%d", r, c)
		}
	}
	var seen [MaxPlanes]bool
	for i, plane := range t.Planes {
		if !plane.View.Valid() {
			return fmt.Errorf("plane %d: %w: %d", i, ErrUnknownView, int(plane.View))
		}
		if seen[plane.View] {
			return fmt.Errorf("plane %d: view %v appears twice", i, plane.View)
		}
		seen[plane.View] = true
	}
	return nil
}

// GeometrySource supplies the TPC descriptions of one detector.
type GeometrySource interface {
	NumCryostats() int
	NumTPCs(cryostat uint) int
	TPC(cryostat, tpc uint) (TPCUnit, error)
}
