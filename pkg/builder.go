package tpcgeo

import (
	"fmt"
	"math"
)

// LoadDriftVolumes groups the TPCs of source into drift volumes. The wire
// views are left as the source labels them.
func LoadDriftVolumes(source GeometrySource, config Configuration) ([]DriftVolume, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: no geometry source", ErrNoDriftVolumes)
	}

	volumes := make([]DriftVolume, 0)
	for icstat := 0; icstat < source.NumCryostats(); icstat++ {
		units, err := cryostatUnits(source, uint(icstat))
		if err != nil {
			return nil, err
		}

		groups, err := clusterTPCs(units, config)
		if err != nil {
			return nil, err
		}

		for _, group := range groups {
			volumes = append(volumes, newDriftVolume(uint(len(volumes)), units, group))
		}

		if config.Verbosity > 0 {
			message := fmt.Sprintf("Cryostat %d: %d TPCs grouped into %d drift volumes", icstat, len(units), len(groups))
			logger.Info(message, "builder")
		}
	}

	if len(volumes) == 0 {
		return nil, ErrNoDriftVolumes
	}

	if config.Verbosity > 1 {
		for _, volume := range volumes {
			logger.Info(volume.String(), "builder")
		}
	}
	return volumes, nil
}

func cryostatUnits(source GeometrySource, cryostat uint) ([]TPCUnit, error) {
	nTPCs := source.NumTPCs(cryostat)
	units := make([]TPCUnit, nTPCs)
	for itpc := 0; itpc < nTPCs; itpc++ {
		unit, err := source.TPC(cryostat, uint(itpc))
		if err != nil {
			return nil, fmt.Errorf("error reading TPC %d in cryostat %d: %w", itpc, cryostat, err)
		}
		if err := unit.Validate(); err != nil {
			return nil, err
		}
		units[itpc] = unit
	}
	return units, nil
}

func clusterTPCs(units []TPCUnit, config Configuration) ([][]int, error) {
	switch config.Clustering {
	case ClusteringGreedy:
		return clusterGreedy(units, config.MaxDeltaTheta), nil
	case ClusteringUnionFind, "":
		return clusterUnionFind(units, config.MaxDeltaTheta), nil
	default:
		return nil, fmt.Errorf("unknown clustering strategy %q", config.Clustering)
	}
}

// clusterGreedy seeds a volume with each unconsumed TPC and absorbs every
// later unconsumed TPC compatible with the seed.
func clusterGreedy(units []TPCUnit, maxDeltaTheta float64) [][]int {
	consumed := make([]bool, len(units))
	groups := make([][]int, 0)
	for i := range units {
		if consumed[i] {
			continue
		}
		consumed[i] = true
		group := []int{i}
		for j := i + 1; j < len(units); j++ {
			if consumed[j] || !compatible(units[i], units[j], maxDeltaTheta) {
				continue
			}
			consumed[j] = true
			group = append(group, j)
		}
		groups = append(groups, group)
	}
	return groups
}

// clusterUnionFind joins every compatible pair, so membership does not
// depend on which TPC happens to seed a volume. Groups are ordered by their
// lowest TPC index.
func clusterUnionFind(units []TPCUnit, maxDeltaTheta float64) [][]int {
	uf := newUnionFind(len(units))
	for i := range units {
		for j := i + 1; j < len(units); j++ {
			if compatible(units[i], units[j], maxDeltaTheta) {
				uf.union(i, j)
			}
		}
	}

	groups := make([][]int, 0)
	groupIndex := make(map[int]int)
	for i := range units {
		root := uf.find(i)
		idx, ok := groupIndex[root]
		if !ok {
			idx = len(groups)
			groupIndex[root] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], i)
	}
	return groups
}

func compatible(a, b TPCUnit, maxDeltaTheta float64) bool {
	if a.DriftDirection != b.DriftDirection {
		return false
	}
	if len(a.Planes) != len(b.Planes) {
		return false
	}
	for i := range a.Planes {
		if a.Planes[i].View != b.Planes[i].View {
			return false
		}
		if math.Abs(a.Planes[i].WireAngle-b.Planes[i].WireAngle) > maxDeltaTheta {
			return false
		}
	}

	// Only half of the active half-width is used for the overlap window
	minA, maxA := driftWindow(a)
	minB, maxB := driftWindow(b)
	return !(minB > maxA || minA > maxB)
}

func driftWindow(unit TPCUnit) (float64, float64) {
	x := unit.Center().X
	return x - 0.5*unit.ActiveHalfWidth, x + 0.5*unit.ActiveHalfWidth
}

func newDriftVolume(volumeID uint, units []TPCUnit, group []int) DriftVolume {
	seed := units[group[0]]

	volume := DriftVolume{
		VolumeID:      volumeID,
		PositiveDrift: seed.IsPositiveDrift(),
		TPCs:          make([]TPCKey, 0, len(group)),
	}
	for _, plane := range seed.Planes {
		volume.WirePitch[plane.View] = plane.WirePitch
		volume.WireAngle[plane.View] = plane.WireAngle
	}

	box := tpcBounds(seed)
	for _, idx := range group {
		box.extend(tpcBounds(units[idx]))
		volume.TPCs = append(volume.TPCs, units[idx].Key())
	}
	volume.Center = box.center()
	volume.Width = box.width()
	volume.SigmaUVZ = volume.WirePitch[ViewU] + volume.WirePitch[ViewV] + volume.WirePitch[ViewW] + 0.1
	return volume
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(i, j int) {
	ri, rj := uf.find(i), uf.find(j)
	if ri == rj {
		return
	}
	switch {
	case uf.rank[ri] < uf.rank[rj]:
		uf.parent[ri] = rj
	case uf.rank[ri] > uf.rank[rj]:
		uf.parent[rj] = ri
	default:
		uf.parent[rj] = ri
		uf.rank[ri]++
	}
}
