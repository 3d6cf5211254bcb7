package tpcgeo

import "fmt"

// ShouldSwitchUV reports whether the U and V views of a volume with the given
// drift sign are exchanged to reach the global convention. Multi-volume
// detectors are assumed to alternate anode and cathode planes, so positive
// drift volumes see U and V mirrored.
func ShouldSwitchUV(positiveDrift bool) bool {
	return positiveDrift
}

// NormalizeVolume returns a copy of volume with U and V expressed in the
// global convention. W is never changed.
func NormalizeVolume(volume DriftVolume) DriftVolume {
	normalized := volume.clone()
	if !ShouldSwitchUV(volume.PositiveDrift) {
		return normalized
	}
	normalized.WirePitch[ViewU] = volume.WirePitch[ViewV]
	normalized.WirePitch[ViewV] = volume.WirePitch[ViewU]
	normalized.WireAngle[ViewU] = -volume.WireAngle[ViewV]
	normalized.WireAngle[ViewV] = -volume.WireAngle[ViewU]
	return normalized
}

// NormalizeVolumes applies NormalizeVolume to every volume.
func NormalizeVolumes(volumes []DriftVolume) ([]DriftVolume, error) {
	if len(volumes) == 0 {
		return nil, fmt.Errorf("%w: nothing to normalize", ErrNotLoaded)
	}
	normalized := make([]DriftVolume, len(volumes))
	for i, volume := range volumes {
		normalized[i] = NormalizeVolume(volume)
	}
	return normalized, nil
}

// GlobalView maps the view label of a hit read out in a volume with the
// given drift sign onto the global convention.
func GlobalView(positiveDrift bool, view View) (View, error) {
	switchUV := ShouldSwitchUV(positiveDrift)
	switch view {
	case ViewW:
		return ViewW, nil
	case ViewU:
		if switchUV {
			return ViewV, nil
		}
		return ViewU, nil
	case ViewV:
		if switchUV {
			return ViewU, nil
		}
		return ViewV, nil
	default:
		return view, fmt.Errorf("%w: %d", ErrUnknownView, int(view))
	}
}
