package export

import (
	"gonum.org/v1/hdf5"

	tpcgeo "github.com/next-exp/tpcgeo/pkg"
)

type DriftVolumeHDF5 struct {
	volumeID      int32
	positiveDrift int32
	pitchU        float32
	pitchV        float32
	pitchW        float32
	angleU        float32
	angleV        float32
	angleW        float32
	centerX       float32
	centerY       float32
	centerZ       float32
	widthX        float32
	widthY        float32
	widthZ        float32
	sigmaUVZ      float32
}

type TPCMappingHDF5 struct {
	cryostat int32
	tpc      int32
	volumeID int32
}

type DetectorGapHDF5 struct {
	x1 float32
	y1 float32
	z1 float32
	x2 float32
	y2 float32
	z2 float32
}

type DetectorInfoHDF5 struct {
	detector [STRLEN]byte
	nVolumes int32
	nTPCs    int32
	nGaps    int32
}

const STRLEN = 32

// Tables are extended in chunks of this many rows
const chunkRows = 32768

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func driftVolumeRow(volume tpcgeo.DriftVolume) DriftVolumeHDF5 {
	return DriftVolumeHDF5{
		volumeID:      int32(volume.VolumeID),
		positiveDrift: boolToInt32(volume.PositiveDrift),
		pitchU:        float32(volume.WirePitch[tpcgeo.ViewU]),
		pitchV:        float32(volume.WirePitch[tpcgeo.ViewV]),
		pitchW:        float32(volume.WirePitch[tpcgeo.ViewW]),
		angleU:        float32(volume.WireAngle[tpcgeo.ViewU]),
		angleV:        float32(volume.WireAngle[tpcgeo.ViewV]),
		angleW:        float32(volume.WireAngle[tpcgeo.ViewW]),
		centerX:       float32(volume.Center.X),
		centerY:       float32(volume.Center.Y),
		centerZ:       float32(volume.Center.Z),
		widthX:        float32(volume.Width.X),
		widthY:        float32(volume.Width.Y),
		widthZ:        float32(volume.Width.Z),
		sigmaUVZ:      float32(volume.SigmaUVZ),
	}
}

func detectorGapRow(gap tpcgeo.DetectorGap) DetectorGapHDF5 {
	return DetectorGapHDF5{
		x1: float32(gap.X1), y1: float32(gap.Y1), z1: float32(gap.Z1),
		x2: float32(gap.X2), y2: float32(gap.Y2), z2: float32(gap.Z2),
	}
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &tpcgeo.ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &tpcgeo.ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}, compressionLevel int) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &tpcgeo.ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &tpcgeo.ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	if err := plist.SetChunk([]uint{chunkRows}); err != nil {
		return nil, &tpcgeo.ErrCreateTable{TableName: name, Err: err}
	}
	if compressionLevel > 0 {
		if err := plist.SetDeflate(compressionLevel); err != nil {
			return nil, &tpcgeo.ErrCreateTable{TableName: name, Err: err}
		}
	}

	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &tpcgeo.ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &tpcgeo.ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// writeArrayToTable appends data after the first offset rows of dataset.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, offset int) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return err
	}
	defer dataspace.Close()

	rowsInFile := uint(offset)
	newsize := []uint{rowsInFile + length}
	if err := dataset.Resize(newsize); err != nil {
		return err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{rowsInFile}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return err
	}

	return dataset.WriteSubset(data, dataspace, filespace)
}
