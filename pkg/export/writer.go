package export

import (
	"errors"
	"fmt"

	"gonum.org/v1/hdf5"

	tpcgeo "github.com/next-exp/tpcgeo/pkg"
)

// Writer stores a detector geometry in an HDF5 file under the "Geometry"
// group: drift volumes, TPC to volume mapping, detector gaps and a summary.
type Writer struct {
	File             *hdf5.File
	Filename         string
	GeometryGroup    *hdf5.Group
	InfoTable        *hdf5.Dataset
	DriftVolumeTable *hdf5.Dataset
	TPCMappingTable  *hdf5.Dataset
	GapTable         *hdf5.Dataset
}

func NewWriter(filename string, compressionLevel int) (*Writer, error) {
	writer := &Writer{Filename: filename}
	var err error
	if writer.File, err = openFile(filename); err != nil {
		return nil, err
	}
	if writer.GeometryGroup, err = createGroup(writer.File, "Geometry"); err != nil {
		return nil, errors.Join(err, writer.Close())
	}

	tables := []struct {
		dset     **hdf5.Dataset
		name     string
		datatype interface{}
	}{
		{&writer.InfoTable, "detector", DetectorInfoHDF5{}},
		{&writer.DriftVolumeTable, "driftVolumes", DriftVolumeHDF5{}},
		{&writer.TPCMappingTable, "tpcMapping", TPCMappingHDF5{}},
		{&writer.GapTable, "detectorGaps", DetectorGapHDF5{}},
	}
	for _, table := range tables {
		*table.dset, err = createTable(writer.GeometryGroup, table.name, table.datatype, compressionLevel)
		if err != nil {
			return nil, errors.Join(err, writer.Close())
		}
	}
	return writer, nil
}

func (w *Writer) WriteGeometry(detector string, volumes []tpcgeo.DriftVolume, table *tpcgeo.VolumeLookupTable, gaps []tpcgeo.DetectorGap) error {
	info := []DetectorInfoHDF5{{
		detector: convertToHdf5String(detector),
		nVolumes: int32(len(volumes)),
		nTPCs:    int32(table.Len()),
		nGaps:    int32(len(gaps)),
	}}
	if err := writeArrayToTable(w.InfoTable, &info, 0); err != nil {
		return fmt.Errorf("error writing detector info: %w", err)
	}

	volumeRows := make([]DriftVolumeHDF5, len(volumes))
	for i, volume := range volumes {
		volumeRows[i] = driftVolumeRow(volume)
	}
	if err := writeArrayToTable(w.DriftVolumeTable, &volumeRows, 0); err != nil {
		return fmt.Errorf("error writing drift volumes: %w", err)
	}

	mappingRows := sortedTPCMapping(table)
	if err := writeArrayToTable(w.TPCMappingTable, &mappingRows, 0); err != nil {
		return fmt.Errorf("error writing TPC mapping: %w", err)
	}

	gapRows := make([]DetectorGapHDF5, len(gaps))
	for i, gap := range gaps {
		gapRows[i] = detectorGapRow(gap)
	}
	if err := writeArrayToTable(w.GapTable, &gapRows, 0); err != nil {
		return fmt.Errorf("error writing detector gaps: %w", err)
	}
	return nil
}

// sortedTPCMapping lists the lookup table ordered by cryostat and TPC.
// The array MUST be allocated at creation, HDF5 reads it by address.
func sortedTPCMapping(table *tpcgeo.VolumeLookupTable) []TPCMappingHDF5 {
	keys := table.Keys()
	rows := make([]TPCMappingHDF5, len(keys))
	for i, key := range keys {
		volumeID, _ := tpcgeo.GetVolumeID(table, key.Cryostat, key.TPC)
		rows[i] = TPCMappingHDF5{
			cryostat: int32(key.Cryostat),
			tpc:      int32(key.TPC),
			volumeID: int32(volumeID),
		}
	}
	return rows
}

func (w *Writer) Close() error {
	var errs []error

	datasets := []struct {
		dset *hdf5.Dataset
		name string
	}{
		{w.InfoTable, "detector info table"},
		{w.DriftVolumeTable, "drift volume table"},
		{w.TPCMappingTable, "TPC mapping table"},
		{w.GapTable, "detector gap table"},
	}
	for _, d := range datasets {
		if d.dset == nil {
			continue
		}
		if err := d.dset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", d.name, err))
		}
	}
	if w.GeometryGroup != nil {
		if err := w.GeometryGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing geometry group: %w", err))
		}
	}
	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
