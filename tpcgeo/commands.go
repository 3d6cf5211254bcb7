package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	tpcgeo "github.com/next-exp/tpcgeo/pkg"
	"github.com/next-exp/tpcgeo/pkg/export"
)

func writeJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func newVolumesCommand() *cobra.Command {
	var raw, asJSON bool
	cmd := &cobra.Command{
		Use:   "volumes",
		Short: "Print the drift volumes of the detector",
		RunE: func(cmd *cobra.Command, args []string) error {
			geometry, _, err := loadGeometry()
			if err != nil {
				return err
			}
			volumes := geometry.DriftVolumes()
			if raw {
				volumes = geometry.RawDriftVolumes()
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), volumes)
			}
			for _, volume := range volumes {
				fmt.Fprintln(cmd.OutOrStdout(), volume)
				for view := tpcgeo.ViewU; view <= tpcgeo.ViewW; view++ {
					fmt.Fprintf(cmd.OutOrStdout(), "  %v: pitch %.4f cm, angle %.4f rad\n", view, volume.Pitch(view), volume.Angle(view))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  TPCs: %v\n", volume.TPCs)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Keep the wire views as labelled by the geometry source")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newGapsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Print the dead regions between drift volumes",
		RunE: func(cmd *cobra.Command, args []string) error {
			geometry, _, err := loadGeometry()
			if err != nil {
				return err
			}
			gaps, err := geometry.LoadDetectorGaps()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), gaps)
			}
			if len(gaps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no detector gaps")
			}
			for _, gap := range gaps {
				fmt.Fprintln(cmd.OutOrStdout(), gap)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newLookupCommand() *cobra.Command {
	var cryostat, tpc uint
	var viewName string
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve the drift volume and global view of a TPC wire plane",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := tpcgeo.ParseView(viewName)
			if err != nil {
				return err
			}
			geometry, _, err := loadGeometry()
			if err != nil {
				return err
			}
			volumeID, err := geometry.GetVolumeID(cryostat, tpc)
			if err != nil {
				return err
			}
			global, err := geometry.GetGlobalView(cryostat, tpc, view)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cryostat %d tpc %d view %v -> volume %d global view %v\n",
				cryostat, tpc, view, volumeID, global)
			return nil
		},
	}
	cmd.Flags().UintVar(&cryostat, "cryostat", 0, "Cryostat index")
	cmd.Flags().UintVar(&tpc, "tpc", 0, "TPC index within the cryostat")
	cmd.Flags().StringVar(&viewName, "view", "W", "Raw wire view (U, V or W)")
	return cmd
}

func newExportCommand() *cobra.Command {
	var fileOut string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write drift volumes, TPC mapping and detector gaps to an HDF5 file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fileOut == "" {
				fileOut = configuration.FileOut
			}
			if fileOut == "" {
				return fmt.Errorf("no output file given")
			}
			geometry, description, err := loadGeometry()
			if err != nil {
				return err
			}
			gaps, err := geometry.LoadDetectorGaps()
			if err != nil {
				return err
			}

			writer, err := export.NewWriter(fileOut, configuration.CompressionLevel)
			if err != nil {
				return err
			}
			if err := writer.WriteGeometry(description.Name, geometry.DriftVolumes(), geometry.LookupTable(), gaps); err != nil {
				writer.Close()
				return err
			}
			if err := writer.Close(); err != nil {
				return err
			}
			logger.Info(fmt.Sprintf("Geometry written to %s", fileOut), "export")
			return nil
		},
	}
	cmd.Flags().StringVar(&fileOut, "out", "", "Output HDF5 file (overrides file_out)")
	return cmd
}
