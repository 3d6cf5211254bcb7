package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	tpcgeo "github.com/next-exp/tpcgeo/pkg"
)

var configuration tpcgeo.Configuration

var (
	logger          Logger
	configFilename  string
	descriptionFile string
	verbosity       int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tpcgeo",
		Short:         "Group TPCs into drift volumes and find the gaps between them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&configFilename, "config", "", "Configuration file path")
	root.PersistentFlags().StringVar(&descriptionFile, "description", "", "Detector description file (overrides the configuration source)")
	root.PersistentFlags().IntVar(&verbosity, "verbosity", 0, "Verbosity level (overrides the configuration file)")

	root.AddCommand(
		newVolumesCommand(),
		newGapsCommand(),
		newLookupCommand(),
		newExportCommand(),
	)
	return root
}

func setup(cmd *cobra.Command) error {
	var err error
	configuration, err = LoadConfiguration(configFilename)
	if err != nil {
		return fmt.Errorf("error reading configuration file: %w", err)
	}
	if cmd.Flags().Changed("verbosity") {
		configuration.Verbosity = verbosity
	}
	if descriptionFile != "" {
		configuration.Source = tpcgeo.SourceFile
		configuration.DescriptionFile = descriptionFile
	}

	tpcgeo.SetConfiguration(configuration)
	tpcgeo.SetLogger(logger)

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}
	return nil
}

// openSource reads the detector description selected by the configuration.
func openSource(config tpcgeo.Configuration) (*tpcgeo.DetectorDescription, error) {
	switch config.Source {
	case tpcgeo.SourceFile:
		return tpcgeo.LoadDescriptionFile(config.DescriptionFile)
	case tpcgeo.SourceDatabase:
		dbConn, err := tpcgeo.ConnectToDatabase(config.Driver, config.User, config.Passwd, config.Host, config.DBName)
		if err != nil {
			return nil, fmt.Errorf("error connecting to database: %w", err)
		}
		defer dbConn.Close()
		return tpcgeo.LoadDescriptionFromDB(dbConn, config.RunNumber)
	default:
		return nil, fmt.Errorf("unknown geometry source %q", config.Source)
	}
}

func loadGeometry() (*tpcgeo.Geometry, *tpcgeo.DetectorDescription, error) {
	description, err := openSource(configuration)
	if err != nil {
		return nil, nil, err
	}
	geometry := tpcgeo.NewGeometry(description, configuration)
	if err := geometry.Load(); err != nil {
		return nil, nil, err
	}
	return geometry, description, nil
}
