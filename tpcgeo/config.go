package main

import (
	"encoding/json"
	"fmt"
	"os"

	tpcgeo "github.com/next-exp/tpcgeo/pkg"
)

// LoadConfiguration reads a JSON configuration file on top of the defaults.
// An empty filename keeps the defaults.
func LoadConfiguration(filename string) (tpcgeo.Configuration, error) {
	config := tpcgeo.DefaultConfiguration()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config tpcgeo.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Source: %s", config.Source), "config")
	logger.Info(fmt.Sprintf("Description file: %s", config.DescriptionFile), "config")
	logger.Info(fmt.Sprintf("Driver: %s", config.Driver), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Clustering: %s", config.Clustering), "config")
	logger.Info(fmt.Sprintf("Max delta theta: %g rad", config.MaxDeltaTheta), "config")
	logger.Info(fmt.Sprintf("Max gap displacement: %g cm", config.MaxGapDisplacement), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
}
