package tpcgeo

const (
	// DefaultMaxDeltaTheta is the largest wire angle difference (rad) between
	// two TPCs that still belong to the same drift volume.
	DefaultMaxDeltaTheta = 0.01
	// DefaultMaxGapDisplacement is the largest separation (cm) between two
	// drift volumes for the region between them to count as a detector gap.
	DefaultMaxGapDisplacement = 30.0
)

const (
	ClusteringGreedy    = "greedy"
	ClusteringUnionFind = "union-find"
)

const (
	SourceFile     = "file"
	SourceDatabase = "db"
)

type Configuration struct {
	Verbosity          int     `json:"verbosity"`
	Source             string  `json:"source"`
	DescriptionFile    string  `json:"description_file"`
	Driver             string  `json:"driver"`
	Host               string  `json:"host"`
	User               string  `json:"user"`
	Passwd             string  `json:"pass"`
	DBName             string  `json:"dbname"`
	RunNumber          int     `json:"run_number"`
	Clustering         string  `json:"clustering"`
	MaxDeltaTheta      float64 `json:"max_delta_theta"`
	MaxGapDisplacement float64 `json:"max_gap_displacement"`
	FileOut            string  `json:"file_out"`
	CompressionLevel   int     `json:"compression_level"`
}

// DefaultConfiguration returns the settings used when no configuration
// file overrides them.
func DefaultConfiguration() Configuration {
	return Configuration{
		Verbosity:          0,
		Source:             SourceFile,
		Driver:             "mysql",
		Host:               "localhost",
		User:               "georeader",
		Passwd:             "readonly",
		DBName:             "TPCGEOMETRY",
		Clustering:         ClusteringUnionFind,
		MaxDeltaTheta:      DefaultMaxDeltaTheta,
		MaxGapDisplacement: DefaultMaxGapDisplacement,
		CompressionLevel:   4,
	}
}

var configuration = DefaultConfiguration()

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
