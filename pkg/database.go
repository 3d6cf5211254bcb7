package tpcgeo

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	_ "github.com/mattn/go-sqlite3"
)

func ConnectToDatabase(driver string, user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	var dbURI string
	switch driver {
	case "mysql":
		port := "3306"
		dbURI = fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	case "sqlite3":
		// dbname is the path of the database file
		dbURI = fmt.Sprintf("file:%s?mode=ro", dbname)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return sqlx.Connect(driver, dbURI)
}

type TPCGeometryEntry struct {
	Cryostat   uint    `db:"Cryostat"`
	TPC        uint    `db:"TPC"`
	CenterX    float64 `db:"CenterX"`
	CenterY    float64 `db:"CenterY"`
	CenterZ    float64 `db:"CenterZ"`
	HalfWidth  float64 `db:"HalfWidth"`
	HalfHeight float64 `db:"HalfHeight"`
	Length     float64 `db:"Length"`
	Drift      string  `db:"Drift"`
}

type WirePlaneEntry struct {
	Cryostat uint    `db:"Cryostat"`
	TPC      uint    `db:"TPC"`
	Plane    uint    `db:"Plane"`
	View     string  `db:"View"`
	Pitch    float64 `db:"Pitch"`
	Angle    float64 `db:"Angle"`
}

const tpcGeometryQuery = "SELECT Cryostat, TPC, CenterX, CenterY, CenterZ, HalfWidth, HalfHeight, Length, Drift " +
	"FROM TPCGeometry WHERE MinRun <= ? and MaxRun >= ? ORDER BY Cryostat, TPC"

const wirePlaneQuery = "SELECT Cryostat, TPC, Plane, View, Pitch, Angle " +
	"FROM WirePlaneGeometry WHERE MinRun <= ? and MaxRun >= ? ORDER BY Cryostat, TPC, Plane"

// LoadDescriptionFromDB reads the TPC geometry valid for runNumber.
func LoadDescriptionFromDB(db *sqlx.DB, runNumber int) (*DetectorDescription, error) {
	tpcs, err := getTPCsFromDB(db, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting TPC geometry from database: %w", err)
		logger.Error(errMessage.Error())
		return nil, errMessage
	}
	planes, err := getWirePlanesFromDB(db, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting wire planes from database: %w", err)
		logger.Error(errMessage.Error())
		return nil, errMessage
	}

	units := make([]TPCUnit, len(tpcs))
	index := make(map[TPCKey]int, len(tpcs))
	for i, row := range tpcs {
		drift, err := ParseDriftDirection(row.Drift)
		if err != nil {
			return nil, &ErrMalformedTPC{Cryostat: row.Cryostat, TPC: row.TPC, Err: err}
		}
		units[i] = TPCUnit{
			Cryostat:         row.Cryostat,
			TPC:              row.TPC,
			Transform:        NewTranslation(row.CenterX, row.CenterY, row.CenterZ),
			ActiveHalfWidth:  row.HalfWidth,
			ActiveHalfHeight: row.HalfHeight,
			ActiveLength:     row.Length,
			DriftDirection:   drift,
		}
		index[units[i].Key()] = i
	}

	for _, row := range planes {
		key := TPCKey{Cryostat: row.Cryostat, TPC: row.TPC}
		i, ok := index[key]
		if !ok {
			return nil, fmt.Errorf("wire plane %d refers to unknown TPC %v", row.Plane, key)
		}
		view, err := ParseView(row.View)
		if err != nil {
			return nil, &ErrMalformedTPC{Cryostat: row.Cryostat, TPC: row.TPC, Err: err}
		}
		units[i].Planes = append(units[i].Planes, WirePlane{View: view, WirePitch: row.Pitch, WireAngle: row.Angle})
	}

	return NewDetectorDescription(fmt.Sprintf("run %d", runNumber), units)
}

func getTPCsFromDB(db *sqlx.DB, runNumber int) ([]TPCGeometryEntry, error) {
	if configuration.Verbosity > 0 {
		logger.Info("Reading TPC geometry from database", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s [run %d]", tpcGeometryQuery, runNumber)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(tpcGeometryQuery, runNumber, runNumber)
	if err != nil {
		return nil, &ErrQuery{Table: "TPCGeometry", Err: err}
	}
	defer rows.Close()

	entries := make([]TPCGeometryEntry, 0)
	for rows.Next() {
		var result TPCGeometryEntry
		if err := rows.StructScan(&result); err != nil {
			return nil, &ErrQuery{Table: "TPCGeometry", Err: err}
		}
		entries = append(entries, result)
	}
	if err := rows.Err(); err != nil {
		return nil, &ErrQuery{Table: "TPCGeometry", Err: err}
	}
	return entries, nil
}

func getWirePlanesFromDB(db *sqlx.DB, runNumber int) ([]WirePlaneEntry, error) {
	if configuration.Verbosity > 0 {
		logger.Info("Reading wire planes from database", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s [run %d]", wirePlaneQuery, runNumber)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(wirePlaneQuery, runNumber, runNumber)
	if err != nil {
		return nil, &ErrQuery{Table: "WirePlaneGeometry", Err: err}
	}
	defer rows.Close()

	entries := make([]WirePlaneEntry, 0)
	for rows.Next() {
		var result WirePlaneEntry
		if err := rows.StructScan(&result); err != nil {
			return nil, &ErrQuery{Table: "WirePlaneGeometry", Err: err}
		}
		entries = append(entries, result)
	}
	if err := rows.Err(); err != nil {
		return nil, &ErrQuery{Table: "WirePlaneGeometry", Err: err}
	}
	return entries, nil
}
