package tpcgeo

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tpcColumns   = []string{"Cryostat", "TPC", "CenterX", "CenterY", "CenterZ", "HalfWidth", "HalfHeight", "Length", "Drift"}
	planeColumns = []string{"Cryostat", "TPC", "Plane", "View", "Pitch", "Angle"}
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func expectTwoTPCs(mock sqlmock.Sqlmock, runNumber int) {
	tpcs := sqlmock.NewRows(tpcColumns).
		AddRow(0, 0, -133.0, 0.0, 0.0, 128.0, 100.0, 500.0, "-x").
		AddRow(0, 1, 133.0, 0.0, 0.0, 128.0, 100.0, 500.0, "+x")
	mock.ExpectQuery(`SELECT (.+) FROM TPCGeometry WHERE MinRun <= \? and MaxRun >= \?`).
		WithArgs(runNumber, runNumber).
		WillReturnRows(tpcs)
}

func TestLoadDescriptionFromDB(t *testing.T) {
	db, mock := newMockDB(t)
	expectTwoTPCs(mock, 12000)

	planes := sqlmock.NewRows(planeColumns)
	for tpc := 0; tpc < 2; tpc++ {
		planes.AddRow(0, tpc, 0, "U", 0.3, 0.6283).
			AddRow(0, tpc, 1, "V", 0.3, -0.6283).
			AddRow(0, tpc, 2, "W", 0.3, 0.0)
	}
	mock.ExpectQuery(`SELECT (.+) FROM WirePlaneGeometry`).
		WithArgs(12000, 12000).
		WillReturnRows(planes)

	description, err := LoadDescriptionFromDB(db, 12000)
	require.NoError(t, err)
	assert.Equal(t, "run 12000", description.Name)

	// The database and the YAML file describe the same detector
	fromFile, err := ParseDescription([]byte(twoTPCDescription))
	require.NoError(t, err)
	assert.Equal(t, fromFile.Cryostats, description.Cryostats)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestLoadDescriptionFromDB_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM TPCGeometry`).
		WithArgs(1, 1).
		WillReturnError(errors.New("connection lost"))

	_, err := LoadDescriptionFromDB(db, 1)
	require.Error(t, err)
	var queryErr *ErrQuery
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, "TPCGeometry", queryErr.Table)
}

func TestLoadDescriptionFromDB_UnknownView(t *testing.T) {
	db, mock := newMockDB(t)
	expectTwoTPCs(mock, 7)
	mock.ExpectQuery(`SELECT (.+) FROM WirePlaneGeometry`).
		WithArgs(7, 7).
		WillReturnRows(sqlmock.NewRows(planeColumns).AddRow(0, 0, 0, "Y", 0.3, 0.0))

	_, err := LoadDescriptionFromDB(db, 7)
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestLoadDescriptionFromDB_OrphanPlane(t *testing.T) {
	db, mock := newMockDB(t)
	expectTwoTPCs(mock, 7)
	mock.ExpectQuery(`SELECT (.+) FROM WirePlaneGeometry`).
		WithArgs(7, 7).
		WillReturnRows(sqlmock.NewRows(planeColumns).AddRow(3, 0, 0, "W", 0.3, 0.0))

	_, err := LoadDescriptionFromDB(db, 7)
	assert.Error(t, err)
}

func TestConnectToDatabase_UnsupportedDriver(t *testing.T) {
	_, err := ConnectToDatabase("postgres", "user", "pass", "localhost", "geometry")
	assert.Error(t, err)
}
