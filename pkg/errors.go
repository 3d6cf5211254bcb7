package tpcgeo

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyLoaded  = errors.New("geometry already loaded")
	ErrNotLoaded      = errors.New("geometry not loaded")
	ErrNoDriftVolumes = errors.New("no drift volumes found in detector geometry")
	ErrUnknownView    = errors.New("unknown wire plane view (not U, V or W)")
	ErrEmptyLookup    = errors.New("drift volume lookup table is empty")
	ErrTPCNotFound    = errors.New("TPC does not belong to any drift volume")
	ErrDuplicateTPC   = errors.New("TPC belongs to more than one drift volume")
)

// ErrMalformedTPC represents a TPC description that cannot be used to build
// drift volumes.
type ErrMalformedTPC struct {
	Cryostat uint
	TPC      uint
	Err      error
}

func (e *ErrMalformedTPC) Error() string {
	return fmt.Sprintf("malformed TPC (cryostat %d, tpc %d): %v", e.Cryostat, e.TPC, e.Err)
}

func (e *ErrMalformedTPC) Unwrap() error {
	return e.Err
}

// ErrQuery represents a failed geometry database query.
type ErrQuery struct {
	Table string
	Err   error
}

func (e *ErrQuery) Error() string {
	return fmt.Sprintf("error querying table %q: %v", e.Table, e.Err)
}

func (e *ErrQuery) Unwrap() error {
	return e.Err
}

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error {
	return e.Err
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error {
	return e.Err
}
