//go:build embed

package svcdb

import "github.com/espenotterstad/svcdb/internal/snapshot"

// The embedded tables (embeddedRecords, embeddedByPort, embeddedPortRanges,
// embeddedByName, embeddedNameIdx) are generated into this package by
// cmd/svcdbgen; see the package comment.  They are static data: there is no
// initialization step and no locking.  Lookups go through the same
// snapshot.Tables probe code the generator verifies and the snapshot
// package's tests exercise.

var embeddedTables = snapshot.Tables{
	Records:    embeddedRecords,
	ByPort:     embeddedByPort,
	PortRanges: embeddedPortRanges,
	ByName:     embeddedByName,
	NameIdx:    embeddedNameIdx,
}

func lookupByPort(port int, protos []Protocol) []Record {
	return filterProtos(embeddedTables.LookupByPort(port), protos)
}

func lookupByName(name string) []Record {
	return embeddedTables.LookupByName(name)
}

// Source reports the active backend.
func Source() string {
	return "embedded registry snapshot"
}
