// Package index builds the runtime in-memory lookup maps over parsed
// service records.
package index

import (
	"slices"

	"github.com/espenotterstad/svcdb/internal/svc"
)

type portKey struct {
	port  int
	proto svc.Protocol
}

// Index answers name and port/protocol queries over an immutable record
// set.  Construction is O(n); every record sharing a key is kept, never
// collapsed.  After Build the index is read-only and safe for concurrent
// use without locking.
type Index struct {
	byName      map[string][]svc.Record
	byPort      map[int][]svc.Record
	byPortProto map[portKey][]svc.Record
	n           int
}

// Build constructs an Index from recs.  A nil or empty input yields a
// usable index that answers every query with nothing.
func Build(recs []svc.Record) *Index {
	ix := &Index{
		byName:      make(map[string][]svc.Record, len(recs)),
		byPort:      make(map[int][]svc.Record),
		byPortProto: make(map[portKey][]svc.Record, len(recs)),
		n:           len(recs),
	}
	for _, r := range recs {
		ix.byName[r.Name] = append(ix.byName[r.Name], r)
		ix.byPort[r.Port] = append(ix.byPort[r.Port], r)
		k := portKey{r.Port, r.Protocol}
		ix.byPortProto[k] = append(ix.byPortProto[k], r)
	}
	return ix
}

// ByName returns every record whose name equals name, case-sensitively.
func (ix *Index) ByName(name string) []svc.Record {
	return slices.Clone(ix.byName[name])
}

// ByPort returns every record assigned to port, across all protocols.
func (ix *Index) ByPort(port int) []svc.Record {
	return slices.Clone(ix.byPort[port])
}

// ByPortProto returns every record assigned to the (port, protocol) pair.
func (ix *Index) ByPortProto(port int, proto svc.Protocol) []svc.Record {
	return slices.Clone(ix.byPortProto[portKey{port, proto}])
}

// Len reports the number of indexed records.
func (ix *Index) Len() int { return ix.n }
