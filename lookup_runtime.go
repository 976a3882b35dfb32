//go:build !embed

package svcdb

import (
	"os"
	"sync"

	"github.com/espenotterstad/svcdb/internal/index"
	"github.com/espenotterstad/svcdb/internal/parser"
)

// defaultServicesFile is used when SVCDB_SERVICES_FILE is unset.
const defaultServicesFile = "/etc/services"

var (
	loadOnce   sync.Once
	runtimeIdx *index.Index
	loadedFrom string
)

// load parses the services file exactly once per process; concurrent first
// callers block on the Once and then share the immutable index.  An
// unreadable file degrades to an empty index — lookups return nothing for
// the rest of the process rather than failing the host program.
func load() *index.Index {
	loadOnce.Do(func() {
		path := os.Getenv("SVCDB_SERVICES_FILE")
		if path == "" {
			path = defaultServicesFile
		}
		loadedFrom = path
		recs, err := parser.ParseFile(path)
		if err != nil {
			recs = nil
		}
		runtimeIdx = index.Build(recs)
	})
	return runtimeIdx
}

func lookupByPort(port int, protos []Protocol) []Record {
	ix := load()
	if len(protos) == 1 {
		return ix.ByPortProto(port, protos[0])
	}
	return filterProtos(ix.ByPort(port), protos)
}

func lookupByName(name string) []Record {
	return load().ByName(name)
}

// Source reports the active backend and where its data came from.
func Source() string {
	load()
	return "services file " + loadedFrom
}
