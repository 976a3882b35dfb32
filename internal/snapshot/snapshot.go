// Package snapshot turns a structured registry dataset into the perfect-hash
// lookup tables baked into embedded builds.  It runs inside cmd/svcdbgen at
// build time, never at program startup: the generator calls Build, verifies
// the result, and writes the tables out as Go source with WriteGo.
package snapshot

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/espenotterstad/svcdb/internal/phf"
	"github.com/espenotterstad/svcdb/internal/svc"
)

// portKey derives the perfect-hash key for a port.  The generated
// lookup code derives keys the same way; the two must stay in sync.
func portKey(port int) string { return strconv.Itoa(port) }

// Tables is a built snapshot.  Records is sorted so that all entries for a
// port are contiguous; ByPort maps a port key to the slot holding that
// port's [start, end) range, and ByName maps a name to the slot holding the
// indices of that name's records.
type Tables struct {
	Records    []svc.Record
	ByPort     phf.Table
	PortRanges [][2]uint32
	ByName     phf.Table
	NameIdx    [][]uint32
}

// Build deduplicates and groups recs and constructs both perfect-hash
// tables.  Records identical in (name, port, protocol) collapse to the
// first occurrence; distinct records sharing a key are all kept.
func Build(recs []svc.Record) (*Tables, error) {
	type ident struct {
		name  string
		port  int
		proto svc.Protocol
	}
	seen := make(map[ident]struct{}, len(recs))
	records := make([]svc.Record, 0, len(recs))
	for _, r := range recs {
		id := ident{r.Name, r.Port, r.Protocol}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		records = append(records, r)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Port != records[j].Port {
			return records[i].Port < records[j].Port
		}
		if records[i].Name != records[j].Name {
			return records[i].Name < records[j].Name
		}
		return records[i].Protocol < records[j].Protocol
	})

	t := &Tables{Records: records}

	// Port table: one key per distinct port, mapping to its contiguous
	// range within the sorted record array.
	var portKeys []string
	var ranges [][2]uint32
	for i := 0; i < len(records); {
		j := i
		for j < len(records) && records[j].Port == records[i].Port {
			j++
		}
		portKeys = append(portKeys, portKey(records[i].Port))
		ranges = append(ranges, [2]uint32{uint32(i), uint32(j)})
		i = j
	}
	byPort, err := phf.Build(portKeys)
	if err != nil {
		return nil, fmt.Errorf("build port table: %w", err)
	}
	t.ByPort = byPort
	t.PortRanges = make([][2]uint32, len(portKeys))
	for i, k := range portKeys {
		t.PortRanges[byPort.Slot(k)] = ranges[i]
	}

	// Name table: one key per distinct name, mapping to the indices of its
	// records.
	nameIdx := make(map[string][]uint32, len(records))
	var nameKeys []string
	for i, r := range records {
		if _, ok := nameIdx[r.Name]; !ok {
			nameKeys = append(nameKeys, r.Name)
		}
		nameIdx[r.Name] = append(nameIdx[r.Name], uint32(i))
	}
	byName, err := phf.Build(nameKeys)
	if err != nil {
		return nil, fmt.Errorf("build name table: %w", err)
	}
	t.ByName = byName
	t.NameIdx = make([][]uint32, len(nameKeys))
	for _, k := range nameKeys {
		t.NameIdx[byName.Slot(k)] = nameIdx[k]
	}

	return t, nil
}

// LookupByPort answers a port query against the built tables: one probe,
// then verification against the stored range.
func (t *Tables) LookupByPort(port int) []svc.Record {
	if len(t.PortRanges) == 0 {
		return nil
	}
	rng := t.PortRanges[t.ByPort.Slot(portKey(port))]
	if t.Records[rng[0]].Port != port {
		return nil
	}
	return slices.Clone(t.Records[rng[0]:rng[1]])
}

// LookupByName answers a name query against the built tables.
func (t *Tables) LookupByName(name string) []svc.Record {
	if len(t.NameIdx) == 0 {
		return nil
	}
	idx := t.NameIdx[t.ByName.Slot(name)]
	if len(idx) == 0 || t.Records[idx[0]].Name != name {
		return nil
	}
	out := make([]svc.Record, len(idx))
	for i, j := range idx {
		out[i] = t.Records[j]
	}
	return out
}

// Verify probes every port and name in the tables and checks the answer
// contains the expected records.  The generator runs this before writing
// the snapshot so a construction bug fails the build, not a lookup.
func (t *Tables) Verify() error {
	for _, r := range t.Records {
		same := func(got svc.Record) bool {
			return got.Name == r.Name && got.Port == r.Port && got.Protocol == r.Protocol
		}
		if !slices.ContainsFunc(t.LookupByPort(r.Port), same) {
			return fmt.Errorf("snapshot: port %d does not resolve to %q/%s", r.Port, r.Name, r.Protocol)
		}
		if !slices.ContainsFunc(t.LookupByName(r.Name), same) {
			return fmt.Errorf("snapshot: name %q does not resolve to port %d/%s", r.Name, r.Port, r.Protocol)
		}
	}
	return nil
}
