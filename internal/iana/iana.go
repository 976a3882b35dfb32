// Package iana decodes the IANA Service Name and Transport Protocol Port
// Number Registry CSV into service records.  It is the input stage of the
// snapshot generator and runs only at build time.
//
// CSV columns: Service Name, Port Number, Transport Protocol, Description,
// Assignee, Contact, Registration Date, Modification Date, Reference,
// Service Code, Unauthorized Use Reported, Assignment Notes.
package iana

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/espenotterstad/svcdb/internal/svc"
)

// CSVURL is the published location of the registry dataset.
const CSVURL = "https://www.iana.org/assignments/service-names-port-numbers/service-names-port-numbers.csv"

// maxRangeWidth bounds port-range expansion.  The registry's ranges are at
// most a few ports wide; anything wider is a mangled row.
const maxRangeWidth = 4096

// Options selects how much of each row becomes part of the record.
type Options struct {
	// Full populates the extended metadata fields.  The reduced form keeps
	// only name, port, and protocol, which is what embedded builds want
	// when artifact size matters.
	Full bool
}

// Decode reads the registry CSV and returns one record per service name and
// port.  Rows without a service name, port, or protocol are skipped, as are
// rows whose port field does not parse — the registry mixes assignments
// with reserved and informational rows.  Port ranges expand to one record
// per port.
func Decode(r io.Reader, opts Options) ([]svc.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	// Header row.
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read registry header: %w", err)
	}

	var recs []svc.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read registry row: %w", err)
		}
		if len(row) < 3 {
			continue
		}

		name := strings.TrimSpace(row[0])
		portStr := strings.TrimSpace(row[1])
		protoStr := strings.TrimSpace(row[2])
		if name == "" || portStr == "" || protoStr == "" {
			continue
		}
		lo, hi, ok := parsePortRange(portStr)
		if !ok {
			continue
		}
		proto := svc.ParseProtocol(protoStr)

		for port := lo; port <= hi; port++ {
			rec := svc.Record{Name: name, Port: port, Protocol: proto}
			if opts.Full {
				fillMetadata(&rec, row)
			}
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

// fillMetadata copies the extended columns into rec, leaving absent cells
// zero.
func fillMetadata(rec *svc.Record, row []string) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	rec.Description = cell(3)
	rec.Assignee = cell(4)
	rec.Contact = cell(5)
	rec.RegistrationDate = cell(6)
	rec.ModificationDate = cell(7)
	rec.References = splitReferences(cell(8))
	rec.Notes = cell(11)
}

// splitReferences breaks a reference cell like "[RFC768][RFC6335]" into its
// individual entries, preserving order.
func splitReferences(s string) []string {
	if s == "" {
		return nil
	}
	var refs []string
	for _, part := range strings.Split(s, "]") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "["))
		if part != "" {
			refs = append(refs, part)
		}
	}
	return refs
}

// parsePortRange parses a port cell: either a single port or an inclusive
// "lo-hi" range, each side within 0–65535.
func parsePortRange(s string) (lo, hi int, ok bool) {
	if dash := strings.IndexByte(s, '-'); dash >= 0 {
		l, err1 := strconv.ParseUint(s[:dash], 10, 16)
		h, err2 := strconv.ParseUint(s[dash+1:], 10, 16)
		if err1 != nil || err2 != nil || l > h || h-l > maxRangeWidth {
			return 0, 0, false
		}
		return int(l), int(h), true
	}
	p, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, 0, false
	}
	return int(p), int(p), true
}
