// Package svcdb provides bidirectional lookup between network service
// names and port/protocol assignments.
//
// By default the dataset is the system services(5) file, parsed lazily on
// first lookup (the path comes from the SVCDB_SERVICES_FILE environment
// variable, falling back to /etc/services).  Building with the "embed" tag
// instead compiles in perfect-hash tables generated from the IANA registry
// by cmd/svcdbgen, so lookups are a single probe with no runtime parsing at
// all.  Regenerate the tables with:
//
//	go run ./cmd/svcdbgen --out zz_generated_embed.go
//
// Both backends answer the same two queries and neither ever fails: an
// unreadable services file or an unknown name or port simply means no
// results.
package svcdb

//go:generate go run ./cmd/svcdbgen --out zz_generated_embed.go

import "github.com/espenotterstad/svcdb/internal/svc"

// Record is one service name to port/protocol assignment.
type Record = svc.Record

// Protocol is a transport protocol tag in its lowercase form.
type Protocol = svc.Protocol

// The transport protocols the registry assigns ports for.
const (
	TCP  = svc.TCP
	UDP  = svc.UDP
	SCTP = svc.SCTP
	DCCP = svc.DCCP
)

// ParseProtocol normalizes raw protocol text to a Protocol; unrecognized
// protocols come back as their lowercased raw form.
func ParseProtocol(s string) Protocol {
	return svc.ParseProtocol(s)
}

// LookupByPort returns every record assigned to port.  When one or more
// protocols are given, only records matching one of them are returned.
// A nil result means no assignment is known.
func LookupByPort(port int, protos ...Protocol) []Record {
	return lookupByPort(port, protos)
}

// LookupByName returns every record whose service name equals name.
// Matching is case-sensitive and exact.  A nil result means the name is
// not registered.
func LookupByName(name string) []Record {
	return lookupByName(name)
}

// filterProtos keeps the records matching one of protos.  An empty filter
// keeps everything.
func filterProtos(recs []Record, protos []Protocol) []Record {
	if len(protos) == 0 {
		return recs
	}
	var out []Record
	for _, r := range recs {
		for _, p := range protos {
			if r.Protocol == p {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
