// Package svc defines the service-registry record model shared by the
// parser, the runtime index, and the generated snapshot tables.
package svc

import "strings"

// Protocol is a transport protocol tag in its lowercase form.
type Protocol string

// The transport protocols the registry assigns ports for. Values outside
// this set are legal: ParseProtocol preserves unrecognized protocol text
// rather than rejecting it.
const (
	TCP  Protocol = "tcp"
	UDP  Protocol = "udp"
	SCTP Protocol = "sctp"
	DCCP Protocol = "dccp"
)

// ParseProtocol normalizes raw protocol text to a Protocol. Known protocols
// match case-insensitively; anything else comes back as its lowercased raw
// form — the registry grows transport protocols faster than this package
// does, and an unknown tag still distinguishes (port, protocol) pairs.
func ParseProtocol(s string) Protocol {
	return Protocol(strings.ToLower(s))
}

// Record is one service name to port/protocol assignment. Records are
// immutable once built; multiple records may share a name (one per
// protocol or alias) and multiple names may share a (port, protocol) pair,
// so lookups always deal in slices.
type Record struct {
	Name     string
	Port     int // 0–65535
	Protocol Protocol

	// Extended metadata. Populated by full-dataset snapshots and, for
	// Description, by trailing services(5) comments; zero otherwise.
	Description      string
	Assignee         string
	Contact          string
	RegistrationDate string
	ModificationDate string
	References       []string
	Notes            string
}
