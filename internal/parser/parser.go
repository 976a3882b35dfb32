// Package parser reads the line-oriented services(5) registry format and
// produces service records.  The parser is a single linear pass and never
// fails as a whole: lines it cannot make sense of are dropped so that one
// bad entry in a system file does not take down lookups for every other
// service.
package parser

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/espenotterstad/svcdb/internal/svc"
)

// Parse reads a services(5) stream and returns one record per service name,
// aliases included.  The input order is preserved.
func Parse(r io.Reader) []svc.Record {
	var recs []svc.Record
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		recs = append(recs, ParseLine(sc.Text())...)
	}
	return recs
}

// ParseFile parses the registry file at path.  Open and read errors are
// returned to the caller; individual malformed lines are not.
func ParseFile(path string) ([]svc.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f), nil
}

// ParseLine parses a single registry line into zero or more records.
// A data line has the shape
//
//	name  port/protocol  [alias ...]  [# comment]
//
// Each alias names the same (port, protocol) pair and yields its own record.
// A trailing comment becomes the records' Description.  Blank lines,
// comment-only lines, and lines with an unparseable port/protocol token
// yield nothing.
func ParseLine(line string) []svc.Record {
	var desc string
	if i := strings.IndexByte(line, '#'); i >= 0 {
		desc = strings.TrimSpace(line[i+1:])
		line = line[:i]
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil
	}

	port, proto, ok := splitPortProto(fields[1])
	if !ok {
		return nil
	}

	recs := make([]svc.Record, 0, len(fields)-1)
	recs = append(recs, svc.Record{Name: fields[0], Port: port, Protocol: proto, Description: desc})
	for _, alias := range fields[2:] {
		recs = append(recs, svc.Record{Name: alias, Port: port, Protocol: proto, Description: desc})
	}
	return recs
}

// splitPortProto splits an "80/tcp" token.  The port must be an unsigned
// decimal integer within 0–65535; the protocol is matched case-insensitively
// and unknown protocols are kept as their lowercased raw text.
func splitPortProto(tok string) (int, svc.Protocol, bool) {
	slash := strings.IndexByte(tok, '/')
	if slash < 0 || slash == len(tok)-1 {
		return 0, "", false
	}
	port, err := strconv.ParseUint(tok[:slash], 10, 16)
	if err != nil {
		return 0, "", false
	}
	return int(port), svc.ParseProtocol(tok[slash+1:]), true
}
