package snapshot

import (
	"bytes"
	"go/format"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/espenotterstad/svcdb/internal/index"
	"github.com/espenotterstad/svcdb/internal/parser"
	"github.com/espenotterstad/svcdb/internal/svc"
)

const sample = `
ftp      21/tcp
ssh      22/tcp
ssh      22/udp
ssh      22/sctp
http     80/tcp    www  # WorldWideWeb HTTP
kerberos 88/tcp    kdc
kerberos 88/udp    kdc
https    443/tcp
https    443/udp
ntp      123/udp
`

func TestBuildAndLookup(t *testing.T) {
	recs := parser.Parse(strings.NewReader(sample))
	tab, err := Build(recs)
	require.NoError(t, err)
	require.NoError(t, tab.Verify())

	p80 := tab.LookupByPort(80)
	require.Len(t, p80, 2)
	require.ElementsMatch(t, []string{"http", "www"}, []string{p80[0].Name, p80[1].Name})

	ssh := tab.LookupByName("ssh")
	require.Len(t, ssh, 3)
	for _, r := range ssh {
		require.Equal(t, 22, r.Port)
	}

	require.Nil(t, tab.LookupByPort(9999))
	require.Nil(t, tab.LookupByName("nonexistent"))
	require.Nil(t, tab.LookupByName("SSH"))
}

func TestBuildDeduplicates(t *testing.T) {
	recs := []svc.Record{
		{Name: "ssh", Port: 22, Protocol: svc.TCP, Description: "first"},
		{Name: "ssh", Port: 22, Protocol: svc.TCP, Description: "second"},
		{Name: "ssh", Port: 22, Protocol: svc.UDP},
	}
	tab, err := Build(recs)
	require.NoError(t, err)
	require.Len(t, tab.Records, 2)

	// First occurrence wins for identical (name, port, protocol).
	got := tab.LookupByName("ssh")
	require.Len(t, got, 2)
	for _, r := range got {
		if r.Protocol == svc.TCP {
			require.Equal(t, "first", r.Description)
		}
	}
}

// A two-record registry forces both perfect-hash tables to separate a
// single key pair within a table of size two.
func TestBuildTwoRecords(t *testing.T) {
	recs := []svc.Record{
		{Name: "ssh", Port: 22, Protocol: svc.TCP},
		{Name: "http", Port: 80, Protocol: svc.TCP},
	}
	tab, err := Build(recs)
	require.NoError(t, err)
	require.NoError(t, tab.Verify())

	p22 := tab.LookupByPort(22)
	require.Len(t, p22, 1)
	require.Equal(t, "ssh", p22[0].Name)

	http := tab.LookupByName("http")
	require.Len(t, http, 1)
	require.Equal(t, 80, http[0].Port)
}

func TestBuildEmpty(t *testing.T) {
	tab, err := Build(nil)
	require.NoError(t, err)
	require.Nil(t, tab.LookupByPort(80))
	require.Nil(t, tab.LookupByName("http"))
	require.NoError(t, tab.Verify())
}

// The snapshot tables and the runtime index must answer every query
// identically when built from the same records.
func TestSnapshotMatchesRuntimeIndex(t *testing.T) {
	recs := parser.Parse(strings.NewReader(sample))
	tab, err := Build(recs)
	require.NoError(t, err)
	ix := index.Build(recs)

	for port := 0; port <= 1000; port++ {
		require.ElementsMatch(t, ix.ByPort(port), tab.LookupByPort(port), "port %d", port)
	}
	names := []string{"ftp", "ssh", "http", "www", "kerberos", "kdc", "https", "ntp", "absent", ""}
	for _, name := range names {
		require.ElementsMatch(t, ix.ByName(name), tab.LookupByName(name), "name %q", name)
	}
}

func TestWriteGo(t *testing.T) {
	recs := parser.Parse(strings.NewReader(sample))
	recs = append(recs, svc.Record{
		Name: "blackjack", Port: 1025, Protocol: svc.TCP,
		Description:      "network blackjack",
		Assignee:         "IANA",
		RegistrationDate: "2002-06",
		References:       []string{"RFC6335"},
	})
	tab, err := Build(recs)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteGo(&buf, tab, GenInfo{Source: "testdata", Full: true}))

	src := buf.String()
	require.Contains(t, src, "Code generated by svcdbgen. DO NOT EDIT.")
	require.Contains(t, src, "//go:build embed")
	require.Contains(t, src, "package svcdb")
	for _, sym := range []string{
		"embeddedRecords", "embeddedByPort", "embeddedPortRanges",
		"embeddedByName", "embeddedNameIdx",
	} {
		require.Contains(t, src, "var "+sym+" ")
	}
	require.Contains(t, src, `References: []string{"RFC6335"}`)

	// The emitted source must be valid Go.
	_, err = format.Source(buf.Bytes())
	require.NoError(t, err)
}
