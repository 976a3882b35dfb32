package iana

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/espenotterstad/svcdb/internal/svc"
)

const sampleCSV = `Service Name,Port Number,Transport Protocol,Description,Assignee,Contact,Registration Date,Modification Date,Reference,Service Code,Unauthorized Use Reported,Assignment Notes
ssh,22,tcp,The Secure Shell (SSH) Protocol,[IESG],[IETF_Chair],,2017-03-22,[RFC4251],,,Defined TXT keys: u=<username> p=<password>
http,80,tcp,World Wide Web HTTP,[IESG],[IETF_Chair],,2017-03-22,[RFC7230][RFC9110],,,
,137,udp,NETBIOS Name Service,,,,,,,,
blackjack,1025,tcp,network blackjack,[IANA],[IANA],,,,,,
aesop,8202-8203,tcp,AeroSystems Operations,[Example_Org],[Example_Org],2011-05-03,,,,,
reserved,,tcp,Reserved,,,,,,,,
mangled,not-a-port,tcp,,,,,,,,,
short,443
`

func TestDecodeReduced(t *testing.T) {
	recs, err := Decode(strings.NewReader(sampleCSV), Options{})
	require.NoError(t, err)

	// ssh, http, blackjack, plus two ports of the aesop range; the
	// nameless, portless, and mangled rows are skipped.
	require.Len(t, recs, 5)

	require.Equal(t, svc.Record{Name: "ssh", Port: 22, Protocol: svc.TCP}, recs[0])
	require.Equal(t, svc.Record{Name: "http", Port: 80, Protocol: svc.TCP}, recs[1])
	require.Equal(t, 8202, recs[3].Port)
	require.Equal(t, 8203, recs[4].Port)
	require.Equal(t, "aesop", recs[4].Name)
}

func TestDecodeFull(t *testing.T) {
	recs, err := Decode(strings.NewReader(sampleCSV), Options{Full: true})
	require.NoError(t, err)
	require.Len(t, recs, 5)

	ssh := recs[0]
	require.Equal(t, "The Secure Shell (SSH) Protocol", ssh.Description)
	require.Equal(t, "[IESG]", ssh.Assignee)
	require.Equal(t, "[IETF_Chair]", ssh.Contact)
	require.Equal(t, "2017-03-22", ssh.ModificationDate)
	require.Equal(t, []string{"RFC4251"}, ssh.References)
	require.Equal(t, "Defined TXT keys: u=<username> p=<password>", ssh.Notes)

	require.Equal(t, []string{"RFC7230", "RFC9110"}, recs[1].References)

	// Range rows carry their metadata onto every expanded port.
	require.Equal(t, "AeroSystems Operations", recs[3].Description)
	require.Equal(t, "AeroSystems Operations", recs[4].Description)
}

func TestDecodeEmpty(t *testing.T) {
	recs, err := Decode(strings.NewReader(""), Options{})
	require.NoError(t, err)
	require.Nil(t, recs)
}

func TestParsePortRange(t *testing.T) {
	tests := []struct {
		in     string
		lo, hi int
		ok     bool
	}{
		{"80", 80, 80, true},
		{"0", 0, 0, true},
		{"65535", 65535, 65535, true},
		{"8202-8203", 8202, 8203, true},
		{"65536", 0, 0, false},
		{"8203-8202", 0, 0, false},
		{"0-65535", 0, 0, false},
		{"x", 0, 0, false},
		{"-80", 0, 0, false},
	}
	for _, tc := range tests {
		lo, hi, ok := parsePortRange(tc.in)
		require.Equal(t, tc.ok, ok, "parsePortRange(%q)", tc.in)
		if tc.ok {
			require.Equal(t, tc.lo, lo, "parsePortRange(%q) lo", tc.in)
			require.Equal(t, tc.hi, hi, "parsePortRange(%q) hi", tc.in)
		}
	}
}
