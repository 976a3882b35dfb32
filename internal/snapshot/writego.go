package snapshot

import (
	"fmt"
	"io"
)

// GenInfo describes the provenance recorded in the generated file header.
type GenInfo struct {
	Source string // URL or path the dataset came from
	Full   bool   // whether extended metadata is included
}

// WriteGo emits the tables as a Go source file for the root svcdb package,
// guarded by the embed build tag.  The output is plain unformatted source;
// the generator runs it through go/format before writing it to disk.
func WriteGo(w io.Writer, t *Tables, info GenInfo) error {
	dataset := "reduced"
	if info.Full {
		dataset = "full"
	}
	p := &printer{w: w}

	p.printf("// Code generated by svcdbgen. DO NOT EDIT.\n")
	p.printf("// Source: %s (%s dataset, %d records)\n\n", info.Source, dataset, len(t.Records))
	p.printf("//go:build embed\n\n")
	p.printf("package svcdb\n\n")
	p.printf("import \"github.com/espenotterstad/svcdb/internal/phf\"\n\n")

	p.printf("var embeddedRecords = []Record{\n")
	for _, r := range t.Records {
		p.printf("\t{Name: %q, Port: %d, Protocol: %q", r.Name, r.Port, r.Protocol)
		if r.Description != "" {
			p.printf(", Description: %q", r.Description)
		}
		if r.Assignee != "" {
			p.printf(", Assignee: %q", r.Assignee)
		}
		if r.Contact != "" {
			p.printf(", Contact: %q", r.Contact)
		}
		if r.RegistrationDate != "" {
			p.printf(", RegistrationDate: %q", r.RegistrationDate)
		}
		if r.ModificationDate != "" {
			p.printf(", ModificationDate: %q", r.ModificationDate)
		}
		if len(r.References) > 0 {
			p.printf(", References: []string{")
			for i, ref := range r.References {
				if i > 0 {
					p.printf(", ")
				}
				p.printf("%q", ref)
			}
			p.printf("}")
		}
		if r.Notes != "" {
			p.printf(", Notes: %q", r.Notes)
		}
		p.printf("},\n")
	}
	p.printf("}\n\n")

	writeTable(p, "embeddedByPort", t.ByPort.Seeds, t.ByPort.N)
	p.printf("var embeddedPortRanges = [][2]uint32{\n")
	for _, rng := range t.PortRanges {
		p.printf("\t{%d, %d},\n", rng[0], rng[1])
	}
	p.printf("}\n\n")

	writeTable(p, "embeddedByName", t.ByName.Seeds, t.ByName.N)
	p.printf("var embeddedNameIdx = [][]uint32{\n")
	for _, idx := range t.NameIdx {
		p.printf("\t{")
		for i, j := range idx {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%d", j)
		}
		p.printf("},\n")
	}
	p.printf("}\n")

	return p.err
}

func writeTable(p *printer, name string, seeds []int32, n uint32) {
	p.printf("var %s = phf.Table{\n\tSeeds: []int32{", name)
	for i, s := range seeds {
		if i > 0 {
			p.printf(", ")
		}
		p.printf("%d", s)
	}
	p.printf("},\n\tN: %d,\n}\n\n", n)
}

// printer tracks the first write error so the emit code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
