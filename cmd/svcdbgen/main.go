// svcdbgen generates the perfect-hash registry tables compiled into
// embedded builds of svcdb.  It consumes the IANA service-names CSV (fetched
// over HTTP or read from a local copy), builds the snapshot, verifies every
// key resolves, and writes the tables as gofmt-ed Go source guarded by the
// embed build tag.
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/espenotterstad/svcdb/internal/iana"
	"github.com/espenotterstad/svcdb/internal/snapshot"
)

var (
	src  string
	out  string
	full bool
)

var rootCmd = &cobra.Command{
	Use:   "svcdbgen",
	Short: "Generate the embedded service registry tables",
	Long: `svcdbgen builds the minimal perfect-hash tables used by embedded
builds of svcdb.  The dataset is the IANA Service Name and Transport
Protocol Port Number Registry CSV; pass --src to read a local copy instead
of fetching it.  --full keeps the extended metadata columns (description,
assignee, contact, dates, references, notes) at the cost of a larger
artifact.`,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&src, "src", iana.CSVURL, "registry CSV: URL or local file path")
	rootCmd.Flags().StringVar(&out, "out", "zz_generated_embed.go", "output Go source file")
	rootCmd.Flags().BoolVar(&full, "full", false, "include extended metadata in the generated records")
}

func run(cmd *cobra.Command, args []string) error {
	r, err := openSource(src)
	if err != nil {
		return err
	}
	defer r.Close()

	recs, err := iana.Decode(r, iana.Options{Full: full})
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}
	if len(recs) == 0 {
		return fmt.Errorf("no records decoded from %s", src)
	}

	tables, err := snapshot.Build(recs)
	if err != nil {
		return err
	}
	if err := tables.Verify(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := snapshot.WriteGo(&buf, tables, snapshot.GenInfo{Source: src, Full: full}); err != nil {
		return err
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format generated source: %w", err)
	}
	if err := os.WriteFile(out, formatted, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "svcdbgen: wrote %s (%d records, %d ports, %d names)\n",
		out, len(tables.Records), len(tables.PortRanges), len(tables.NameIdx))
	return nil
}

// openSource opens the dataset: an HTTP(S) URL or a local file path.
func openSource(src string) (io.ReadCloser, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		client := &http.Client{Timeout: 60 * time.Second}
		resp, err := client.Get(src)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", src, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
		}
		return resp.Body, nil
	}
	return os.Open(src)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
