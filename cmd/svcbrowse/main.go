// svcbrowse is an interactive terminal browser over a services(5) registry
// file: incremental search by service name or port, protocol filters, and a
// detail page per record.  When watching is enabled the dataset reloads
// automatically whenever the file changes on disk.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/espenotterstad/svcdb/internal/browser"
	"github.com/espenotterstad/svcdb/internal/watcher"
)

func main() {
	path := flag.String("file", defaultPath(), "path to the services file")
	watch := flag.Bool("watch", true, "reload automatically when the file changes")
	flag.Parse()

	m := browser.New(*path)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if *watch {
		w, err := watcher.New(*path, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "svcbrowse: %v\n", err)
			os.Exit(1)
		}
		defer w.Stop()

		changes, err := w.Start()
		if err != nil {
			// A missing directory is not fatal; browsing still works, just
			// without live reload.  Send must not run before p.Run is
			// receiving, hence the goroutine.
			go p.Send(browser.WatchErrMsg{Err: err})
		} else {
			go func() {
				for range changes {
					p.Send(browser.ReloadMsg{})
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "svcbrowse: %v\n", err)
		os.Exit(1)
	}
}

// defaultPath mirrors the library's runtime backend: the environment
// variable wins, then the system file.
func defaultPath() string {
	if p := os.Getenv("SVCDB_SERVICES_FILE"); p != "" {
		return p
	}
	return "/etc/services"
}
