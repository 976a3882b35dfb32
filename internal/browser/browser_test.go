package browser

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/espenotterstad/svcdb/internal/svc"
)

var testRecords = []svc.Record{
	{Name: "ftp", Port: 21, Protocol: svc.TCP},
	{Name: "ssh", Port: 22, Protocol: svc.TCP, Description: "SSH Remote Login Protocol"},
	{Name: "domain", Port: 53, Protocol: svc.TCP},
	{Name: "domain", Port: 53, Protocol: svc.UDP},
	{Name: "http", Port: 80, Protocol: svc.TCP},
	{Name: "www", Port: 80, Protocol: svc.TCP},
}

func modelWithDataset(t *testing.T) Model {
	t.Helper()
	m := New("testdata/services")
	next, _ := m.Update(datasetMsg{recs: testRecords})
	return next.(Model)
}

func TestDatasetLoads(t *testing.T) {
	m := modelWithDataset(t)
	require.Len(t, m.filtered, len(testRecords))
	require.NoError(t, m.loadErr)
}

func TestFilterByName(t *testing.T) {
	m := modelWithDataset(t)
	m.searchInput.SetValue("dom")
	m.applyFilters()
	require.Len(t, m.filtered, 2)
	for _, r := range m.filtered {
		require.Equal(t, "domain", r.Name)
	}
}

func TestFilterByPort(t *testing.T) {
	m := modelWithDataset(t)
	m.searchInput.SetValue("80")
	m.applyFilters()
	require.Len(t, m.filtered, 2)
	require.ElementsMatch(t, []string{"http", "www"},
		[]string{m.filtered[0].Name, m.filtered[1].Name})
}

func TestProtocolToggle(t *testing.T) {
	m := modelWithDataset(t)

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	m = next.(Model)
	require.Len(t, m.filtered, 1)
	require.Equal(t, svc.UDP, m.filtered[0].Protocol)

	// Toggling the same key clears the filter.
	next, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	m = next.(Model)
	require.Len(t, m.filtered, len(testRecords))
}

func TestCursorClampsOnFilter(t *testing.T) {
	m := modelWithDataset(t)
	m.cursor = len(testRecords) - 1
	m.searchInput.SetValue("ssh")
	m.applyFilters()
	require.Equal(t, 0, m.cursor)
	require.Len(t, m.filtered, 1)
}

func TestReloadRequestsLoad(t *testing.T) {
	m := modelWithDataset(t)
	_, cmd := m.Update(ReloadMsg{})
	require.NotNil(t, cmd)
}

func TestViewRenders(t *testing.T) {
	m := modelWithDataset(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	out := m.View()
	require.Contains(t, out, "ssh")
	require.Contains(t, out, "6/6 records")

	// Detail page shows the selected record only.
	next, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.True(t, m.showDetail)
	require.Contains(t, m.View(), "Record Detail")
}
