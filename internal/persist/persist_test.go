package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

func seededStore() *store.Store {
	s := store.New()
	s.SetRow("habits", "h1", store.Row{
		"id": "h1", "title": "Daily walk", "color": "#3c7c5a",
		"order": 0, "createdAt": "2023-01-02T08:00:00Z", "weeklyTarget": 7,
	})
	s.SetRow("habitGroups", "g1", store.Row{
		"id": "g1", "title": "Health", "order": 0, "createdAt": "2023-01-02T08:00:00Z",
	})
	s.SetRow("checks", "h1:2023-01-02", store.Row{
		"habitId": "h1", "date": "2023-01-02", "completed": true,
		"updatedAt": "2023-01-02T09:00:00Z",
	})
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beebloom.db")

	src := seededStore()
	p := NewSQLite(src, path)
	require.NoError(t, p.Init())
	require.NoError(t, p.Save())
	require.NoError(t, p.Close())

	dst := store.New()
	p2 := NewSQLite(dst, path)
	require.NoError(t, p2.Init())
	require.NoError(t, p2.Load())
	defer p2.Close()

	title, ok := dst.GetCell("habits", "h1", "title")
	require.True(t, ok)
	assert.Equal(t, "Daily walk", title)

	completed, ok := dst.GetCell("checks", "h1:2023-01-02", "completed")
	require.True(t, ok)
	assert.Equal(t, true, completed)

	// JSON round trip widens ints to float64
	order, ok := dst.GetCell("habits", "h1", "order")
	require.True(t, ok)
	assert.Equal(t, float64(0), order)
}

func TestSQLiteTwoHandlesSameFile(t *testing.T) {
	// App and widget each hold an independent handle on the same file.
	path := filepath.Join(t.TempDir(), "beebloom.db")

	app := seededStore()
	appP := NewSQLite(app, path)
	require.NoError(t, appP.Init())
	require.NoError(t, appP.Save())

	widget := store.New()
	widgetP := NewSQLite(widget, path)
	require.NoError(t, widgetP.Init())
	require.NoError(t, widgetP.Load())

	// Widget writes a completion and saves; the app does not see it until it
	// reloads. Stale reads are accepted, last writer wins.
	widget.SetRow("checks", "h1:2023-01-03", store.Row{
		"habitId": "h1", "date": "2023-01-03", "completed": true,
		"updatedAt": "2023-01-03T07:00:00Z",
	})
	require.NoError(t, widgetP.Save())

	assert.False(t, app.HasRow("checks", "h1:2023-01-03"))

	require.NoError(t, appP.Load())
	assert.True(t, app.HasRow("checks", "h1:2023-01-03"))

	require.NoError(t, appP.Close())
	require.NoError(t, widgetP.Close())
}

func TestSQLiteSaveOverwritesDeletedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beebloom.db")

	s := seededStore()
	p := NewSQLite(s, path)
	require.NoError(t, p.Init())
	require.NoError(t, p.Save())

	s.DelRow("checks", "h1:2023-01-02")
	require.NoError(t, p.Save())
	require.NoError(t, p.Close())

	dst := store.New()
	p2 := NewSQLite(dst, path)
	require.NoError(t, p2.Init())
	require.NoError(t, p2.Load())
	defer p2.Close()

	assert.False(t, dst.HasRow("checks", "h1:2023-01-02"), "snapshot save must drop deleted rows")
}

func TestSQLiteAutoSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beebloom.db")

	s := store.New()
	p := NewSQLite(s, path)
	require.NoError(t, p.Init())
	stop := p.StartAutoSave()

	s.Transaction(func() {
		s.SetCell("habits", "h1", "order", 0)
		s.SetCell("habits", "h2", "order", 10)
	})

	stop()
	require.NoError(t, p.Close())

	dst := store.New()
	p2 := NewSQLite(dst, path)
	require.NoError(t, p2.Init())
	require.NoError(t, p2.Load())
	defer p2.Close()

	assert.True(t, dst.HasRow("habits", "h1"))
	assert.True(t, dst.HasRow("habits", "h2"))
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beebloom.json")

	src := seededStore()
	p := NewJSON(src, path)
	require.NoError(t, p.Init())
	require.NoError(t, p.Save())

	dst := store.New()
	p2 := NewJSON(dst, path)
	require.NoError(t, p2.Load())

	title, ok := dst.GetCell("habits", "h1", "title")
	require.True(t, ok)
	assert.Equal(t, "Daily walk", title)
}

func TestJSONLoadMissingFile(t *testing.T) {
	s := store.New()
	s.SetRow("habits", "h1", store.Row{"title": "stale"})

	p := NewJSON(s, filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, p.Load())
	assert.Empty(t, s.GetTable("habits"), "missing file loads as empty content")
}

func TestExpandPath(t *testing.T) {
	assert.Equal(t, "/tmp/x.db", ExpandPath("/tmp/x.db"))
	expanded := ExpandPath("~/x.db")
	assert.NotContains(t, expanded, "~")
}
