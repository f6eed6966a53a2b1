package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyammistari/gysql/internal/generator"
	"github.com/satyammistari/gysql/internal/schema"
	"github.com/satyammistari/gysql/internal/watch"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := NewModel(Config{Generator: generator.DefaultConfig()})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return send(t, m, schemaLoadedMsg{
		path: "schema.sql",
		tables: []schema.Table{
			{Name: "usuarios", Columns: []string{"id", "nombre"}},
			{Name: "pedidos", Columns: []string{"id", "usuario_id", "total"}},
		},
		database: "tienda",
	})
}

func TestModel_LoadResetsSelection(t *testing.T) {
	m := loaded(t)
	assert.Equal(t, 2, m.Registry.Len())
	assert.Equal(t, 0, m.Registry.SelectedCount())
	assert.Equal(t, "tienda", m.Database())
	assert.Equal(t, "success", m.StatusKind)

	m = send(t, m, runes("a"))
	assert.Equal(t, 2, m.Registry.SelectedCount())

	m = send(t, m, schemaLoadedMsg{path: "schema.sql", tables: []schema.Table{{Name: "otra", Columns: []string{"id"}}}, reload: true})
	assert.Equal(t, 0, m.Registry.SelectedCount())
	assert.Contains(t, m.StatusMsg, "Reloaded")
}

func TestModel_ToggleWithCursor(t *testing.T) {
	m := loaded(t)
	m = send(t, m, runes("j"))
	assert.Equal(t, 1, m.Cursor)
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	selected := m.Registry.SelectedTables()
	require.Len(t, selected, 1)
	assert.Equal(t, "pedidos", selected[0].Name)

	m = send(t, m, runes("j"))
	assert.Equal(t, 1, m.Cursor, "cursor stays on the last table")
}

func TestModel_GenerateNothingSelected(t *testing.T) {
	m := loaded(t)
	m = send(t, m, runes("g"))
	assert.False(t, m.IsRunning)
	assert.Equal(t, "warning", m.StatusKind)
}

func TestModel_StagedGeneration(t *testing.T) {
	m := loaded(t)
	m = send(t, m, runes("a"))
	m = send(t, m, runes("g"))
	require.True(t, m.IsRunning)
	assert.Equal(t, 0, m.Stage)

	for stage := 1; stage < len(stages); stage++ {
		m = send(t, m, stageMsg{stage: stage})
		assert.Equal(t, stage, m.Stage)
	}

	msg := runGenerate(m.Config.Generator, m.Registry.SelectedTables(), m.Database(), m.StartTime)()
	m = send(t, m, msg)
	assert.False(t, m.IsRunning)
	assert.Equal(t, TabOutput, m.ActiveTab)
	assert.Contains(t, m.Code, `Database: "tienda"`)
	assert.Contains(t, m.Code, "func ListPedidos(")
	require.Len(t, m.History, 1)
	assert.True(t, m.History[0].Success)
	assert.Equal(t, 2, m.History[0].Tables)
	assert.Equal(t, 10, m.History[0].Functions)
}

func TestModel_GenerateErrorRecorded(t *testing.T) {
	m := loaded(t)
	m.IsRunning = true
	m = send(t, m, generatedMsg{err: generator.ErrNothingSelected, duration: time.Millisecond})
	assert.False(t, m.IsRunning)
	assert.Equal(t, "error", m.StatusKind)
	require.Len(t, m.History, 1)
	assert.False(t, m.History[0].Success)
}

func TestModel_DatabaseOverride(t *testing.T) {
	m := loaded(t)
	m = send(t, m, runes("d"))
	require.True(t, m.Fields[fieldDatabase].Focused())
	m = send(t, m, runes("x"))
	assert.Equal(t, "x", m.Database())

	// q types into the field instead of quitting.
	m = send(t, m, runes("q"))
	assert.Equal(t, "xq", m.Database())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.anyFieldFocused())
}

func TestModel_TabSwitching(t *testing.T) {
	m := loaded(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabOutput, m.ActiveTab)
	m = send(t, m, runes("4"))
	assert.Equal(t, TabHelp, m.ActiveTab)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabHistory, m.ActiveTab)
	assert.NotEmpty(t, m.View())
}

// drain runs cmd and any batch it expands to, returning the messages produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, drain(c)...)
	}
	return out
}

func TestModel_FailedWatchReloadKeepsWatching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE a (id INT);"), 0o644))
	w, err := watch.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	m := NewModel(Config{Generator: generator.DefaultConfig()})
	m = send(t, m, schemaLoadedMsg{path: path, tables: schema.Parse("CREATE TABLE a (id INT);"), watcher: w})
	require.Same(t, w, m.watcher)

	require.NoError(t, os.Remove(path))
	next, cmd := m.Update(fileChangedMsg{watcher: w})
	m = next.(Model)

	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	failed, ok := msgs[0].(errMsg)
	require.True(t, ok, "got %T", msgs[0])
	assert.Same(t, w, failed.watcher)

	next, cmd = m.Update(failed)
	m = next.(Model)
	assert.Equal(t, "error", m.StatusKind)
	require.NotNil(t, cmd, "the watcher must be re-armed")

	got := make(chan []tea.Msg, 1)
	go func() { got <- drain(cmd) }()
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE b (id INT);"), 0o644))

	select {
	case msgs := <-got:
		require.NotEmpty(t, msgs)
		changed, ok := msgs[0].(fileChangedMsg)
		require.True(t, ok, "got %T", msgs[0])
		assert.NoError(t, changed.err)
		assert.Same(t, w, changed.watcher)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported after a failed reload")
	}
}

func TestModel_ErrorWithoutWatcherDoesNotWait(t *testing.T) {
	m := loaded(t)
	_, cmd := m.Update(errMsg{err: os.ErrNotExist})
	assert.Empty(t, drain(cmd))
}
