package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/satyammistari/gysql/internal/generator"
	"github.com/satyammistari/gysql/internal/schema"
	"github.com/satyammistari/gysql/internal/watch"
)

type schemaLoadedMsg struct {
	path     string
	tables   []schema.Table
	database string
	watcher  *watch.Watcher
	reload   bool

	// fromWatch is set when the load was triggered by the watcher itself,
	// whose pending wait has already returned.
	fromWatch bool
}

type stageMsg struct{ stage int }

type generatedMsg struct {
	res      *generator.Result
	err      error
	duration time.Duration
}

type fileChangedMsg struct {
	watcher *watch.Watcher
	err     error
}

type errMsg struct {
	err error

	// watcher is set when a watcher-triggered reload failed and the watcher
	// has to be re-armed.
	watcher *watch.Watcher
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.Config.SchemaPath != "" {
		cmds = append(cmds, loadSchema(m.Config.SchemaPath, m.Config.Mode, nil, false))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Output.Width = max(msg.Width-8, 20)
		m.Output.Height = max(msg.Height-12, 5)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if !m.anyFieldFocused() && msg.String() == "q" {
			return m.quit()
		}
		switch m.ActiveTab {
		case TabTables:
			return m.handleTablesKey(msg)
		case TabOutput:
			return m.handleOutputKey(msg)
		case TabHistory:
			return m.handleHistoryKey(msg)
		case TabHelp:
			return m.handleHelpKey(msg)
		}

	case spinner.TickMsg:
		if m.IsRunning {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case schemaLoadedMsg:
		wait := msg.watcher != nil && (msg.watcher != m.watcher || msg.fromWatch)
		if m.watcher != nil && m.watcher != msg.watcher {
			m.watcher.Close()
		}
		m.watcher = msg.watcher
		m.LoadedPath = msg.path
		m.DeclaredDB = msg.database
		m.Registry.Replace(msg.tables)
		if m.Cursor >= len(msg.tables) {
			m.Cursor = 0
		}
		verb := "Loaded"
		if msg.reload {
			verb = "Reloaded"
		}
		m.StatusMsg = fmt.Sprintf("%s %s → %d tables, selection cleared", verb, filepath.Base(msg.path), len(msg.tables))
		m.StatusKind = "success"
		if len(msg.tables) == 0 {
			m.StatusMsg = fmt.Sprintf("%s %s → no CREATE TABLE statements found", verb, filepath.Base(msg.path))
			m.StatusKind = "warning"
		}
		if wait {
			cmds = append(cmds, waitForChange(m.watcher))
		}

	case fileChangedMsg:
		if msg.watcher != m.watcher {
			return m, nil
		}
		if msg.err != nil {
			m.StatusMsg = fmt.Sprintf("✗ %v", msg.err)
			m.StatusKind = "error"
			return m, nil
		}
		w := m.watcher
		load := loadSchema(m.LoadedPath, m.Config.Mode, w, true)
		cmds = append(cmds, func() tea.Msg {
			switch out := load().(type) {
			case schemaLoadedMsg:
				out.fromWatch = true
				return out
			case errMsg:
				out.watcher = w
				return out
			default:
				return out
			}
		})

	case stageMsg:
		if !m.IsRunning {
			return m, nil
		}
		m.Stage = msg.stage
		if m.Stage < len(stages)-1 {
			cmds = append(cmds, tickStage(m.Stage, m.Config.StageDelay))
		} else {
			cmds = append(cmds, runGenerate(m.Config.Generator, m.Registry.SelectedTables(), m.Database(), m.StartTime))
		}

	case generatedMsg:
		m.IsRunning = false
		entry := HistoryEntry{
			Timestamp:  time.Now(),
			SchemaFile: m.LoadedPath,
			Duration:   msg.duration,
		}
		if msg.err != nil {
			m.StatusMsg = fmt.Sprintf("✗ %v", msg.err)
			m.StatusKind = "error"
			entry.ErrMsg = msg.err.Error()
		} else {
			m.Code = msg.res.Code
			m.Output.SetContent(msg.res.Code)
			m.Output.GotoTop()
			m.ActiveTab = TabOutput
			m.StatusMsg = fmt.Sprintf("✓ Generated %d functions for %d tables → database %s",
				len(msg.res.Functions), len(msg.res.Tables), msg.res.Database)
			m.StatusKind = "success"
			entry.Success = true
			entry.Database = msg.res.Database
			entry.Tables = len(msg.res.Tables)
			entry.Functions = len(msg.res.Functions)
		}
		m.History = append([]HistoryEntry{entry}, m.History...)

	case errMsg:
		m.StatusMsg = fmt.Sprintf("✗ %v", msg.err)
		m.StatusKind = "error"
		if msg.watcher != nil && msg.watcher == m.watcher {
			cmds = append(cmds, waitForChange(m.watcher))
		}
	}

	if m.anyFieldFocused() {
		var cmd tea.Cmd
		m.Fields[m.FocusedField], cmd = m.Fields[m.FocusedField].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	return m, tea.Quit
}

// switchTab handles the keys shared by every tab. It reports whether key was consumed.
func (m Model) switchTab(key string) (Model, bool) {
	switch key {
	case "tab":
		m.ActiveTab = (m.ActiveTab + 1) % tabCount
	case "shift+tab":
		m.ActiveTab = (m.ActiveTab + tabCount - 1) % tabCount
	case "1":
		m.ActiveTab = TabTables
	case "2":
		m.ActiveTab = TabOutput
	case "3":
		m.ActiveTab = TabHistory
	case "4":
		m.ActiveTab = TabHelp
	default:
		return m, false
	}
	return m.blurAllFields(), true
}

func (m Model) handleTablesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.anyFieldFocused() {
		switch msg.String() {
		case "esc":
			return m.blurAllFields(), nil
		case "tab":
			m.Fields[m.FocusedField].Blur()
			m.FocusedField = (m.FocusedField + 1) % len(m.Fields)
			m.Fields[m.FocusedField].Focus()
			return m, textinput.Blink
		case "enter":
			m = m.blurAllFields()
			if m.FocusedField == fieldSchema {
				m.StatusMsg = "Loading " + m.SchemaPath() + "..."
				m.StatusKind = "info"
				return m, loadSchema(m.SchemaPath(), m.Config.Mode, nil, false)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.Fields[m.FocusedField], cmd = m.Fields[m.FocusedField].Update(msg)
		return m, cmd
	}

	if next, ok := m.switchTab(msg.String()); ok {
		return next, nil
	}

	tables := m.Registry.Tables()
	switch msg.String() {
	case "/":
		m.FocusedField = fieldSchema
		m.Fields[fieldSchema].Focus()
		return m, textinput.Blink
	case "d":
		m.FocusedField = fieldDatabase
		m.Fields[fieldDatabase].Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(tables)-1 {
			m.Cursor++
		}
	case " ", "space":
		if m.Cursor < len(tables) {
			m.Registry.ToggleSelection(tables[m.Cursor].Name)
		}
	case "a":
		m.Registry.ToggleAll()
	case "r":
		if m.LoadedPath != "" {
			return m, loadSchema(m.LoadedPath, m.Config.Mode, m.watcher, true)
		}
	case "g", "enter":
		return m.startGenerate()
	}
	return m, nil
}

func (m Model) handleOutputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, ok := m.switchTab(msg.String()); ok {
		return next, nil
	}
	var cmd tea.Cmd
	m.Output, cmd = m.Output.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, ok := m.switchTab(msg.String()); ok {
		return next, nil
	}
	switch msg.String() {
	case "down", "j":
		if m.HistoryScroll < len(m.History)-1 {
			m.HistoryScroll++
		}
	case "up", "k":
		if m.HistoryScroll > 0 {
			m.HistoryScroll--
		}
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, _ := m.switchTab(msg.String())
	return next, nil
}

func (m Model) startGenerate() (Model, tea.Cmd) {
	if m.IsRunning {
		return m, nil
	}
	if m.Registry.SelectedCount() == 0 {
		m.StatusMsg = "Nothing selected → press space to select a table or a for all"
		m.StatusKind = "warning"
		return m, nil
	}
	m.IsRunning = true
	m.Stage = 0
	m.StartTime = time.Now()
	m.StatusMsg = "Generating..."
	m.StatusKind = "info"
	return m, tea.Batch(m.Spinner.Tick, tickStage(0, m.Config.StageDelay))
}

func tickStage(current int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return stageMsg{stage: current + 1}
	})
}

func runGenerate(cfg generator.Config, tables []schema.Table, database string, start time.Time) tea.Cmd {
	return func() tea.Msg {
		res, err := generator.New(cfg).Generate(tables, database)
		return generatedMsg{res: res, err: err, duration: time.Since(start)}
	}
}

// loadSchema reads and parses path. A nil watcher starts a new one on path.
func loadSchema(path string, mode schema.Mode, w *watch.Watcher, reload bool) tea.Cmd {
	return func() tea.Msg {
		content, err := os.ReadFile(path)
		if err != nil {
			return errMsg{err: fmt.Errorf("read schema file: %w", err)}
		}
		sql := string(content)
		db, _ := schema.DatabaseName(sql)
		if w == nil {
			// Without a watcher the shell still works, it just won't reload.
			w, _ = watch.New(path)
		}
		return schemaLoadedMsg{
			path:     path,
			tables:   schema.Parse(sql, schema.WithMode(mode)),
			database: db,
			watcher:  w,
			reload:   reload,
		}
	}
}

func waitForChange(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		return fileChangedMsg{watcher: w, err: w.Next(context.Background())}
	}
}
