package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/satyammistari/gysql/internal/generator"
	"github.com/satyammistari/gysql/internal/registry"
	"github.com/satyammistari/gysql/internal/schema"
	"github.com/satyammistari/gysql/internal/watch"
)

type Tab int

const (
	TabTables Tab = iota
	TabOutput
	TabHistory
	TabHelp
	tabCount
)

func (t Tab) String() string {
	return []string{
		" Tables ",
		" Output ",
		" History ",
		" Help ",
	}[t]
}

const (
	fieldSchema = iota
	fieldDatabase
)

// stages are shown one after another, StageDelay apart, before the module
// is rendered.
var stages = []string{
	"Reading selected tables",
	"Inferring keys and sample values",
	"Synthesizing functions",
	"Formatting module",
}

type HistoryEntry struct {
	Timestamp  time.Time
	SchemaFile string
	Database   string
	Tables     int
	Functions  int
	Duration   time.Duration
	Success    bool
	ErrMsg     string
}

// Config is what the shell needs from the command line.
type Config struct {
	SchemaPath string
	Database   string
	Mode       schema.Mode
	StageDelay time.Duration
	Generator  generator.Config
}

type Model struct {
	ActiveTab Tab
	Width     int
	Height    int
	Config    Config

	FocusedField int
	Fields       []textinput.Model

	Registry *registry.Registry
	Cursor   int
	// DeclaredDB is the CREATE DATABASE name of the loaded script, if any.
	DeclaredDB string
	LoadedPath string

	IsRunning bool
	Stage     int
	StartTime time.Time
	Spinner   spinner.Model

	Output viewport.Model
	Code   string

	History       []HistoryEntry
	HistoryScroll int

	StatusMsg  string
	StatusKind string

	watcher *watch.Watcher
}

func NewModel(cfg Config) Model {
	inputs := make([]textinput.Model, 2)

	inputs[fieldSchema] = textinput.New()
	inputs[fieldSchema].Placeholder = "schema.sql"
	inputs[fieldSchema].SetValue(cfg.SchemaPath)
	inputs[fieldSchema].Width = 45
	inputs[fieldSchema].Prompt = ""

	inputs[fieldDatabase] = textinput.New()
	inputs[fieldDatabase].Placeholder = "from CREATE DATABASE"
	inputs[fieldDatabase].SetValue(cfg.Database)
	inputs[fieldDatabase].Width = 30
	inputs[fieldDatabase].Prompt = ""

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		ActiveTab:  TabTables,
		Config:     cfg,
		Fields:     inputs,
		Registry:   registry.New(nil),
		Spinner:    s,
		Output:     viewport.New(80, 20),
		History:    []HistoryEntry{},
		StatusMsg:  "Ready → press / to edit the schema path, Enter to load",
		StatusKind: "info",
	}
}

func (m Model) SchemaPath() string {
	v := m.Fields[fieldSchema].Value()
	if v == "" {
		return m.Fields[fieldSchema].Placeholder
	}
	return v
}

// Database returns the database override typed by the user, falling back to
// the name declared in the loaded script. Empty means the generator fallback.
func (m Model) Database() string {
	if v := m.Fields[fieldDatabase].Value(); v != "" {
		return v
	}
	return m.DeclaredDB
}

func (m Model) ElapsedTime() string {
	if m.StartTime.IsZero() {
		return "0s"
	}
	return time.Since(m.StartTime).Round(100 * time.Millisecond).String()
}

func (m Model) anyFieldFocused() bool {
	for _, f := range m.Fields {
		if f.Focused() {
			return true
		}
	}
	return false
}

func (m Model) blurAllFields() Model {
	for i := range m.Fields {
		m.Fields[i].Blur()
	}
	return m
}
