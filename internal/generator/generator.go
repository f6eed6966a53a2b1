package generator

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/satyammistari/gysql/internal/schema"
)

// ErrNothingSelected is returned by Generate when no table was passed in.
// Callers should prompt for a selection; no module text is produced.
var ErrNothingSelected = errors.New("no tables selected")

// Connection holds the parameters baked into the generated ConnConfig.
type Connection struct {
	Host     string
	Port     int
	User     string
	Password string
}

// Config holds generator options.
type Config struct {
	Package          string
	FallbackDatabase string
	Connection       Connection
}

// DefaultConfig returns config with defaults.
func DefaultConfig() Config {
	return Config{
		Package:          "dal",
		FallbackDatabase: "mi_base_de_datos",
		Connection: Connection{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
		},
	}
}

// Generator turns selected tables into a pgx data-access module.
type Generator struct {
	cfg Config
}

// New returns a Generator with the given config. Empty fields take their defaults.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.Package == "" {
		cfg.Package = def.Package
	}
	if cfg.FallbackDatabase == "" {
		cfg.FallbackDatabase = def.FallbackDatabase
	}
	if cfg.Connection.Host == "" {
		cfg.Connection.Host = def.Connection.Host
	}
	if cfg.Connection.Port == 0 {
		cfg.Connection.Port = def.Connection.Port
	}
	if cfg.Connection.User == "" {
		cfg.Connection.User = def.Connection.User
	}
	return &Generator{cfg: cfg}
}

// Result is a rendered module plus the metadata shown to the user.
type Result struct {
	Code      string
	Database  string
	Tables    []string
	Functions []string
}

// Generate builds the module for tables, in the given order. An empty
// database name falls back to Config.FallbackDatabase.
func (g *Generator) Generate(tables []schema.Table, database string) (*Result, error) {
	if len(tables) == 0 {
		return nil, ErrNothingSelected
	}
	if database == "" {
		database = g.cfg.FallbackDatabase
	}

	m := newModule(g.cfg.Package)
	m.Preamble = preamble(g.cfg.Connection, database)

	names := newNameSet()
	var specs []*tableSpec
	for _, t := range tables {
		spec := newTableSpec(t, names)
		m.Sections = append(m.Sections, spec.section())
		if spec.hasFunctions() {
			specs = append(specs, spec)
		}
	}
	m.Driver = driver(specs)
	m.Footer = footer(database, m.Sections)

	var buf bytes.Buffer
	if err := m.Render(&buf); err != nil {
		return nil, fmt.Errorf("render module: %w", err)
	}
	return &Result{
		Code:      buf.String(),
		Database:  database,
		Tables:    schema.Names(tables),
		Functions: m.Functions(),
	}, nil
}
