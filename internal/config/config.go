// Package config loads gysql.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v3"

	"github.com/satyammistari/gysql/internal/generator"
	"github.com/satyammistari/gysql/internal/schema"
)

// DefaultPath is read when no --config flag is given. A missing file there is not an error.
const DefaultPath = "gysql.yaml"

// Config is the on-disk configuration.
type Config struct {
	Package    string         `yaml:"package"`
	Database   DatabaseConfig `yaml:"database"`
	Parser     ParserConfig   `yaml:"parser"`
	StageDelay time.Duration  `yaml:"stage_delay"`
}

// DatabaseConfig holds the connection parameters written into generated modules.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Fallback string `yaml:"fallback_name"`
}

// ParserConfig selects the DDL parser mode: "legacy" or "bracket".
type ParserConfig struct {
	Mode string `yaml:"mode"`
}

// Default returns the built-in configuration.
func Default() Config {
	g := generator.DefaultConfig()
	return Config{
		Package: g.Package,
		Database: DatabaseConfig{
			Host:     g.Connection.Host,
			Port:     g.Connection.Port,
			User:     g.Connection.User,
			Password: g.Connection.Password,
			Fallback: g.FallbackDatabase,
		},
		Parser:     ParserConfig{Mode: schema.ModeLegacy.String()},
		StageDelay: 600 * time.Millisecond,
	}
}

// Environment variables that override the file, typically set through .env.
const (
	EnvHost     = "GYSQL_DB_HOST"
	EnvPort     = "GYSQL_DB_PORT"
	EnvUser     = "GYSQL_DB_USER"
	EnvPassword = "GYSQL_DB_PASSWORD"
)

// Load reads path over the defaults, then applies the GYSQL_DB_* environment
// variables. When path is DefaultPath and the file does not exist, only the
// environment is applied.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
	default:
		return cfg, fmt.Errorf("config file: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvHost); ok {
		c.Database.Host = v
	}
	if v, ok := os.LookupEnv(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Database.Port = port
	}
	if v, ok := os.LookupEnv(EnvUser); ok {
		c.Database.User = v
	}
	if v, ok := os.LookupEnv(EnvPassword); ok {
		c.Database.Password = v
	}
	return nil
}

// Validate checks the parser mode and that the connection parameters form a
// DSN pgx accepts.
func (c Config) Validate() error {
	if _, ok := schema.ParseMode(c.Parser.Mode); !ok {
		return fmt.Errorf("parser.mode %q: want legacy or bracket", c.Parser.Mode)
	}
	if c.StageDelay < 0 {
		return fmt.Errorf("stage_delay must not be negative")
	}
	pc, err := pgx.ParseConfig(c.Database.DSN(c.Database.Fallback))
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if pc.Port == 0 {
		return fmt.Errorf("database.port must be set")
	}
	return nil
}

// DSN renders the connection parameters as a keyword/value connection string,
// quoted the same way as the generated module's connString.
func (d DatabaseConfig) DSN(dbname string) string {
	return d.connection().ConnString(dbname)
}

func (d DatabaseConfig) connection() generator.Connection {
	return generator.Connection{
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
	}
}

// ParserMode returns the configured schema.Mode.
func (c Config) ParserMode() schema.Mode {
	m, _ := schema.ParseMode(c.Parser.Mode)
	return m
}

// Generator converts the configuration into generator options.
func (c Config) Generator() generator.Config {
	return generator.Config{
		Package:          c.Package,
		FallbackDatabase: c.Database.Fallback,
		Connection:       c.Database.connection(),
	}
}
