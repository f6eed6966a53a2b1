// Package tui is the interactive schema shell behind `gysql ui`.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(cfg Config) error {
	m := NewModel(cfg)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if fm, ok := final.(Model); ok && fm.watcher != nil {
		fm.watcher.Close()
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
