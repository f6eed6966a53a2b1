package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}
	return strings.Join([]string{
		m.renderHeader(),
		m.renderContent(),
		m.renderStatusBar(),
		m.renderKeyBar(),
	}, "\n")
}

func (m Model) renderHeader() string {
	logo := titleStyle.Render(`
  ██████  ██    ██ ███████  ██████  ██
 ██        ██  ██  ██      ██    ██ ██
 ██   ███   ████   ███████ ██    ██ ██
 ██    ██    ██         ██ ██ ▄▄ ██ ██
  ██████     ██    ███████  ██████  ███████
                               ▀▀
        DDL → Go data-access module`)

	tabs := ""
	for i := Tab(0); i < tabCount; i++ {
		if i == m.ActiveTab {
			tabs += activeTabStyle.Render(i.String())
		} else {
			tabs += tabStyle.Render(i.String())
		}
	}
	nav := tabs
	if m.IsRunning {
		right := warningStyle.Render(m.Spinner.View() + " Generating...")
		gap := m.Width - lipgloss.Width(nav) - lipgloss.Width(right) - 10
		if gap < 0 {
			gap = 0
		}
		nav = nav + strings.Repeat(" ", gap) + right
	}
	return lipgloss.JoinVertical(lipgloss.Left, logo, "", panelStyle.Width(m.Width-4).Render(nav))
}

func (m Model) renderContent() string {
	switch m.ActiveTab {
	case TabTables:
		return m.renderTablesTab()
	case TabOutput:
		return m.renderOutputTab()
	case TabHistory:
		return m.renderHistoryTab()
	case TabHelp:
		return m.renderHelpTab()
	}
	return ""
}

func (m Model) renderTablesTab() string {
	cw := m.Width - 4
	lw := cw / 2
	rw := cw - lw - 3
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSourcePanel(lw), "  ", m.renderTableList(rw),
	)
}

func (m Model) renderSourcePanel(width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Source") + "\n\n")

	defs := []struct {
		label string
		idx   int
	}{
		{"Schema", fieldSchema}, {"Database", fieldDatabase},
	}
	for _, fd := range defs {
		lbl := labelStyle.Render(fd.label + ":")
		if m.Fields[fd.idx].Focused() {
			lbl = focusedLabel.Render(fd.label + ":")
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, lbl, m.Fields[fd.idx].View()) + "\n")
	}

	sb.WriteString("\n" + labelStyle.Render("Parser:") + valueStyle.Render(m.Config.Mode.String()) + "\n")
	db := m.Database()
	if db == "" {
		db = dimStyle.Render(m.Config.Generator.FallbackDatabase + " (fallback)")
	}
	sb.WriteString(labelStyle.Render("Target DB:") + valueStyle.Render(db) + "\n")
	watching := dimStyle.Render("off")
	if m.watcher != nil {
		watching = successStyle.Render("on")
	}
	sb.WriteString(labelStyle.Render("Watching:") + watching + "\n\n")

	if m.IsRunning {
		sb.WriteString(m.renderStages())
	} else {
		sb.WriteString(
			lipgloss.NewStyle().Foreground(colorBg).Background(colorCyan).Bold(true).Padding(0, 3).Render("  g to Generate  "),
		)
	}
	return activePanelStyle.Width(width).Render(sb.String())
}

func (m Model) renderStages() string {
	var sb strings.Builder
	for i, s := range stages {
		switch {
		case i < m.Stage:
			sb.WriteString(successStyle.Render("✓ ") + dimStyle.Render(s))
		case i == m.Stage:
			sb.WriteString(m.Spinner.View() + " " + highlightStyle.Render(s))
		default:
			sb.WriteString(dimStyle.Render("◦ " + s))
		}
		sb.WriteString("\n")
	}
	pct := float64(m.Stage) / float64(len(stages))
	sb.WriteString("\n" + RenderProgressBar(pct) + dimStyle.Render("  "+m.ElapsedTime()))
	return sb.String()
}

func (m Model) renderTableList(width int) string {
	var sb strings.Builder
	tables := m.Registry.Tables()
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Tables (%d/%d selected)", m.Registry.SelectedCount(), len(tables))) + "\n\n")

	if len(tables) == 0 {
		sb.WriteString(dimStyle.Render("No tables loaded.\nPress / to enter a schema path, then Enter."))
		return panelStyle.Width(width).Render(sb.String())
	}
	for i, t := range tables {
		box := "[ ]"
		if t.Selected {
			box = successStyle.Render("[x]")
		}
		name := fmt.Sprintf("%-18s", truncate(t.Name, 18))
		if i == m.Cursor {
			name = cursorStyle.Render(name)
		} else {
			name = valueStyle.Render(name)
		}
		cols := dimStyle.Render(truncate(strings.Join(t.Columns, ", "), max(width-30, 10)))
		sb.WriteString(box + " " + name + " " + cols + "\n")
	}
	return panelStyle.Width(width).Render(sb.String())
}

func (m Model) renderOutputTab() string {
	width := m.Width - 6
	if m.Code == "" {
		return panelStyle.Width(width).Render(
			titleStyle.Render("Generated Module") + "\n\n" +
				dimStyle.Render("Nothing generated yet.\nSelect tables on the Tables tab and press g."),
		)
	}
	footer := dimStyle.Render(fmt.Sprintf("↑↓ pgup pgdn scroll  •  %3.f%%", m.Output.ScrollPercent()*100))
	return panelStyle.Width(width).Render(
		titleStyle.Render("Generated Module") + "\n\n" + m.Output.View() + "\n" + footer,
	)
}

func (m Model) renderHistoryTab() string {
	var sb strings.Builder
	width := m.Width - 6
	sb.WriteString(titleStyle.Render("Generation History") + "\n\n")

	if len(m.History) == 0 {
		sb.WriteString(dimStyle.Render("No runs yet.\nHistory appears here after you generate a module."))
	} else {
		for i, h := range m.History {
			if i < m.HistoryScroll {
				continue
			}
			icon := successStyle.Render("✓")
			if !h.Success {
				icon = errorStyle.Render("✗")
			}
			ts := dimStyle.Render(h.Timestamp.Format("Jan 02 15:04:05"))
			file := valueStyle.Render(truncate(h.SchemaFile, 25))
			var stats string
			if h.Success {
				stats = successStyle.Render(fmt.Sprintf("%s  %d tables  %d funcs  %s",
					h.Database, h.Tables, h.Functions, h.Duration.Round(time.Millisecond)))
			} else {
				stats = errorStyle.Render(truncate(h.ErrMsg, 40))
			}
			sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, icon, "  ", ts, "  ", file, "  ", stats) + "\n")
		}
	}
	return panelStyle.Width(width).Render(sb.String())
}

func (m Model) renderHelpTab() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Keyboard Shortcuts") + "\n\n")

	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Navigation", [][2]string{
			{"Tab / Shift+Tab", "Switch tabs"},
			{"1 2 3 4", "Jump to tab"},
			{"q / Ctrl+C", "Quit"},
		}},
		{"Tables Tab", [][2]string{
			{"/", "Edit schema path (Enter loads)"},
			{"d", "Edit database override"},
			{"Esc", "Leave text field"},
			{"↑↓ / j k", "Move cursor"},
			{"Space", "Toggle table"},
			{"a", "Select all / clear all"},
			{"r", "Reload schema (clears selection)"},
			{"g / Enter", "Generate module"},
		}},
		{"Output Tab", [][2]string{
			{"↑↓ PgUp PgDn", "Scroll generated code"},
		}},
		{"Schema File", [][2]string{
			{"CREATE DATABASE x;", "Sets the target database"},
			{"saving the file", "Reloads tables automatically"},
		}},
	}

	for _, sec := range sections {
		sb.WriteString(lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Render("  "+sec.title) + "\n")
		for _, pair := range sec.keys {
			sb.WriteString("  " + keyStyle.Width(22).Render(pair[0]) + keyDescStyle.Render(pair[1]) + "\n")
		}
		sb.WriteString("\n")
	}
	return panelStyle.Width(m.Width - 6).Render(sb.String())
}

func (m Model) renderStatusBar() string {
	var style lipgloss.Style
	switch m.StatusKind {
	case "success":
		style = successStyle
	case "error":
		style = errorStyle
	case "warning":
		style = warningStyle
	default:
		style = dimStyle
	}
	return lipgloss.NewStyle().
		Width(m.Width-4).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(colorBorder).
		Render(style.Render("  " + m.StatusMsg))
}

func (m Model) renderKeyBar() string {
	keys := []string{
		RenderKeyBinding("Tab", "switch"),
		RenderKeyBinding("Space", "toggle"),
		RenderKeyBinding("a", "all"),
		RenderKeyBinding("g", "generate"),
		RenderKeyBinding("/", "schema"),
		RenderKeyBinding("q", "quit"),
	}
	return dimStyle.Width(m.Width-4).Render("  " + strings.Join(keys, dimStyle.Render("  │  ")))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
