package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/graphlens/pkg/explore"
	"github.com/matzehuels/graphlens/pkg/pipeline"
)

// =============================================================================
// ExplorerModel - Interactive graph exploration
// =============================================================================

// ExplorerModel is the bubbletea model for the terminal explorer. It walks
// the visible node list: expanding, collapsing, and tracing under the
// cursor, with render states driving the row styling.
type ExplorerModel struct {
	result      *pipeline.Result
	resolver    *explore.Resolver
	interaction explore.Interaction

	nodes  []string // visible ids, sorted
	states map[string]explore.State

	cursor int
	offset int
	height int
	status string
}

// NewExplorerModel creates an explorer model over a built pipeline result.
func NewExplorerModel(result *pipeline.Result) ExplorerModel {
	m := ExplorerModel{
		result:   result,
		resolver: explore.NewResolver(),
		height:   20,
	}
	m.refresh()
	return m
}

// refresh re-derives the node list and full state assignment.
func (m *ExplorerModel) refresh() {
	m.nodes = m.result.Explorer.VisibleIDs()
	m.resolver.Apply(m.result.Explorer, m.interaction)
	m.states = m.resolver.Current()

	if m.cursor >= len(m.nodes) {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m *ExplorerModel) current() string {
	if len(m.nodes) == 0 {
		return ""
	}
	return m.nodes[m.cursor]
}

// Init implements tea.Model.
func (m ExplorerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case "down", "j":
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}

		case "enter", "e":
			if id := m.current(); id != "" {
				added, _ := m.result.Explorer.Expand(id)
				m.status = fmt.Sprintf("expanded %s (+%d)", id, len(added))
				m.refresh()
			}

		case "x", "backspace":
			if id := m.current(); id != "" {
				if m.result.Model.IsEntrypoint(id) {
					m.status = fmt.Sprintf("%s is an entrypoint - protected", id)
					break
				}
				before := m.result.Explorer.Stats().Visible
				m.result.Explorer.Collapse(id)
				removed := before - m.result.Explorer.Stats().Visible
				m.status = fmt.Sprintf("collapsed %s (-%d)", id, removed)
				m.refresh()
			}

		case "t":
			if id := m.current(); id != "" {
				path := m.result.Explorer.TraceToEntrypoints(id)
				traceSet := make(map[string]struct{}, len(path))
				for _, p := range path {
					traceSet[p] = struct{}{}
				}
				m.interaction = explore.Interaction{Selected: id, Trace: traceSet}
				m.status = fmt.Sprintf("traced %s: %d nodes on path", id, len(path))
				m.refresh()
			}

		case "s":
			if id := m.current(); id != "" {
				m.interaction = explore.Interaction{Selected: id}
				m.status = fmt.Sprintf("selected %s", id)
				m.refresh()
			}

		case "esc":
			m.interaction = explore.Interaction{}
			m.status = "selection cleared"
			m.refresh()

		case "r":
			m.result.Explorer.Reset()
			m.interaction = explore.Interaction{}
			m.status = "reset to entrypoints"
			m.refresh()

		case "a":
			m.result.Explorer.ShowAll()
			m.status = "showing all nodes"
			m.refresh()
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height - 7
		if m.height < 5 {
			m.height = 5
		}
		m.refresh()
	}

	return m, nil
}

// View implements tea.Model.
func (m ExplorerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Graphlens"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ expand  x collapse  s select  t trace  esc clear  r reset  a all  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.nodes) {
		end = len(m.nodes)
	}

	for i := m.offset; i < end; i++ {
		id := m.nodes[i]

		cursor := "  "
		if i == m.cursor {
			cursor = iconCursor
		}

		icon := iconNode
		if m.result.Model.IsEntrypoint(id) {
			icon = iconEntrypoint
		}

		out, in := m.result.Index.Degree(id)
		line := fmt.Sprintf("%s%s%s  %s", cursor, icon, id, StyleDim.Render(fmt.Sprintf("↓%d ↑%d", out, in)))

		b.WriteString(styleForState(m.states[id]).Render(line))
		b.WriteString("\n")
	}

	stats := m.result.Explorer.Stats()
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("visible %d / %d", stats.Visible, stats.Total)))
	if m.status != "" {
		b.WriteString(StyleDim.Render("  ·  "))
		b.WriteString(StyleValue.Render(m.status))
	}
	b.WriteString("\n")

	return b.String()
}
