package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Scope rows
// =============================================================================

// scopeRow is one graph or subgraph in preorder.
type scopeRow struct {
	Graph *agraph.Graph
	Depth int
}

// scopeRows lists g and its subgraphs in preorder.
func scopeRows(g *agraph.Graph) []scopeRow {
	var rows []scopeRow
	var walk func(*agraph.Graph, int)
	walk = func(s *agraph.Graph, depth int) {
		rows = append(rows, scopeRow{Graph: s, Depth: depth})
		for _, sub := range s.Subgraphs() {
			walk(sub, depth+1)
		}
	}
	walk(g, 0)
	return rows
}

// declared counts the attribute defaults declared in the scope itself.
func declared(g *agraph.Graph) int {
	n := 0
	for _, k := range agraph.Kinds {
		n += len(g.Dict(k).Local())
	}
	return n
}

func (r scopeRow) cells(cursor string) []string {
	return []string{
		cursor,
		strings.Repeat("  ", r.Depth) + r.Graph.Name(),
		strconv.Itoa(r.Graph.NodeCount()),
		strconv.Itoa(r.Graph.EdgeCount()),
		strconv.Itoa(len(r.Graph.Subgraphs())),
		strconv.Itoa(declared(r.Graph)),
	}
}

// scopeTable renders rows[offset:end] with the row at cursor highlighted.
// A negative cursor renders a plain table.
func scopeTable(rows []scopeRow, offset, end, cursor int) string {
	cells := make([][]string, 0, end-offset)
	for i := offset; i < end; i++ {
		mark := ""
		if cursor >= 0 {
			mark = "  "
			if i == cursor {
				mark = "▸ "
			}
		}
		cells = append(cells, rows[i].cells(mark))
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Scope", "Nodes", "Edges", "Subgraphs", "Defaults").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := offset + row
			if idx == cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// =============================================================================
// ScopeListModel - Interactive scope selection
// =============================================================================

// ScopeListModel is the bubbletea model for browsing the scopes of a graph.
type ScopeListModel struct {
	Rows     []scopeRow
	Cursor   int
	Selected *agraph.Graph
	Height   int
	Offset   int
}

// NewScopeListModel creates a scope list for g.
func NewScopeListModel(g *agraph.Graph) ScopeListModel {
	return ScopeListModel{
		Rows:   scopeRows(g),
		Height: 15,
	}
}

func (m ScopeListModel) Init() tea.Cmd {
	return nil
}

func (m ScopeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Rows[m.Cursor].Graph
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ScopeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Scope"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ list nodes  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}
	b.WriteString(scopeTable(m.Rows, m.Offset, end, m.Cursor))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
