package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/collabgraph/pkg/analytics"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// UserPickerModel - Interactive user selection
// =============================================================================

// UserPickerModel is the bubbletea model for picking a focus user from a
// ranking. Typing filters the list by substring.
type UserPickerModel struct {
	Users    []analytics.Ranked
	Cursor   int
	Selected *analytics.Ranked
	Height   int
	Offset   int
	Filter   string
}

// NewUserPickerModel creates a picker over users, typically ordered by influence.
func NewUserPickerModel(users []analytics.Ranked) UserPickerModel {
	return UserPickerModel{
		Users:  users,
		Height: 15,
	}
}

// visible returns the users matching the current filter.
func (m UserPickerModel) visible() []analytics.Ranked {
	if m.Filter == "" {
		return m.Users
	}
	f := strings.ToLower(m.Filter)
	var out []analytics.Ranked
	for _, u := range m.Users {
		if strings.Contains(strings.ToLower(u.Label), f) {
			out = append(out, u)
		}
	}
	return out
}

func (m UserPickerModel) Init() tea.Cmd {
	return nil
}

func (m UserPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		users := m.visible()
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(users)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if len(users) == 0 {
				return m, nil
			}
			u := users[m.Cursor]
			m.Selected = &u
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.Filter != "" {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m UserPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select User"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString(StyleHighlight.Render("filter: " + m.Filter))
	}
	b.WriteString("\n")

	users := m.visible()
	end := m.Offset + m.Height
	if end > len(users) {
		end = len(users)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		u := users[i]
		rows = append(rows, []string{cursor, u.Label, strconv.FormatFloat(u.Score, 'f', -1, 64)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "User", "Influence").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 2 {
				return listDimStyle
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(users) == 0 {
		b.WriteString(listDimStyle.Render("  no matching users"))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(users))))
	}

	return b.String()
}

// pickUser runs the picker and returns the chosen label. The second result
// is false if the user quit without choosing.
func pickUser(users []analytics.Ranked) (string, bool, error) {
	final, err := tea.NewProgram(NewUserPickerModel(users)).Run()
	if err != nil {
		return "", false, err
	}
	m := final.(UserPickerModel)
	if m.Selected == nil {
		return "", false, nil
	}
	return m.Selected.Label, true, nil
}
