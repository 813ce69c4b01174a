package interactive

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/coperacha/coperacha-cli/internal/domain/config"
)

// minMembers is the smallest member set a vault accepts
const minMembers = 2

// memberSelectModel is the bubbletea model for picking vault members
type memberSelectModel struct {
	accounts  []config.Account
	cursor    int
	selected  map[int]bool
	title     string
	done      bool
	cancelled bool
	warning   string
}

func initialMemberSelectModel(accounts []config.Account, title string) memberSelectModel {
	return memberSelectModel{
		accounts: accounts,
		selected: make(map[int]bool, len(accounts)),
		title:    title,
	}
}

// Init is the initial command for bubbletea
func (m memberSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m memberSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.accounts)-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
		m.warning = ""
	case "enter":
		if m.count() < minMembers {
			m.warning = fmt.Sprintf("select at least %d members", minMembers)
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m memberSelectModel) count() int {
	n := 0
	for _, selected := range m.selected {
		if selected {
			n++
		}
	}
	return n
}

// indices returns the selected rows in display order
func (m memberSelectModel) indices() []int {
	var indices []int
	for i := range m.accounts {
		if m.selected[i] {
			indices = append(indices, i)
		}
	}
	return indices
}

// View renders the UI
func (m memberSelectModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, account := range m.accounts {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		checkbox := color.New(color.FgWhite).Sprint("○")
		if m.selected[i] {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		}

		name := color.New(color.FgWhite, color.Bold).Sprint(account.Name)
		addr := color.New(color.FgBlue).Sprint(account.Address.Hex())
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", cursor, checkbox, name, addr))
	}

	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(color.New(color.FgRed).Sprintf("%s\n", m.warning))
	}
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  Enter: confirm  q: quit\n"))

	return b.String()
}

// runMemberSelect shows the multi-select and returns the chosen account indices
func runMemberSelect(accounts []config.Account, title string) ([]int, error) {
	p := tea.NewProgram(initialMemberSelectModel(accounts, title))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("member selection failed: %w", err)
	}

	m := finalModel.(memberSelectModel)
	if m.cancelled || !m.done {
		return nil, fmt.Errorf("selection cancelled")
	}
	return m.indices(), nil
}
