package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// RepoEntry is one pickable row in the interactive repo picker.
type RepoEntry struct {
	Name    string
	URL     string
	Present bool // directory already exists locally
}

// entrySource implements fuzzy.Source over entry names.
type entrySource []RepoEntry

func (s entrySource) String(i int) string { return s[i].Name }
func (s entrySource) Len() int            { return len(s) }

// pickerModel is the bubbletea model for multi-selecting repos.
type pickerModel struct {
	entries   []RepoEntry
	filtered  []int // indices into entries, in display order
	textInput textinput.Model
	cursor    int
	checked   map[int]bool // keyed by entry index
	cancelled bool
	maxHeight int
}

func newPickerModel(entries []RepoEntry) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	m := pickerModel{
		entries:   entries,
		textInput: ti,
		checked:   make(map[int]bool),
		maxHeight: 10,
	}
	m.applyFilter("")
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			return m, tea.Quit

		case " ", "tab":
			m.toggle()
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	m.applyFilter(m.textInput.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}

	return m, cmd
}

// toggle flips the checkbox under the cursor.
func (m *pickerModel) toggle() {
	if len(m.filtered) == 0 || m.cursor >= len(m.filtered) {
		return
	}
	idx := m.filtered[m.cursor]
	m.checked[idx] = !m.checked[idx]
}

// applyFilter rebuilds the visible rows for the given query.
func (m *pickerModel) applyFilter(query string) {
	if query == "" {
		m.filtered = make([]int, len(m.entries))
		for i := range m.entries {
			m.filtered[i] = i
		}
		return
	}
	matches := fuzzy.FindFrom(query, entrySource(m.entries))
	m.filtered = make([]int, len(matches))
	for i, match := range matches {
		m.filtered[i] = match.Index
	}
}

// selected returns the checked entry names in declaration order.
func (m pickerModel) selected() []string {
	var names []string
	for i, e := range m.entries {
		if m.checked[i] {
			names = append(names, e.Name)
		}
	}
	return names
}

func (m pickerModel) View() string {
	var sb strings.Builder

	sb.WriteString("Select repos to sync:\n")
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n\n")

	if len(m.filtered) == 0 {
		sb.WriteString(dimStyle.Render("  No matches found"))
		sb.WriteString("\n")
	} else {
		start := 0
		end := len(m.filtered)
		if end > m.maxHeight {
			halfHeight := m.maxHeight / 2
			start = m.cursor - halfHeight
			if start < 0 {
				start = 0
			}
			end = start + m.maxHeight
			if end > len(m.filtered) {
				end = len(m.filtered)
				start = max(0, end-m.maxHeight)
			}
		}

		for i := start; i < end; i++ {
			idx := m.filtered[i]
			e := m.entries[idx]

			box := "[ ]"
			if m.checked[idx] {
				box = "[x]"
			}
			state := "missing"
			if e.Present {
				state = "present"
			}
			line := fmt.Sprintf("%s %-19s %s", box, e.Name, dimStyle.Render(state))

			if i == m.cursor {
				sb.WriteString(goodStyle.Render("> "))
				sb.WriteString(goodStyle.Render(line))
			} else {
				sb.WriteString("  ")
				sb.WriteString(line)
			}
			sb.WriteString("\n")
		}

		if len(m.filtered) > m.maxHeight {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  %d/%d", m.cursor+1, len(m.filtered))))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑/↓ navigate • space toggle • enter confirm • esc cancel"))

	return sb.String()
}

// PickRepos shows an interactive fuzzy multi-select over the registry
// entries and returns the chosen names in declaration order. A
// cancelled picker returns no names.
func PickRepos(entries []RepoEntry) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	p := tea.NewProgram(newPickerModel(entries))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(pickerModel)
	if m.cancelled {
		return nil, nil
	}
	return m.selected(), nil
}
