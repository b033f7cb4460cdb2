package cli

// Copyright (C) 2025 Rizome Labs, Inc.
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; either version 2
// of the License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program; if not, write to the Free Software
// Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rizome-dev/fabsetup/pkg/core"
)

// serverItem is one selectable server in the picker
type serverItem struct {
	spec     core.ServerSpec
	selected bool
}

func (i serverItem) FilterValue() string { return i.spec.Name }
func (i serverItem) Title() string {
	checkbox := "☐"
	if i.selected {
		checkbox = "☑"
	}
	suffix := ""
	if i.spec.Required {
		suffix = " (required)"
	} else if i.spec.WindowsOnly {
		suffix = " (Windows only)"
	}
	return fmt.Sprintf("%s %s%s", checkbox, i.spec.Name, suffix)
}
func (i serverItem) Description() string { return i.spec.Description }

// pickerModel is the bubbletea model for server selection
type pickerModel struct {
	list    list.Model
	servers []core.ServerSpec
	choices []string
	aborted bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// Cancel without provisioning anything
			m.aborted = true
			return m, tea.Quit
		case "enter":
			return m, tea.Quit
		case " ":
			// Toggle selection
			if i, ok := m.list.SelectedItem().(serverItem); ok {
				idx := m.list.Index()
				if selectedContains(m.choices, i.spec.Name) {
					m.choices = removeName(m.choices, i.spec.Name)
				} else {
					m.choices = append(m.choices, i.spec.Name)
				}

				items := m.list.Items()
				if idx < len(items) {
					if item, ok := items[idx].(serverItem); ok {
						item.selected = !item.selected
						items[idx] = item
						m.list.SetItems(items)
					}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	instructionsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	status := statusStyle.Render(fmt.Sprintf("Selected: %d/%d servers", len(m.choices), len(m.servers)))
	instructions := instructionsStyle.Render("Space to toggle selection • ↑↓ to navigate • Enter to continue • q to cancel")

	return m.list.View() + "\n\n" + status + "\n" + instructions
}

// newPickerModel builds the picker with every server pre-selected
func newPickerModel(servers []core.ServerSpec) pickerModel {
	items := make([]list.Item, len(servers))
	var preSelected []string

	for i, spec := range servers {
		items[i] = serverItem{spec: spec, selected: true}
		preSelected = append(preSelected, spec.Name)
	}

	listHeight := len(servers)*3 + 12
	l := list.New(items, list.NewDefaultDelegate(), 85, listHeight)
	l.Title = "Select MCP servers to provision"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.Styles.Title = lipgloss.NewStyle().
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("230")).
		Padding(0, 1)

	return pickerModel{
		list:    l,
		servers: servers,
		choices: preSelected,
	}
}

// pickServers shows the interactive server picker. A cancelled picker
// returns an empty selection.
func pickServers(servers []core.ServerSpec) ([]string, error) {
	p := tea.NewProgram(newPickerModel(servers))
	result, err := p.Run()
	if err != nil {
		return nil, err
	}

	if m, ok := result.(pickerModel); ok {
		if m.aborted {
			return nil, nil
		}
		return m.choices, nil
	}

	return nil, nil
}

func removeName(slice []string, item string) []string {
	var result []string
	for _, s := range slice {
		if s != item {
			result = append(result, s)
		}
	}
	return result
}
