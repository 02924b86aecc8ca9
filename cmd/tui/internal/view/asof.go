package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AsOf is a predefined or custom evaluation date.
type AsOf int

const (
	AsOfToday            AsOf = 0
	AsOfEndOfMonth       AsOf = 1
	AsOfEndOfLastMonth   AsOf = 2
	AsOfEndOfQuarter     AsOf = 3
	AsOfEndOfLastQuarter AsOf = 4
	AsOfCustom           AsOf = 5
)

func (a AsOf) String() string {
	switch a {
	case AsOfToday:
		return "Today"
	case AsOfEndOfMonth:
		return "End of This Month"
	case AsOfEndOfLastMonth:
		return "End of Last Month"
	case AsOfEndOfQuarter:
		return "End of This Quarter"
	case AsOfEndOfLastQuarter:
		return "End of Last Quarter"
	case AsOfCustom:
		return "Custom Date"
	}

	return "Unknown"
}

func asOfToDate(a AsOf, now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := day.AddDate(0, 0, 1-day.Day())
	quarterStart := monthStart.AddDate(0, -int(monthStart.Month()-1)%3, 0)

	switch a {
	case AsOfEndOfMonth:
		return monthStart.AddDate(0, 1, -1)
	case AsOfEndOfLastMonth:
		return monthStart.AddDate(0, 0, -1)
	case AsOfEndOfQuarter:
		return quarterStart.AddDate(0, 3, -1)
	case AsOfEndOfLastQuarter:
		return quarterStart.AddDate(0, 0, -1)
	}

	return day
}

// AsOfSelectedMsg is emitted when the user has picked an evaluation date.
type AsOfSelectedMsg struct {
	Date time.Time
}

type asOfState int

const (
	asOfStateSelect asOfState = iota
	asOfStateCustom
)

// AsOfPicker selects the date contracts are evaluated at.
type AsOfPicker struct {
	state    asOfState
	selected AsOf
	now      func() time.Time

	input textinput.Model
	err   error
}

func NewAsOfPicker(now func() time.Time) AsOfPicker {
	in := textinput.New()
	in.Placeholder = "YYYY-MM-DD"
	in.CharLimit = 10
	in.Width = 12
	in.Prompt = "Date: "

	return AsOfPicker{
		state:    asOfStateSelect,
		selected: AsOfToday,
		now:      now,
		input:    in,
	}
}

func (m AsOfPicker) Init() tea.Cmd {
	return nil
}

func (m AsOfPicker) Update(msg tea.Msg) (AsOfPicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case asOfStateSelect:
			return m.updateSelect(keyMsg)
		case asOfStateCustom:
			return m.updateCustom(keyMsg)
		}
	}

	if m.state == asOfStateCustom {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m AsOfPicker) updateSelect(msg tea.KeyMsg) (AsOfPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > AsOfToday {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < AsOfCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == AsOfCustom {
			m.state = asOfStateCustom
			m.input.Focus()

			return m, textinput.Blink
		}

		date := asOfToDate(m.selected, m.now())

		return m, func() tea.Msg {
			return AsOfSelectedMsg{Date: date}
		}
	}

	return m, nil
}

func (m AsOfPicker) updateCustom(msg tea.KeyMsg) (AsOfPicker, tea.Cmd) {
	switch msg.String() {
	case "enter":
		date, err := time.ParseInLocation(time.DateOnly, m.input.Value(), m.now().Location())
		if err != nil {
			m.err = fmt.Errorf("invalid date (YYYY-MM-DD)")
			return m, nil
		}

		m.err = nil

		return m, func() tea.Msg {
			return AsOfSelectedMsg{Date: date}
		}

	case "esc":
		m.state = asOfStateSelect
		m.err = nil

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m AsOfPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == asOfStateCustom {
		return fmt.Sprintf(
			"Evaluate contracts on:\n\n%s\n\n(Enter to confirm, Esc to back)%s",
			m.input.View(),
			errStr,
		)
	}

	s := "Evaluate contracts as of:\n\n"

	for i := AsOfToday; i <= AsOfCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		label := i.String()
		if i != AsOfCustom {
			label = fmt.Sprintf("%-20s %s", label, FormatDate(asOfToDate(i, m.now())))
		}

		s += fmt.Sprintf("%s %s\n", cursor, label)
	}

	s += "\n(Enter to select, Esc to back)"

	return lipgloss.NewStyle().Render(s + errStr)
}

// IsSelecting reports whether the picker shows the preset list.
func (m AsOfPicker) IsSelecting() bool {
	return m.state == asOfStateSelect
}
