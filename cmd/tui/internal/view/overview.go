package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/dashboard"
)

// OverviewModel shows contract counts per status and portfolio totals.
type OverviewModel struct {
	CommonModel
	svc *dashboard.Service
	now func() time.Time

	loading bool
	err     error

	counts []dashboard.StatusCount
	value  decimal.Decimal
	spent  decimal.Decimal
	profit decimal.Decimal
}

func NewOverviewModel(svc *dashboard.Service, now func() time.Time) OverviewModel {
	return OverviewModel{svc: svc, now: now, loading: true}
}

func (m OverviewModel) Title() string     { return "Status Overview" }
func (m OverviewModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m OverviewModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.counts = dashboard.CountByStatus(msg.summaries)
			m.value, m.spent, m.profit = decimal.Zero, decimal.Zero, decimal.Zero

			for _, s := range msg.summaries {
				m.value = m.value.Add(s.ContractValue)
				m.spent = m.spent.Add(s.TotalSpent)
				m.profit = m.profit.Add(s.Profit)
			}
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

var statusColors = map[contract.Status]lipgloss.Color{
	contract.StatusDraft:           "245",
	contract.StatusCancelled:       "160",
	contract.StatusInProgress:      "39",
	contract.StatusSuspended:       "214",
	contract.StatusClosed:          "46",
	contract.StatusClosedWithDelay: "203",
}

func (m OverviewModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading contracts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	var b strings.Builder

	fmt.Fprintf(&b, "As of %s\n\n", activeStyle(FormatDate(m.now())))

	for _, c := range m.counts {
		badge := lipgloss.NewStyle().Foreground(statusColors[c.Status]).Render(fmt.Sprintf("%-20s", c.Status.Label()))
		fmt.Fprintf(&b, "%s %4d\n", badge, c.Count)
	}

	fmt.Fprintf(&b, "\nValue:  %14s\nSpent:  %14s\nProfit: %14s\n",
		FormatAmount(m.value), FormatAmount(m.spent), FormatAmount(m.profit))

	b.WriteString("\n" + faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

type overviewMsg struct {
	summaries []contract.Summary
	err       error
}

func (m OverviewModel) loadCmd() tea.Cmd {
	now := m.now()

	return func() tea.Msg {
		ctx, cancel := SourceCtx()
		defer cancel()

		summaries, err := m.svc.Summaries(ctx, now, dashboard.Filter{})

		return overviewMsg{summaries: summaries, err: err}
	}
}
