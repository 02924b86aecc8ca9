package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/dashboard"
)

type contractsState int

const (
	contractsStateBrowse contractsState = iota
	contractsStateTransition
)

// OpenExportMsg asks the root model to open the export screen for the
// current selection.
type OpenExportMsg struct {
	Filter dashboard.Filter
	AsOf   time.Time
}

// transitionForm holds the huh bindings; it lives on the heap so copies of
// the model share it.
type transitionForm struct {
	contractID string
	event      contract.Event
	confirm    bool
}

type ContractsModel struct {
	CommonModel
	svc *dashboard.Service
	now func() time.Time

	// asOf overrides now for evaluation when set.
	asOf *time.Time

	state     contractsState
	table     table.Model
	summaries []contract.Summary

	statusFilterIdx int
	filter          dashboard.Filter

	form     *huh.Form
	bindings *transitionForm

	loading bool
	err     error
	status  string
}

func NewContractsModel(svc *dashboard.Service, now func() time.Time, asOf *time.Time) ContractsModel {
	columns := []table.Column{
		{Title: "Number", Width: 14},
		{Title: "Status", Width: 18},
		{Title: "Value", Width: 12},
		{Title: "Spent", Width: 12},
		{Title: "Profit", Width: 12},
		{Title: "Margin", Width: 9},
		{Title: "Progress", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ContractsModel{
		svc:     svc,
		now:     now,
		asOf:    asOf,
		table:   t,
		loading: true,
	}
}

func (m ContractsModel) Title() string { return "Contracts" }

func (m ContractsModel) ShortHelp() string {
	if m.state == contractsStateTransition {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | s: status filter | t: transition | x: export | r: refresh"
}

func (m ContractsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ContractsModel) evalDate() time.Time {
	if m.asOf != nil {
		return *m.asOf
	}

	return m.now()
}

func (m ContractsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadContractsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.summaries = msg.summaries
		m.refreshTable()

		return m, nil

	case allowedEventsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		if len(msg.events) == 0 {
			m.status = fmt.Sprintf("No transitions available for %s", msg.summary.ContractNumber)
			return m, nil
		}

		return m.enterTransitionMode(msg.summary, msg.events)

	case transitionDoneMsg:
		m.state = contractsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("%s is now %s", msg.summary.ContractNumber, msg.summary.EffectiveStatus.Label())

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil
	}

	switch m.state {
	case contractsStateBrowse:
		return m.updateBrowse(msg)
	case contractsStateTransition:
		return m.updateTransition(msg)
	}

	return m, nil
}

func (m ContractsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % (len(contract.Statuses()) + 1)
			m.applyFilter()
			m.loading = true

			return m, m.loadCmd()
		case "t":
			return m, m.allowedCmd()
		case "x":
			filter, asOf := m.filter, m.evalDate()

			return m, func() tea.Msg {
				return OpenExportMsg{Filter: filter, AsOf: asOf}
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ContractsModel) enterTransitionMode(s contract.Summary, events []contract.Event) (tea.Model, tea.Cmd) {
	m.bindings = &transitionForm{contractID: s.ContractID, event: events[0], confirm: true}

	options := make([]huh.Option[contract.Event], 0, len(events))
	for _, e := range events {
		options = append(options, huh.NewOption(string(e), e))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[contract.Event]().
				Key("event").
				Title(fmt.Sprintf("Transition %s (%s)", s.ContractNumber, s.EffectiveStatus.Label())).
				Options(options...).
				Value(&m.bindings.event),
			huh.NewConfirm().
				Title("Apply?").
				Value(&m.bindings.confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = contractsStateTransition
	m.table.Blur()
	m.status = ""

	return m, m.form.Init()
}

func (m ContractsModel) updateTransition(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = contractsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.bindings.confirm {
		m.state = contractsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.transitionCmd(m.bindings.contractID, m.bindings.event)
}

func (m ContractsModel) selected() (contract.Summary, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.summaries) {
		return contract.Summary{}, false
	}

	return m.summaries[idx], true
}

func (m ContractsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading contracts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf(
		"As of %s | [s] Status: %s | %d contracts",
		activeStyle(FormatDate(m.evalDate())),
		activeStyle(m.filterLabel()),
		len(m.summaries),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(m.ShortHelp()),
	)

	if m.state == contractsStateTransition && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ContractsModel) filterLabel() string {
	if m.filter.Status == nil {
		return "All"
	}

	return m.filter.Status.Label()
}

func (m *ContractsModel) applyFilter() {
	if m.statusFilterIdx == 0 {
		m.filter.Status = nil
		return
	}

	m.filter.Status = new(contract.Statuses()[m.statusFilterIdx-1])
}

func (m *ContractsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.summaries))
	for _, s := range m.summaries {
		rows = append(rows, table.Row{
			s.ContractNumber,
			s.EffectiveStatus.Label(),
			FormatAmount(s.ContractValue),
			FormatAmount(s.TotalSpent),
			FormatAmount(s.Profit),
			FormatPercent(s.ProfitMarginPercent),
			FormatProgress(s.ProgressPercent),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Messages

type loadContractsMsg struct {
	summaries []contract.Summary
	err       error
}

func (m ContractsModel) loadCmd() tea.Cmd {
	filter, at := m.filter, m.evalDate()

	return func() tea.Msg {
		ctx, cancel := SourceCtx()
		defer cancel()

		summaries, err := m.svc.Summaries(ctx, at, filter)

		return loadContractsMsg{summaries: summaries, err: err}
	}
}

type allowedEventsMsg struct {
	summary contract.Summary
	events  []contract.Event
	err     error
}

func (m ContractsModel) allowedCmd() tea.Cmd {
	s, ok := m.selected()
	if !ok {
		return nil
	}

	now := m.now()

	return func() tea.Msg {
		ctx, cancel := SourceCtx()
		defer cancel()

		events, err := m.svc.Allowed(ctx, s.ContractID, now)

		return allowedEventsMsg{summary: s, events: events, err: err}
	}
}

type transitionDoneMsg struct {
	summary contract.Summary
	err     error
}

func (m ContractsModel) transitionCmd(id string, event contract.Event) tea.Cmd {
	now := m.now()

	return func() tea.Msg {
		ctx, cancel := SourceCtx()
		defer cancel()

		updated, err := m.svc.Transition(ctx, id, event, now)

		return transitionDoneMsg{summary: updated, err: err}
	}
}
