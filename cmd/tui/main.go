package main

import (
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/sitebook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/sitebook/internal/backend"
	"github.com/MrJamesThe3rd/sitebook/internal/clock"
	"github.com/MrJamesThe3rd/sitebook/internal/config"
	"github.com/MrJamesThe3rd/sitebook/internal/dashboard"
	"github.com/MrJamesThe3rd/sitebook/internal/report"
	"github.com/MrJamesThe3rd/sitebook/internal/snapshot"
)

type model struct {
	svc      *dashboard.Service
	exporter *report.Exporter
	now      clock.Clock
	appName  string

	currentView View

	contractsView view.ContractsModel
	asOfPicker    view.AsOfPicker
	overviewView  view.OverviewModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewContracts View = 1
	ViewAsOf      View = 2
	ViewOverview  View = 3
	ViewExport    View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load timezone", "error", err)
		os.Exit(1)
	}

	var source dashboard.Source = backend.NewClient(cfg.Backend.URL, cfg.Backend.Token, cfg.Backend.Timeout)
	if cfg.Source == config.SourceSnapshot {
		source = snapshot.New(cfg.Snapshot.Dir)
	}

	// Metrics are only scraped from the API; the terminal keeps none.
	svc := dashboard.NewService(source, cfg.Source, nil)

	return model{
		svc:         svc,
		exporter:    report.NewExporter(nil),
		now:         clock.In(loc),
		appName:     cfg.App.Name,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewContracts
				m.contractsView = view.NewContractsModel(m.svc, m.now, nil)

				return m, m.contractsView.Init()
			case "2":
				m.currentView = ViewAsOf
				m.asOfPicker = view.NewAsOfPicker(m.now)

				return m, m.asOfPicker.Init()
			case "3":
				m.currentView = ViewOverview
				m.overviewView = view.NewOverviewModel(m.svc, m.now)

				return m, m.overviewView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.svc, m.exporter, dashboard.Filter{}, m.now())

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.AsOfSelectedMsg:
		m.currentView = ViewContracts
		m.contractsView = view.NewContractsModel(m.svc, m.now, new(msg.Date))

		return m, m.contractsView.Init()
	case view.OpenExportMsg:
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.svc, m.exporter, msg.Filter, msg.AsOf)

		return m, m.exportView.Init()
	}

	switch m.currentView {
	case ViewContracts:
		var newModel tea.Model
		newModel, cmd = m.contractsView.Update(msg)
		m.contractsView = newModel.(view.ContractsModel)
	case ViewAsOf:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.asOfPicker.IsSelecting() {
			m.currentView = ViewMenu
			return m, nil
		}

		m.asOfPicker, cmd = m.asOfPicker.Update(msg)
	case ViewOverview:
		var newModel tea.Model
		newModel, cmd = m.overviewView.Update(msg)
		m.overviewView = newModel.(view.OverviewModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + " TUI\n" +
				lipgloss.NewStyle().Faint(true).Render(m.now().Format(time.DateOnly)) + "\n\n" +
				"1. Contracts\n" +
				"2. Contracts as of Date\n" +
				"3. Status Overview\n" +
				"4. Export Report\n\n" +
				"q. Quit",
		)
	case ViewContracts:
		return m.contractsView.View()
	case ViewAsOf:
		return lipgloss.NewStyle().Padding(1).Render(m.asOfPicker.View())
	case ViewOverview:
		return m.overviewView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
