package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/sitebook/internal/dashboard"
	"github.com/MrJamesThe3rd/sitebook/internal/report"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type exportFields struct {
	format report.Format
	path   string
}

type ExportModel struct {
	CommonModel
	svc      *dashboard.Service
	exporter *report.Exporter

	state  exportState
	err    error
	filter dashboard.Filter
	asOf   time.Time

	form    *huh.Form
	fields  *exportFields
	spinner spinner.Model
	result  exportResultMsg
}

func NewExportModel(svc *dashboard.Service, exporter *report.Exporter, filter dashboard.Filter, asOf time.Time) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		svc:      svc,
		exporter: exporter,
		state:    exportStateForm,
		filter:   filter,
		asOf:     asOf,
		fields:   &exportFields{format: report.FormatXLSX, path: "./exports"},
		spinner:  s,
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Export Report" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.fields.format, m.fields.path))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.result = result

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	return m, nil
}

func (m ExportModel) buildForm() *huh.Form {
	options := make([]huh.Option[report.Format], 0, len(report.Formats()))
	for _, f := range report.Formats() {
		options = append(options, huh.NewOption(string(f), f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[report.Format]().
				Key("format").
				Title("Format").
				Options(options...).
				Value(&m.fields.format),
			huh.NewInput().
				Key("path").
				Title("Output Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.fields.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		header := fmt.Sprintf("Contracts as of %s", activeStyle(FormatDate(m.asOf)))
		if m.filter.Status != nil {
			header += fmt.Sprintf(" | Status: %s", activeStyle(m.filter.Status.Label()))
		}

		return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Rendering %s report...", m.spinner.View(), m.fields.format),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			okStyle.Render("Export Complete!"),
			"",
			fmt.Sprintf("File:      %s", m.result.path),
			fmt.Sprintf("Contracts: %d", m.result.count),
			fmt.Sprintf("Run:       %s", m.result.runID),
		),
	)
}

type exportResultMsg struct {
	path  string
	count int
	runID string
	err   error
}

const exportTimeout = 2 * time.Minute

func (m ExportModel) runExportCmd(format report.Format, dir string) tea.Cmd {
	filter, asOf := m.filter, m.asOf

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		summaries, err := m.svc.Summaries(ctx, asOf, filter)
		if err != nil {
			return exportResultMsg{err: err}
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportResultMsg{err: fmt.Errorf("creating output directory: %w", err)}
		}

		rep := report.New(summaries, asOf)
		path := filepath.Join(dir, rep.Filename(format))

		f, err := os.Create(path)
		if err != nil {
			return exportResultMsg{err: fmt.Errorf("creating file: %w", err)}
		}
		defer f.Close()

		if err := m.exporter.Export(f, format, rep); err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{path: path, count: len(summaries), runID: rep.RunID.String()}
	}
}
