package view

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/refundtrack/internal/export"
	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

// exportFields holds the form bindings behind a pointer, like productFields.
type exportFields struct {
	Status product.StatusFilter
	Delta  product.DeltaFilter
	Search string
	Path   string
}

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state   exportState
	err     error
	form    *huh.Form
	fields  *exportFields
	spinner spinner.Model

	file    string
	summary string
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	fields := &exportFields{Path: "./exports"}

	return ExportModel{
		exportService: svc,
		state:         exportStateForm,
		fields:        fields,
		form:          buildExportForm(fields),
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Export Products" }

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

	criteria := product.Criteria{Search: m.fields.Search, Status: m.fields.Status, Delta: m.fields.Delta}

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(criteria, m.fields.Path))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.file = result.file
		m.summary = result.summary

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

func buildExportForm(f *exportFields) *huh.Form {
	statusOptions := make([]huh.Option[product.StatusFilter], 0, len(product.StatusFilters))
	for _, s := range product.StatusFilters {
		statusOptions = append(statusOptions, huh.NewOption(statusFilterLabels[s], s))
	}

	deltaOptions := make([]huh.Option[product.DeltaFilter], 0, len(product.DeltaFilters))
	for _, d := range product.DeltaFilters {
		deltaOptions = append(deltaOptions, huh.NewOption(deltaFilterLabels[d], d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[product.StatusFilter]().
				Key("status").
				Title("Status").
				Options(statusOptions...).
				Value(&f.Status),

			huh.NewSelect[product.DeltaFilter]().
				Key("delta").
				Title("Delta").
				Options(deltaOptions...).
				Value(&f.Delta),

			huh.NewInput().
				Key("search").
				Title("Search").
				Placeholder("Any item").
				Value(&f.Search),

			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&f.Path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exporting products...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			"Written to "+m.file,
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	file    string
	summary string
	err     error
}

const exportTimeout = 2 * time.Minute

func (m ExportModel) runExportCmd(c product.Criteria, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportResultMsg{err: fmt.Errorf("create output directory: %w", err)}
		}

		var csvBuf bytes.Buffer
		if err := m.exportService.Export(ctx, c, &csvBuf); err != nil {
			return exportResultMsg{err: err}
		}

		file := filepath.Join(dir, fmt.Sprintf("products_%s.csv", time.Now().Format("20060102_150405")))
		if err := os.WriteFile(file, csvBuf.Bytes(), 0o644); err != nil {
			return exportResultMsg{err: fmt.Errorf("write export: %w", err)}
		}

		var report bytes.Buffer
		if err := m.exportService.WriteReport(ctx, c, &report); err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{file: file, summary: report.String()}
	}
}
