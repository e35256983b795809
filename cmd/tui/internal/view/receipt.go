package view

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
	"github.com/MrJamesThe3rd/refundtrack/internal/receipt"
)

const receiptTimeout = 90 * time.Second

type receiptState int

const (
	receiptStatePick receiptState = iota
	receiptStateScanning
	receiptStateResult
)

// ReceiptModel creates products from a photo or screenshot of an order receipt.
type ReceiptModel struct {
	CommonModel
	receiptService *receipt.Service

	state      receiptState
	filePicker filepicker.Model

	created []*product.Product
	status  string
	err     error
}

func NewReceiptModel(svc *receipt.Service) ReceiptModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".png", ".jpg", ".jpeg", ".webp", ".pdf"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ReceiptModel{
		receiptService: svc,
		filePicker:     fp,
	}
}

func (m ReceiptModel) Title() string { return "Scan Receipt" }

func (m ReceiptModel) ShortHelp() string { return "Esc: back | Enter: select" }

func (m ReceiptModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ReceiptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == receiptStateResult {
				m.state = receiptStatePick
				m.err = nil
				m.created = nil

				return m, nil
			}

			return m, Back
		}

	case receiptResultMsg:
		m.state = receiptStateResult
		m.err = msg.err
		m.created = msg.products

		if msg.err == nil {
			m.status = fmt.Sprintf("Created %d products.", len(msg.products))
		}

		return m, nil
	}

	if m.state != receiptStatePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = receiptStateScanning
		m.status = fmt.Sprintf("Reading %s...", filepath.Base(path))

		return m, m.scanCmd(path)
	}

	return m, cmd
}

func (m ReceiptModel) View() string {
	switch m.state {
	case receiptStateScanning:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case receiptStateResult:
		return m.viewResult()
	}

	return lipgloss.NewStyle().Padding(1).Render(
		"Select a receipt image:\n\n" + m.filePicker.View(),
	)
}

func (m ReceiptModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)) +
				"\n\n(Esc to go back)",
		)
	}

	lines := []string{lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status), ""}
	for _, p := range m.created {
		lines = append(lines, fmt.Sprintf("  %s  %8s  %s", FormatDate(p.OrderDate), FormatAmount(p.Paid()), p.Item))
	}

	return style.Render(strings.Join(lines, "\n") + "\n\n(Esc to go back)")
}

type receiptResultMsg struct {
	products []*product.Product
	err      error
}

func (m ReceiptModel) scanCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return receiptResultMsg{err: err}
		}
		defer f.Close()

		contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		ctx, cancel := context.WithTimeout(context.Background(), receiptTimeout)
		defer cancel()

		products, err := m.receiptService.Import(ctx, f, contentType)

		return receiptResultMsg{products: products, err: err}
	}
}
