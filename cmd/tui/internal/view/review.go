package view

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/refundtrack/internal/matching"
	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

// longNameThreshold is the item length above which a name is assumed to be a
// raw listing title that needs shortening.
const longNameThreshold = 40

// ReviewModel walks through products whose names look like raw listing titles
// and lets the user shorten them. Every rename is remembered as a mapping so
// later imports pick the short name up automatically.
type ReviewModel struct {
	CommonModel
	productService  *product.Service
	matchingService *matching.Service

	queue   []*product.Product
	current *product.Product
	total   int

	nameInput    textinput.Model
	patternInput textinput.Model
	focusIndex   int // 0: name, 1: pattern

	status  string
	loading bool
}

func NewReviewModel(productSvc *product.Service, matchSvc *matching.Service) ReviewModel {
	name := textinput.New()
	name.Placeholder = "Short name"
	name.Prompt = "Name:    "
	name.Width = 50

	pattern := textinput.New()
	pattern.Placeholder = "Text to recognise this listing by"
	pattern.Prompt = "Pattern: "
	pattern.Width = 50

	return ReviewModel{
		productService:  productSvc,
		matchingService: matchSvc,
		nameInput:       name,
		patternInput:    pattern,
		loading:         true,
	}
}

func (m ReviewModel) Title() string { return "Tidy Item Names" }

func (m ReviewModel) ShortHelp() string {
	return "Enter: save & next | Tab: switch field | ctrl+n: skip | Esc: back"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "tab", "shift+tab":
			m.focusIndex = (m.focusIndex + 1) % 2
			if m.focusIndex == 0 {
				m.patternInput.Blur()
				return m, m.nameInput.Focus()
			}

			m.nameInput.Blur()

			return m, m.patternInput.Focus()
		case "ctrl+n":
			m.next()
			return m, textinput.Blink
		case "enter":
			if m.current != nil {
				return m, m.saveCmd(m.nameInput.Value(), m.patternInput.Value())
			}
		}

	case reviewLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading products: %v", msg.err)
			return m, nil
		}

		m.queue = msg.products
		m.total = len(m.queue)
		m.next()

		return m, textinput.Blink

	case reviewSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.next()

		return m, textinput.Blink
	}

	if m.current == nil {
		return m, nil
	}

	if m.focusIndex == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.patternInput, cmd = m.patternInput.Update(msg)
	}

	return m, cmd
}

func (m *ReviewModel) next() {
	if len(m.queue) == 0 {
		m.current = nil
		m.status = "All done! Every item has a short name."
		m.nameInput.Blur()
		m.patternInput.Blur()

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.status = fmt.Sprintf("Reviewing %d/%d", m.total-len(m.queue), m.total)

	ctx, cancel := DbCtx()
	defer cancel()

	suggestion := ""
	if s, err := m.matchingService.Suggest(ctx, m.current.Item); err == nil {
		suggestion = s
	}

	if suggestion == "" {
		suggestion = m.current.Item
	}

	m.nameInput.SetValue(suggestion)
	m.patternInput.SetValue(m.current.Item)
	m.focusIndex = 0
	m.patternInput.Blur()
	m.nameInput.Focus()
}

func (m ReviewModel) View() string {
	var content string

	switch {
	case m.loading:
		content = "Loading products..."
	case m.current != nil:
		info := fmt.Sprintf("Date: %s\nPaid: %s\nRaw:  %s\n",
			FormatDate(m.current.OrderDate),
			FormatAmount(m.current.Paid()),
			m.current.Item,
		)
		content = fmt.Sprintf("%s\n\n%s\n%s\n%s\n\n(Enter to save & next, Esc to quit)",
			m.status, info, m.nameInput.View(), m.patternInput.View())
	default:
		content = m.status + "\n\n(Esc to back)"
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type reviewLoadMsg struct {
	products []*product.Product
	err      error
}

func (m ReviewModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		view, err := m.productService.Dashboard(ctx, product.Criteria{})
		if err != nil {
			return reviewLoadMsg{err: err}
		}

		var long []*product.Product

		for _, p := range view.Products {
			if !p.IsVoid && utf8.RuneCountInString(p.Item) > longNameThreshold {
				long = append(long, p)
			}
		}

		return reviewLoadMsg{products: long}
	}
}

type reviewSaveMsg struct {
	err error
}

func (m ReviewModel) saveCmd(name, pattern string) tea.Cmd {
	current := m.current
	name = strings.TrimSpace(name)
	pattern = strings.TrimSpace(pattern)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if name == "" || name == current.Item {
			return reviewSaveMsg{}
		}

		if pattern != "" {
			if err := m.matchingService.Learn(ctx, pattern, name); err != nil {
				return reviewSaveMsg{err: err}
			}
		}

		_, err := m.productService.Edit(ctx, current.ID, product.SetItem{Item: name})

		return reviewSaveMsg{err: err}
	}
}
