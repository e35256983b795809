package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

type dashState int

const (
	dashStateBrowse dashState = iota
	dashStateSearch
	dashStateForm
	dashStateConfirmDelete
)

var (
	statusFilterLabels = map[product.StatusFilter]string{
		product.StatusFilterAll:            "All",
		product.StatusFilterComplete:       "Complete",
		product.StatusFilterPendingRefund:  "Pending Refund",
		product.StatusFilterReviewPending:  "Review Pending",
		product.StatusFilterReviewNotAdded: "Review Not Added",
		product.StatusFilterNew:            "New",
		product.StatusFilterVoid:           "Void",
	}
	deltaFilterLabels = map[product.DeltaFilter]string{
		product.DeltaFilterAll:      "All",
		product.DeltaFilterPositive: "Positive",
		product.DeltaFilterNegative: "Negative",
		product.DeltaFilterZero:     "Zero",
	}
)

// DashboardModel shows the summary cards above the filtered, sorted product
// table. Products are loaded once and filtered in memory; the store is only
// hit again after a change.
type DashboardModel struct {
	CommonModel
	productService *product.Service

	state  dashState
	table  table.Model
	search textinput.Model

	all      []*product.Product
	view     product.View
	criteria product.Criteria

	statusIdx int
	deltaIdx  int

	form    *huh.Form
	fields  *productFields
	editing *product.Product

	loading bool
	err     error
	status  string
}

func NewDashboardModel(svc *product.Service) DashboardModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Item", Width: 36},
		{Title: "Paid", Width: 10},
		{Title: "Received", Width: 10},
		{Title: "Delta", Width: 10},
		{Title: "Status", Width: 18},
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

	search := textinput.New()
	search.Placeholder = "Search items"
	search.Prompt = "/ "
	search.Width = 30

	return DashboardModel{
		productService: svc,
		table:          t,
		search:         search,
		loading:        true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	switch m.state {
	case dashStateSearch:
		return "Type to search | Enter: done | Esc: clear"
	case dashStateForm:
		return "Navigate form | Esc: cancel"
	case dashStateConfirmDelete:
		return "y: delete | n: keep"
	}

	return "Esc: back | /: search | s: status | d: delta | c: clear | a: add | e: edit | v: void | x: delete | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.all = msg.products
		m.rebuild()

		return m, nil

	case dashSaveMsg:
		m.state = dashStateBrowse
		m.form = nil
		m.fields = nil
		m.editing = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.status

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-16, 5))

		return m, nil
	}

	switch m.state {
	case dashStateSearch:
		return m.updateSearch(msg)
	case dashStateForm:
		return m.updateForm(msg)
	case dashStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m.updateBrowse(msg)
}

func (m DashboardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = dashStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(product.StatusFilters)
			m.criteria.Status = product.StatusFilters[m.statusIdx]
			m.rebuild()

			return m, nil
		case "d":
			m.deltaIdx = (m.deltaIdx + 1) % len(product.DeltaFilters)
			m.criteria.Delta = product.DeltaFilters[m.deltaIdx]
			m.rebuild()

			return m, nil
		case "c":
			m.clearFilters()
			return m, nil
		case "a":
			return m.openForm(nil)
		case "e", "enter":
			if p := m.selected(); p != nil {
				return m.openForm(p)
			}

			return m, nil
		case "v":
			if p := m.selected(); p != nil && !p.IsVoid {
				return m, m.voidCmd(p.ID, p.Item)
			}

			return m, nil
		case "x":
			if m.selected() != nil {
				m.state = dashStateConfirmDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			m.criteria.Search = ""
			fallthrough
		case tea.KeyEnter:
			m.state = dashStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.rebuild()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if m.search.Value() != m.criteria.Search {
		m.criteria.Search = m.search.Value()
		m.rebuild()
	}

	return m, cmd
}

func (m DashboardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = dashStateBrowse
		m.form = nil
		m.fields = nil
		m.editing = nil
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

	return m, m.saveCmd()
}

func (m DashboardModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		if p := m.selected(); p != nil {
			return m, m.deleteCmd(p.ID, p.Item)
		}

		fallthrough
	case "n", "N", "esc":
		m.state = dashStateBrowse
	}

	return m, nil
}

func (m DashboardModel) openForm(p *product.Product) (tea.Model, tea.Cmd) {
	title := "New Product"
	m.fields = newProductFields()

	if p != nil {
		title = "Edit Product"
		m.fields = fieldsFromProduct(p)
	}

	m.editing = p
	m.form = buildProductForm(title, m.fields)
	m.state = dashStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m *DashboardModel) clearFilters() {
	m.criteria = product.Criteria{}
	m.statusIdx = 0
	m.deltaIdx = 0
	m.search.SetValue("")
	m.rebuild()
}

// rebuild recomputes the view from the loaded products and the current criteria.
func (m *DashboardModel) rebuild() {
	m.view = product.BuildView(m.all, m.criteria)

	rows := make([]table.Row, 0, len(m.view.Products))
	for _, p := range m.view.Products {
		rows = append(rows, table.Row{
			FormatDate(p.OrderDate),
			p.Item,
			FormatAmount(p.Paid()),
			FormatAmount(p.Received()),
			FormatDelta(p.Delta()),
			product.Classify(p).Label(),
		})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m DashboardModel) selected() *product.Product {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.view.Products) {
		return nil
	}

	return m.view.Products[idx]
}

func (m DashboardModel) View() string {
	if m.loading && m.all == nil {
		return lipgloss.NewStyle().Padding(2).Render("Loading products...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	filters := fmt.Sprintf(
		"Filter: [s] Status: %s | [d] Delta: %s | %s",
		activeStyle(statusFilterLabels[m.criteria.Status]),
		activeStyle(deltaFilterLabels[m.criteria.Delta]),
		m.search.View(),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.viewCards(),
		lipgloss.NewStyle().PaddingTop(1).PaddingBottom(1).Render(filters),
		tableView,
		m.viewDetail(),
	)

	if m.state == dashStateForm && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.state == dashStateConfirmDelete {
		if p := m.selected(); p != nil {
			content += "\n" + negativeStyle.Render(fmt.Sprintf("Delete %q? (y/n)", p.Item))
		}
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

var cardStyle = lipgloss.NewStyle().
	Padding(0, 2).
	MarginRight(1).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240"))

func card(label, value string) string {
	return cardStyle.Render(faintStyle.Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(value))
}

func (m DashboardModel) viewCards() string {
	sum := m.view.Summary

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Products", fmt.Sprintf("%d", sum.TotalProducts)),
		card("Completed", fmt.Sprintf("%d", sum.CompletedOrders)),
		card("Paid", sum.TotalPaid.StringFixed(2)),
		card("Received", sum.TotalReceived.StringFixed(2)),
		card("Remaining", sum.RemainingRefund.StringFixed(2)),
		card("Net", deltaStyle(sum.NetDelta).Render(FormatDelta(decimal.NewNullDecimal(sum.NetDelta)))),
	)
}

// viewDetail shows the selected product's progress under the table.
func (m DashboardModel) viewDetail() string {
	p := m.selected()
	if p == nil {
		return faintStyle.Render("No products match the current filters.")
	}

	var stages []string

	for _, s := range product.Stages {
		mark := "[ ]"
		if p.Done(s) {
			mark = "[x]"
		}

		stages = append(stages, mark+" "+s.Label())
	}

	delta := FormatDelta(p.Delta())
	if d := p.Delta(); d.Valid {
		delta = deltaStyle(d.Decimal).Render(delta)
	}

	lines := []string{
		fmt.Sprintf("%s  %s  Delta: %s", lipgloss.NewStyle().Bold(true).Render(p.Item), statusBadge(product.Classify(p)), delta),
		strings.Join(stages, "  "),
	}

	if p.URL != "" {
		lines = append(lines, faintStyle.Render(p.URL))
	}

	return lipgloss.NewStyle().PaddingTop(1).Render(strings.Join(lines, "\n"))
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// Messages

type dashLoadMsg struct {
	products []*product.Product
	err      error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		products, err := m.productService.List(ctx)

		return dashLoadMsg{products: products, err: err}
	}
}

type dashSaveMsg struct {
	status string
	err    error
}

func (m DashboardModel) saveCmd() tea.Cmd {
	fields := m.fields
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			p, err := m.productService.Create(ctx, fields.createParams())
			if err != nil {
				return dashSaveMsg{err: err}
			}

			return dashSaveMsg{status: fmt.Sprintf("Added %s", p.Item)}
		}

		p, err := m.productService.Edit(ctx, editing.ID, fields.edits()...)
		if err != nil {
			return dashSaveMsg{err: err}
		}

		return dashSaveMsg{status: fmt.Sprintf("Saved %s", p.Item)}
	}
}

func (m DashboardModel) voidCmd(id uuid.UUID, item string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.productService.MarkVoid(ctx, id); err != nil {
			return dashSaveMsg{err: err}
		}

		return dashSaveMsg{status: fmt.Sprintf("Marked %s as void", item)}
	}
}

func (m DashboardModel) deleteCmd(id uuid.UUID, item string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.productService.Delete(ctx, id); err != nil {
			return dashSaveMsg{err: err}
		}

		return dashSaveMsg{status: fmt.Sprintf("Deleted %s", item)}
	}
}
