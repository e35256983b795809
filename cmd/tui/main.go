package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/refundtrack/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/refundtrack/internal/config"
	"github.com/MrJamesThe3rd/refundtrack/internal/database"
	"github.com/MrJamesThe3rd/refundtrack/internal/export"
	"github.com/MrJamesThe3rd/refundtrack/internal/importer"
	"github.com/MrJamesThe3rd/refundtrack/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/refundtrack/internal/matching/store"
	"github.com/MrJamesThe3rd/refundtrack/internal/product"
	productStore "github.com/MrJamesThe3rd/refundtrack/internal/product/store"
	"github.com/MrJamesThe3rd/refundtrack/internal/receipt"
	"github.com/MrJamesThe3rd/refundtrack/internal/receipt/ocr"
)

type model struct {
	appName         string
	productService  *product.Service
	matchingService *matching.Service
	importService   *importer.Service
	exportService   *export.Service
	receiptService  *receipt.Service

	currentView View

	dashboardView view.DashboardModel
	importView    view.ImportModel
	reviewView    view.ReviewModel
	receiptView   view.ReceiptModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewImport    View = 2
	ViewReview    View = 3
	ViewReceipt   View = 4
	ViewExport    View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	productSvc := product.NewService(productStore.New(db))
	matchSvc := matching.NewService(matchingStore.New(db))
	impSvc := importer.NewService()
	expSvc := export.NewService(productSvc)
	receiptSvc := receipt.NewService(ocr.New(cfg.OCR.URL, cfg.OCR.Token, cfg.OCR.Timeout), matchSvc, productSvc)

	return model{
		appName:         cfg.App.Name,
		productService:  productSvc,
		matchingService: matchSvc,
		importService:   impSvc,
		exportService:   expSvc,
		receiptService:  receiptSvc,
		currentView:     ViewMenu,
		dashboardView:   view.NewDashboardModel(productSvc),
		importView:      view.NewImportModel(productSvc, impSvc, matchSvc),
		reviewView:      view.NewReviewModel(productSvc, matchSvc),
		receiptView:     view.NewReceiptModel(receiptSvc),
		exportView:      view.NewExportModel(expSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.productService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.productService, m.importService, m.matchingService)

				return m, m.importView.Init()
			case "3":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.productService, m.matchingService)

				return m, m.reviewView.Init()
			case "4":
				m.currentView = ViewReceipt
				m.receiptView = view.NewReceiptModel(m.receiptService)

				return m, m.receiptView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	case ViewReceipt:
		var newModel tea.Model
		newModel, cmd = m.receiptView.Update(msg)
		m.receiptView = newModel.(view.ReceiptModel)
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
			m.appName + "\n\n" +
				"1. Dashboard\n" +
				"2. Import Products\n" +
				"3. Tidy Item Names\n" +
				"4. Scan Receipt\n" +
				"5. Export Products\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewImport:
		return m.importView.View()
	case ViewReview:
		return m.reviewView.View()
	case ViewReceipt:
		return m.receiptView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
