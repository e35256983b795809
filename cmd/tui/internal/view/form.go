package view

import (
	"errors"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

// productFields holds the form bindings. It lives behind a pointer so the
// huh fields keep writing to the same place while the model is copied around.
type productFields struct {
	Item     string
	URL      string
	Date     string
	Paid     string
	Received string
	Stages   []product.Stage
}

func newProductFields() *productFields {
	return &productFields{Stages: []product.Stage{product.StageOrderPlaced}}
}

func fieldsFromProduct(p *product.Product) *productFields {
	f := &productFields{
		Item:     p.Item,
		URL:      p.URL,
		Date:     FormatDate(p.OrderDate),
		Paid:     amountInput(p.Paid().Valid, FormatAmount(p.Paid())),
		Received: amountInput(p.Received().Valid, FormatAmount(p.Received())),
	}

	for _, s := range product.Stages {
		if p.Done(s) {
			f.Stages = append(f.Stages, s)
		}
	}

	return f
}

func amountInput(valid bool, s string) string {
	if !valid {
		return ""
	}

	return s
}

func validateItem(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("item cannot be empty")
	}

	return nil
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if product.ParseDate(s) == nil {
		return errors.New("unrecognised date, try YYYY-MM-DD")
	}

	return nil
}

func validateAmount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}

	if !product.ParseAmount(s).Valid {
		return errors.New("not a number")
	}

	return nil
}

func buildProductForm(title string, f *productFields) *huh.Form {
	stageOptions := make([]huh.Option[product.Stage], 0, len(product.Stages))
	for _, s := range product.Stages {
		stageOptions = append(stageOptions, huh.NewOption(s.Label(), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("item").
				Title(title).
				Placeholder("Item name").
				Value(&f.Item).
				Validate(validateItem),

			huh.NewInput().
				Key("url").
				Title("Product URL").
				Placeholder("https://www.amazon.com/dp/...").
				Value(&f.URL),

			huh.NewInput().
				Key("date").
				Title("Order Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.Date).
				Validate(validateDate),

			huh.NewInput().
				Key("paid").
				Title("Paid").
				Placeholder("0.00").
				Value(&f.Paid).
				Validate(validateAmount),

			huh.NewInput().
				Key("received").
				Title("Received").
				Placeholder("0.00").
				Value(&f.Received).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewMultiSelect[product.Stage]().
				Key("stages").
				Title("Progress").
				Options(stageOptions...).
				Value(&f.Stages),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (f *productFields) stageEdits() []product.Edit {
	edits := make([]product.Edit, 0, len(product.Stages))
	for _, s := range product.Stages {
		edits = append(edits, product.SetStage{Stage: s, Done: slices.Contains(f.Stages, s)})
	}

	return edits
}

func (f *productFields) createParams() product.CreateParams {
	return product.CreateParams{
		Item:      strings.TrimSpace(f.Item),
		URL:       strings.TrimSpace(f.URL),
		OrderDate: product.ParseDate(f.Date),
		Paid:      product.ParseAmount(f.Paid),
		Received:  product.ParseAmount(f.Received),
		Edits:     f.stageEdits(),
	}
}

// edits replaces every editable field. The form always shows all of them.
func (f *productFields) edits() []product.Edit {
	edits := []product.Edit{
		product.SetItem{Item: strings.TrimSpace(f.Item)},
		product.SetURL{URL: strings.TrimSpace(f.URL)},
		product.SetOrderDate{Date: product.ParseDate(f.Date)},
		product.SetPaid{Amount: product.ParseAmount(f.Paid)},
		product.SetReceived{Amount: product.ParseAmount(f.Received)},
	}

	return append(edits, f.stageEdits()...)
}
