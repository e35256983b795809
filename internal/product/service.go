package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	ListProducts(ctx context.Context) ([]*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Product, error)
	CreateProducts(ctx context.Context, products []*Product) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if strings.TrimSpace(params.Item) == "" {
		return nil, ErrEmptyItem
	}

	p := New(params)
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// List returns every stored product, blank ones included.
func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}

// Edit applies edits to the stored product and saves it. Delta is recomputed
// while the edits are applied, before the update reaches storage.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, edits ...Edit) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	Apply(p, edits...)

	if p.IsBlank() {
		return nil, ErrEmptyItem
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// MarkVoid flags the product as abandoned.
func (s *Service) MarkVoid(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.Edit(ctx, id, MarkVoid{})
}

// Dashboard fetches one snapshot and derives the summary and the visible rows from it.
func (s *Service) Dashboard(ctx context.Context, c Criteria) (*View, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	view := BuildView(products, c)

	return &view, nil
}

type ImportResult struct {
	Imported  []*Product
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Product
}

// ImportBatch creates params as new products unless some of them look like
// products already tracked. In that case nothing is written and the split
// between new and conflicting params is returned for confirmation.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	if err := checkItems(params); err != nil {
		return nil, err
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[DupKey]*Product, len(duplicates))
	for _, d := range duplicates {
		lookup[DupKeyOf(d.Item, d.OrderDate)] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		existing, found := lookup[DupKeyOf(p.Item, p.OrderDate)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	products := paramsToProducts(newParams)
	if err := itx.CreateProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("create products: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: products}, nil
}

// CreateBatch creates every param in one transaction without duplicate checks.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Product, error) {
	if len(params) == 0 {
		return nil, nil
	}

	if err := checkItems(params); err != nil {
		return nil, err
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	products := paramsToProducts(params)
	if err := itx.CreateProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("create products: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return products, nil
}

func checkItems(params []CreateParams) error {
	for _, p := range params {
		if strings.TrimSpace(p.Item) == "" {
			return ErrEmptyItem
		}
	}

	return nil
}

// DupKey identifies products that are probably the same purchase.
type DupKey struct {
	Item      string
	OrderDate string
}

func DupKeyOf(item string, orderDate *time.Time) DupKey {
	k := DupKey{Item: strings.ToLower(strings.TrimSpace(item))}
	if orderDate != nil {
		k.OrderDate = orderDate.Format(time.DateOnly)
	}

	return k
}

func paramsToProducts(params []CreateParams) []*Product {
	products := make([]*Product, len(params))
	for i, p := range params {
		products[i] = New(p)
	}

	return products
}
