package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanProduct reads a product row. Expected column order matches selectProductColumns.
// The stored delta is not read back; it is derived again from paid and received.
func scanProduct(s scanner) (*product.Product, error) {
	var p product.Product

	var url sql.NullString

	var orderDate sql.NullTime

	var paid, received decimal.NullDecimal

	if err := s.Scan(
		&p.ID, &p.Item, &url, &orderDate,
		&p.OrderPlaced, &p.OrderDelivered, &p.ReviewAdded, &p.ReviewLive, &p.ReviewSSSent, &p.IsVoid,
		&paid, &received,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.URL = url.String

	if orderDate.Valid {
		p.OrderDate = product.DateOf(&orderDate.Time)
	}

	p.SetAmounts(paid, received)

	return &p, nil
}

const selectProductColumns = `
	id, item, url, order_date,
	order_placed, order_delivered, review_added, review_live, review_ss_sent, is_void,
	paid, received, created_at, updated_at
`

const insertProduct = `
	INSERT INTO products (
		item, url, order_date,
		order_placed, order_delivered, review_added, review_live, review_ss_sent, is_void,
		paid, received, delta, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

func insertArgs(p *product.Product) []any {
	return []any{
		p.Item,
		nullString(p.URL),
		p.OrderDate,
		p.OrderPlaced,
		p.OrderDelivered,
		p.ReviewAdded,
		p.ReviewLive,
		p.ReviewSSSent,
		p.IsVoid,
		p.Paid(),
		p.Received(),
		p.Delta(),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	err := s.db.QueryRowContext(ctx, insertProduct, insertArgs(p)...).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE id = $1 AND deleted_at IS NULL`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

// ListProducts returns every live product, blank ones included. Display order
// is decided by the caller.
func (s *Store) ListProducts(ctx context.Context) ([]*product.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE products
		SET item = $1, url = $2, order_date = $3,
			order_placed = $4, order_delivered = $5, review_added = $6, review_live = $7,
			review_ss_sent = $8, is_void = $9,
			paid = $10, received = $11, delta = $12, updated_at = NOW()
		WHERE id = $13 AND deleted_at IS NULL
		RETURNING updated_at
	`

	args := append(insertArgs(p), p.ID)

	err := s.db.QueryRowContext(ctx, query, args...).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product.ErrNotFound
		}

		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE products
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if n == 0 {
		return product.ErrNotFound
	}

	return nil
}

// importLockKey serialises concurrent imports so that two batches cannot both
// miss each other's rows in the duplicate check.
func importLockKey() int64 {
	h := fnv.New64a()
	h.Write([]byte("products:import"))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (product.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey()); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

// FindDuplicates returns live products sharing a normalised item name and
// order date with any of params.
func (itx *importTx) FindDuplicates(ctx context.Context, params []product.CreateParams) ([]*product.Product, error) {
	if len(params) == 0 {
		return nil, nil
	}

	keySet := make(map[product.DupKey]struct{}, len(params))
	names := make([]string, 0, len(params))

	for _, p := range params {
		k := product.DupKeyOf(p.Item, p.OrderDate)
		if _, seen := keySet[k]; !seen {
			names = append(names, k.Item)
		}

		keySet[k] = struct{}{}
	}

	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE deleted_at IS NULL AND lower(btrim(item)) = ANY($1)
		ORDER BY created_at ASC`

	rows, err := itx.tx.QueryContext(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		if _, found := keySet[product.DupKeyOf(p.Item, p.OrderDate)]; !found {
			continue
		}

		duplicates = append(duplicates, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateProducts(ctx context.Context, products []*product.Product) error {
	for _, p := range products {
		err := itx.tx.QueryRowContext(ctx, insertProduct, insertArgs(p)...).
			Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating product: %w", err)
		}
	}

	return nil
}
