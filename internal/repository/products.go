package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"PANTRY-TRACKER/internal/dbx"
	"PANTRY-TRACKER/internal/models"
)

// ProductRepository stores and retrieves pantry products.
type ProductRepository interface {
	ListByOwner(ctx context.Context, userID int64) ([]models.Product, error)
	ListRanOutByOwner(ctx context.Context, userID int64) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	Increment(ctx context.Context, id int64) error
	Decrement(ctx context.Context, id int64) error
}

// PostgresProductRepository is the PostgreSQL-backed ProductRepository.
type PostgresProductRepository struct {
	db dbx.DBTX
}

// NewPostgresProductRepository creates a new PostgresProductRepository instance
func NewPostgresProductRepository(db dbx.DBTX) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// ListByOwner returns all products owned by userID, ordered by name.
func (r *PostgresProductRepository) ListByOwner(ctx context.Context, userID int64) ([]models.Product, error) {
	query :=
		`SELECT id, userid, name, category, qty FROM products
		 WHERE userid = $1
		 ORDER BY name ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListRanOutByOwner returns the owner's products whose quantity is zero,
// ordered by name.
func (r *PostgresProductRepository) ListRanOutByOwner(ctx context.Context, userID int64) ([]models.Product, error) {
	query :=
		`SELECT id, userid, name, category, qty FROM products
		 WHERE userid = $1 AND qty = 0
		 ORDER BY name ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByID looks a product up by primary key.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query :=
		`SELECT id, userid, name, category, qty FROM products
		 WHERE id = $1
		 `

	product := &models.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.UserID, &product.Name, &product.Category, &product.Qty)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

// Create inserts the product and fills in the generated id.
func (r *PostgresProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	query :=
		`INSERT INTO products (userid, name, category, qty)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		product.UserID, product.Name, product.Category, product.Qty).Scan(&product.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

// Delete removes the product. Deleting a product that no longer exists
// returns ErrNotFound.
func (r *PostgresProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(result)
}

// Increment adds one to the product's quantity in a single statement, so
// concurrent updates cannot lose writes.
func (r *PostgresProductRepository) Increment(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET qty = qty + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(result)
}

// Decrement subtracts one from the product's quantity, clamped at zero, in
// a single statement.
func (r *PostgresProductRepository) Decrement(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET qty = GREATEST(qty - 1, 0) WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(result)
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Category, &p.Qty); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return products, nil
}

// requireRow maps a zero-row write to ErrNotFound.
func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
