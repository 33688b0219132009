package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"price-advisor/internal/models"
)

// productColumns lists the selected columns. Text fields are coalesced to
// empty strings at the SQL boundary so a sparse row never surfaces as a
// scan failure; id is stringified because the metadata contract wants
// string ids regardless of the column type.
const productColumns = `id::text,
	COALESCE(title, ''), COALESCE(description, ''), COALESCE(category, ''),
	COALESCE(type, ''), price, COALESCE(price_type, ''),
	COALESCE(condition, ''), COALESCE(visibility, ''),
	COALESCE(university, ''), COALESCE(department, ''),
	COALESCE(batch, ''), COALESCE(image_url, '')`

// PostgresProductRepository implements ProductRepository against the hosted
// Postgres products table
type PostgresProductRepository struct {
	pool       *pgxpool.Pool
	table      string
	fetchLimit int
}

// NewPostgresProductRepository connects a product repository to Postgres.
// fetchLimit bounds FetchAll; it defaults to 10000 when unset.
func NewPostgresProductRepository(ctx context.Context, connString, table string, fetchLimit int) (*PostgresProductRepository, error) {
	if table == "" {
		table = "products"
	}
	if fetchLimit <= 0 {
		fetchLimit = 10000
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, NewProductRepositoryError("connect", err, "")
	}

	return &PostgresProductRepository{
		pool:       pool,
		table:      table,
		fetchLimit: fetchLimit,
	}, nil
}

// FetchAll returns up to the configured maximum number of products
func (r *PostgresProductRepository) FetchAll(ctx context.Context) ([]models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM %s LIMIT $1", productColumns, r.table)

	rows, err := r.pool.Query(ctx, query, r.fetchLimit)
	if err != nil {
		return nil, NewProductRepositoryError("fetch_all", err, "")
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Search matches the query as a case-insensitive substring of the title,
// falling back to the description when the title yields nothing
func (r *PostgresProductRepository) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 10
	}

	products, err := r.searchField(ctx, "title", query, limit)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return r.searchField(ctx, "description", query, limit)
	}
	return products, nil
}

func (r *PostgresProductRepository) searchField(ctx context.Context, field, query string, limit int) ([]models.Product, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE %s ILIKE '%%' || $1 || '%%' LIMIT $2",
		productColumns, r.table, field)

	rows, err := r.pool.Query(ctx, stmt, query, limit)
	if err != nil {
		return nil, NewProductRepositoryError("search", err, "search on "+field+" failed: "+err.Error())
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category,
			&p.Type, &p.Price, &p.PriceType, &p.Condition, &p.Visibility,
			&p.University, &p.Department, &p.Batch, &p.ImageURL)
		if err != nil {
			return nil, NewProductRepositoryError("scan", err, "")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, NewProductRepositoryError("rows", err, "")
	}
	return products, nil
}

// Ping checks if the store is reachable
func (r *PostgresProductRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return NewProductRepositoryError("ping", err, "")
	}
	return nil
}

// Close releases the connection pool
func (r *PostgresProductRepository) Close() {
	r.pool.Close()
}
