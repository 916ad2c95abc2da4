package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type Repository interface {
	List(ctx context.Context) ([]*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Product, error)
	CountBySlugs(ctx context.Context, slugs []string) (int, error)
	CreateMany(ctx context.Context, inputs []NewProductInput) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, slug, name, description, price_cents, image, created_at`

func (r *repository) List(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE slug = $1
	`, slug)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return p, nil
}

// GetByIDs resolves every known id in a single round trip. Unknown ids are
// simply absent from the result.
func (r *repository) GetByIDs(ctx context.Context, ids []string) ([]*Product, error) {
	if len(ids) == 0 {
		return []*Product{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ANY($1::uuid[])
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *repository) CountBySlugs(ctx context.Context, slugs []string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM products WHERE slug = ANY($1)
	`, pq.Array(slugs)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by slugs: %w", err)
	}
	return count, nil
}

// CreateMany inserts the given rows in one statement, skipping slugs that
// already exist. It returns the number of rows actually inserted.
func (r *repository) CreateMany(ctx context.Context, inputs []NewProductInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	values := make([]string, 0, len(inputs))
	args := make([]any, 0, len(inputs)*5)
	for i, in := range inputs {
		if in.Slug == "" || in.Name == "" || in.PriceCents < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidProduct, in.Slug)
		}
		base := i * 5
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5))
		args = append(args, in.Slug, in.Name, in.Description, in.PriceCents, in.Image)
	}

	query := `
		INSERT INTO products (slug, name, description, price_cents, image)
		VALUES ` + strings.Join(values, ", ") + `
		ON CONFLICT (slug) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("create products: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("create products: %w", err)
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.PriceCents, &p.Image, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]*Product, error) {
	products := make([]*Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
