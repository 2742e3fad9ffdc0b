package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // postgres driver

	"github.com/hvutuan2514/SkincareApp/internal/domain"
)

// Store implements domain.TaxonomyStore over a Postgres database holding
// the same tables the Supabase project exposes. Used for self-hosted
// deployments and the catalog import tool.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetSkinTypeID looks up the id of a skin type by name.
func (s *Store) GetSkinTypeID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM skin_type WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrSkinTypeNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

// GetConcernID looks up the id of a skin concern by name (exact match).
func (s *Store) GetConcernID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM skin_concerns WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrConcernNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

// ListConcernNames returns every concern name the store knows about.
func (s *Store) ListConcernNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM skin_concerns ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan concern name: %w", err)
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names, rows.Err()
}

// GetIngredientsForType returns the ingredients mapped to a skin type and
// sensitivity flag.
func (s *Store) GetIngredientsForType(ctx context.Context, skinTypeID int64, isSensitive bool) ([]domain.IngredientRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.name
		FROM type_to_ingredients t
		JOIN ingredients i ON i.id = t.ingredient_id
		WHERE t.skin_type_id = $1 AND t.is_sensitive = $2`,
		skinTypeID, isSensitive)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	return scanIngredients(rows)
}

// GetIngredientsForConcern returns the ingredients mapped to a concern and
// subtype tag.
func (s *Store) GetIngredientsForConcern(ctx context.Context, concernID int64, subtype string) ([]domain.IngredientRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.name
		FROM concern_to_ingredients c
		JOIN ingredients i ON i.id = c.ingredient_id
		WHERE c.skin_concern_id = $1 AND c.concern_subtype = $2`,
		concernID, subtype)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	return scanIngredients(rows)
}

// GetAllProducts returns the full product catalog in one bulk read.
func (s *Store) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_name, price, clean_ingreds, product_url FROM products`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.Name, &p.Price, &p.RawIngredients, &p.URL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanIngredients(rows *sql.Rows) ([]domain.IngredientRef, error) {
	var refs []domain.IngredientRef
	for rows.Next() {
		var ref domain.IngredientRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
