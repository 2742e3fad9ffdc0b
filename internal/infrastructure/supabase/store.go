package supabase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hvutuan2514/SkincareApp/internal/domain"
)

// Table row shapes as PostgREST returns them.
type idRow struct {
	ID int64 `json:"id"`
}

type nameRow struct {
	Name string `json:"name"`
}

// ingredientRow mirrors the embedded join on type_to_ingredients /
// concern_to_ingredients: select=ingredients:ingredient_id(id,name).
type ingredientRow struct {
	Ingredients *struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"ingredients"`
}

// productRow mirrors the products table columns.
type productRow struct {
	ProductName  string `json:"product_name"`
	Price        string `json:"price"`
	CleanIngreds string `json:"clean_ingreds"`
	ProductURL   string `json:"product_url"`
}

// GetSkinTypeID looks up the id of a skin type by name.
func (c *Client) GetSkinTypeID(ctx context.Context, name string) (int64, error) {
	params := url.Values{}
	params.Set("select", "id")
	params.Set("name", "eq."+name)

	var rows []idRow
	if err := c.get(ctx, "skin_type", params, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, domain.ErrSkinTypeNotFound
	}
	return rows[0].ID, nil
}

// GetConcernID looks up the id of a skin concern by name. The match is
// exact and case-sensitive.
func (c *Client) GetConcernID(ctx context.Context, name string) (int64, error) {
	params := url.Values{}
	params.Set("select", "id")
	params.Set("name", "eq."+name)

	var rows []idRow
	if err := c.get(ctx, "skin_concerns", params, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, domain.ErrConcernNotFound
	}
	return rows[0].ID, nil
}

// ListConcernNames returns every concern name the store knows about.
func (c *Client) ListConcernNames(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Set("select", "name")

	var rows []nameRow
	if err := c.get(ctx, "skin_concerns", params, &rows); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Name != "" {
			names = append(names, row.Name)
		}
	}
	return names, nil
}

// GetIngredientsForType returns the ingredients mapped to a skin type and
// sensitivity flag.
func (c *Client) GetIngredientsForType(ctx context.Context, skinTypeID int64, isSensitive bool) ([]domain.IngredientRef, error) {
	params := url.Values{}
	params.Set("select", "ingredients:ingredient_id(id,name)")
	params.Set("skin_type_id", fmt.Sprintf("eq.%d", skinTypeID))
	params.Set("is_sensitive", fmt.Sprintf("eq.%t", isSensitive))

	var rows []ingredientRow
	if err := c.get(ctx, "type_to_ingredients", params, &rows); err != nil {
		return nil, err
	}
	return toIngredientRefs(rows), nil
}

// GetIngredientsForConcern returns the ingredients mapped to a concern and
// subtype tag.
func (c *Client) GetIngredientsForConcern(ctx context.Context, concernID int64, subtype string) ([]domain.IngredientRef, error) {
	params := url.Values{}
	params.Set("select", "ingredients:ingredient_id(id,name)")
	params.Set("skin_concern_id", fmt.Sprintf("eq.%d", concernID))
	params.Set("concern_subtype", "eq."+subtype)

	var rows []ingredientRow
	if err := c.get(ctx, "concern_to_ingredients", params, &rows); err != nil {
		return nil, err
	}
	return toIngredientRefs(rows), nil
}

// GetAllProducts returns the full product catalog in one bulk read.
func (c *Client) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	params := url.Values{}
	params.Set("select", "*")

	var rows []productRow
	if err := c.get(ctx, "products", params, &rows); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, domain.Product{
			Name:           row.ProductName,
			Price:          row.Price,
			RawIngredients: row.CleanIngreds,
			URL:            row.ProductURL,
		})
	}
	return products, nil
}

// toIngredientRefs drops rows whose ingredient join came back empty; a
// broken join for one row must not fail the lookup.
func toIngredientRefs(rows []ingredientRow) []domain.IngredientRef {
	refs := make([]domain.IngredientRef, 0, len(rows))
	for _, row := range rows {
		if row.Ingredients == nil || row.Ingredients.Name == "" {
			continue
		}
		refs = append(refs, domain.IngredientRef{
			ID:   row.Ingredients.ID,
			Name: row.Ingredients.Name,
		})
	}
	return refs
}
