package domain

import "context"

// TaxonomyStore defines the keyed lookups the recommendation core needs.
// The core is agnostic to the backing transport (PostgREST, SQL, in-process).
type TaxonomyStore interface {
	GetSkinTypeID(ctx context.Context, name string) (int64, error)
	GetConcernID(ctx context.Context, name string) (int64, error)
	ListConcernNames(ctx context.Context) ([]string, error)
	GetIngredientsForType(ctx context.Context, skinTypeID int64, isSensitive bool) ([]IngredientRef, error)
	GetIngredientsForConcern(ctx context.Context, concernID int64, subtype string) ([]IngredientRef, error)
	GetAllProducts(ctx context.Context) ([]Product, error)
}

// ConcernClassifier analyzes a facial image and reports which of the known
// concerns are visible, plus a detected skin type.
type ConcernClassifier interface {
	AnalyzeImage(ctx context.Context, image []byte, mimeType string, knownConcerns []string) (*AnalysisResult, error)
}
