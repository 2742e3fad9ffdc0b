package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/hvutuan2514/SkincareApp/internal/domain"
)

// RecommendationConfig holds configuration for the recommendation service.
type RecommendationConfig struct {
	EnableDebugLogging bool
}

// RecommendationService orchestrates one recommendation computation:
// resolve required ingredients, fetch the catalog, score and rank.
// Each computation is pure given its inputs and a catalog snapshot; the
// service holds no per-request state.
type RecommendationService struct {
	store      domain.TaxonomyStore
	classifier domain.ConcernClassifier
	resolver   *ResolverService
	matcher    *MatchingService
}

// NewRecommendationService creates a recommendation service. The classifier
// may be nil when image analysis is not configured.
func NewRecommendationService(
	store domain.TaxonomyStore,
	classifier domain.ConcernClassifier,
	config RecommendationConfig,
) *RecommendationService {
	return &RecommendationService{
		store:      store,
		classifier: classifier,
		resolver:   NewResolverService(store, config.EnableDebugLogging),
		matcher:    NewMatchingService(config.EnableDebugLogging),
	}
}

// Recommend resolves the required ingredients for a profile, fetches the
// catalog once, and returns the flat ranked product list. Zero resolved
// ingredients or zero matching products are normal empty results.
func (s *RecommendationService) Recommend(ctx context.Context, profile domain.SkinProfile) (*domain.Recommendation, error) {
	ingredients, err := s.resolveForProfile(ctx, profile)
	if err != nil {
		return nil, err
	}

	rec := &domain.Recommendation{Profile: profile, Ingredients: ingredients}
	if len(ingredients) == 0 {
		return rec, nil
	}

	catalog, err := s.store.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product catalog: %w", err)
	}

	rec.Products = s.matcher.ScoreProducts(ingredients, catalog)
	return rec, nil
}

// RecommendGrouped is the per-ingredient variant of Recommend: each
// resolved ingredient maps to the ranked products that satisfy it.
func (s *RecommendationService) RecommendGrouped(ctx context.Context, profile domain.SkinProfile) (*domain.GroupedRecommendation, error) {
	ingredients, err := s.resolveForProfile(ctx, profile)
	if err != nil {
		return nil, err
	}

	rec := &domain.GroupedRecommendation{Profile: profile, Ingredients: ingredients}
	if len(ingredients) == 0 {
		return rec, nil
	}

	catalog, err := s.store.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product catalog: %w", err)
	}

	rec.Products = s.matcher.GroupByIngredient(ingredients, catalog)
	return rec, nil
}

// AnalyzeSkin runs the image classifier against the store's known concern
// list, maps the detected concerns back to store IDs, and recommends
// products for the resulting profile. A clear-skin analysis (no concerns,
// no detectable type) is a normal empty result.
func (s *RecommendationService) AnalyzeSkin(ctx context.Context, image []byte, mimeType string) (*domain.Recommendation, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	if s.classifier == nil {
		return nil, domain.ErrClassifierUnavailable
	}

	known, err := s.store.ListConcernNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("concern list: %w", err)
	}

	analysis, err := s.classifier.AnalyzeImage(ctx, image, mimeType, known)
	if err != nil {
		return nil, err
	}

	profile := domain.SkinProfile{
		SkinType: analysis.SkinType,
		Concerns: s.resolveConcernIDs(ctx, analysis.Concerns),
	}

	if profile.SkinType == "" && len(profile.Concerns) == 0 {
		return &domain.Recommendation{Profile: profile}, nil
	}
	return s.Recommend(ctx, profile)
}

// resolveForProfile validates the profile and resolves its ingredients.
func (s *RecommendationService) resolveForProfile(ctx context.Context, profile domain.SkinProfile) ([]string, error) {
	if profile.SkinType == "" && len(profile.Concerns) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	return s.resolver.ResolveIngredients(ctx, profile)
}

// resolveConcernIDs looks up store IDs for the classifier's concern names.
// Unknown names are dropped; the rest of the analysis still counts.
func (s *RecommendationService) resolveConcernIDs(ctx context.Context, concerns []domain.ConcernRef) []domain.ConcernRef {
	resolved := make([]domain.ConcernRef, 0, len(concerns))
	for _, concern := range concerns {
		if concern.ID != 0 {
			resolved = append(resolved, concern)
			continue
		}
		id, err := s.store.GetConcernID(ctx, concern.Name)
		if err != nil {
			log.Printf("[ANALYZE] Dropping unrecognized concern %q: %v", concern.Name, err)
			continue
		}
		resolved = append(resolved, domain.ConcernRef{ID: id, Name: concern.Name})
	}
	return resolved
}
