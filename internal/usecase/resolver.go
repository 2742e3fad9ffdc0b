package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hvutuan2514/SkincareApp/internal/domain"
)

// defaultConcernSubtype is used when the profile carries no subtype for a
// concern. Subtype lookup keys on the exact concern name, case-sensitive.
const defaultConcernSubtype = "general"

// ResolverService turns a skin profile into the deduplicated, order-stable
// list of ingredient names the user's routine should contain.
type ResolverService struct {
	store              domain.TaxonomyStore
	enableDebugLogging bool
}

// NewResolverService creates a resolver backed by the given taxonomy store.
func NewResolverService(store domain.TaxonomyStore, enableDebugLogging bool) *ResolverService {
	return &ResolverService{
		store:              store,
		enableDebugLogging: enableDebugLogging,
	}
}

// ResolveIngredients resolves the required ingredients for a profile:
// skin-type ingredients first, then concern ingredients in the profile's
// concern order, deduplicated by name keeping the first occurrence.
//
// A missing skin type or concern contributes zero ingredients; only a
// store-level failure aborts resolution.
func (s *ResolverService) ResolveIngredients(ctx context.Context, profile domain.SkinProfile) ([]string, error) {
	typeRefs, err := s.typeIngredients(ctx, profile)
	if err != nil {
		return nil, err
	}

	concernRefs, err := s.concernIngredients(ctx, profile)
	if err != nil {
		return nil, err
	}

	combined := make([]domain.IngredientRef, 0, len(typeRefs)+len(concernRefs))
	combined = append(combined, typeRefs...)
	combined = append(combined, concernRefs...)

	names := dedupeNames(combined)

	if s.enableDebugLogging {
		log.Printf("[RESOLVE] Profile type=%q sensitive=%v concerns=%d -> %d ingredients",
			profile.SkinType, profile.IsSensitive, len(profile.Concerns), len(names))
	}

	return names, nil
}

// typeIngredients looks up the ingredients for the profile's skin type and
// sensitivity. An unknown skin type yields zero ingredients.
func (s *ResolverService) typeIngredients(ctx context.Context, profile domain.SkinProfile) ([]domain.IngredientRef, error) {
	if profile.SkinType == "" {
		return nil, nil
	}

	typeID, err := s.store.GetSkinTypeID(ctx, profile.SkinType)
	if err != nil {
		if errors.Is(err, domain.ErrSkinTypeNotFound) {
			if s.enableDebugLogging {
				log.Printf("[RESOLVE] Unknown skin type %q, skipping type ingredients", profile.SkinType)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("skin type lookup: %w", err)
	}

	refs, err := s.store.GetIngredientsForType(ctx, typeID, profile.IsSensitive)
	if err != nil {
		return nil, fmt.Errorf("type ingredients: %w", err)
	}
	return refs, nil
}

// concernIngredients fans out one lookup per concern. Lookups run
// concurrently; results are concatenated in the original concern order so
// the final ingredient order is deterministic.
func (s *ResolverService) concernIngredients(ctx context.Context, profile domain.SkinProfile) ([]domain.IngredientRef, error) {
	if len(profile.Concerns) == 0 {
		return nil, nil
	}

	results := make([][]domain.IngredientRef, len(profile.Concerns))
	lookupErrs := make([]error, len(profile.Concerns))

	var wg sync.WaitGroup
	for i, concern := range profile.Concerns {
		wg.Add(1)
		go func(i int, concern domain.ConcernRef) {
			defer wg.Done()
			results[i], lookupErrs[i] = s.lookupConcern(ctx, concern, profile.ConcernSubtypes)
		}(i, concern)
	}
	wg.Wait()

	var combined []domain.IngredientRef
	for i := range results {
		if lookupErrs[i] != nil {
			return nil, lookupErrs[i]
		}
		combined = append(combined, results[i]...)
	}
	return combined, nil
}

// lookupConcern resolves one concern's ingredients. An unknown concern name
// contributes zero ingredients so the other concerns still resolve.
func (s *ResolverService) lookupConcern(ctx context.Context, concern domain.ConcernRef, subtypes map[string]string) ([]domain.IngredientRef, error) {
	concernID := concern.ID
	if concernID == 0 {
		id, err := s.store.GetConcernID(ctx, concern.Name)
		if err != nil {
			if errors.Is(err, domain.ErrConcernNotFound) {
				if s.enableDebugLogging {
					log.Printf("[RESOLVE] Unknown concern %q, skipping", concern.Name)
				}
				return nil, nil
			}
			return nil, fmt.Errorf("concern %q lookup: %w", concern.Name, err)
		}
		concernID = id
	}

	subtype := subtypes[concern.Name]
	if subtype == "" {
		subtype = defaultConcernSubtype
	}

	refs, err := s.store.GetIngredientsForConcern(ctx, concernID, subtype)
	if err != nil {
		return nil, fmt.Errorf("concern %q ingredients: %w", concern.Name, err)
	}
	return refs, nil
}

// dedupeNames keeps the first occurrence of each ingredient name and drops
// refs whose name failed to resolve (a broken join for one ingredient must
// not fail the whole resolution).
func dedupeNames(refs []domain.IngredientRef) []string {
	seen := make(map[string]bool, len(refs))
	var names []string
	for _, ref := range refs {
		if ref.Name == "" || seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true
		names = append(names, ref.Name)
	}
	return names
}
