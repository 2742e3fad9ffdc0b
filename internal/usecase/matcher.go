package usecase

import (
	"log"
	"sort"
	"strings"

	"github.com/hvutuan2514/SkincareApp/internal/domain"
)

// MatchingService determines which required ingredients each catalog
// product covers and ranks products by coverage.
type MatchingService struct {
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service.
func NewMatchingService(enableDebugLogging bool) *MatchingService {
	return &MatchingService{enableDebugLogging: enableDebugLogging}
}

// ScoreProducts returns the catalog ranked by how many of the required
// ingredients each product covers, highest first. Products covering none
// are dropped; ties keep catalog-scan order. Malformed catalog rows are
// skipped with a warning.
func (s *MatchingService) ScoreProducts(required []string, catalog []domain.Product) []domain.ScoredProduct {
	if len(required) == 0 {
		return nil
	}

	scored := make([]domain.ScoredProduct, 0, len(catalog))
	for _, product := range catalog {
		if !validProduct(product) {
			log.Printf("[MATCH] Skipping malformed product record (name=%q)", product.Name)
			continue
		}

		matches := matchingIngredients(required, product)
		if len(matches) == 0 {
			continue
		}

		if s.enableDebugLogging {
			log.Printf("[MATCH] %q covers %d/%d required ingredients", product.Name, len(matches), len(required))
		}

		scored = append(scored, domain.ScoredProduct{
			Product:             product,
			MatchingIngredients: matches,
			MatchCount:          len(matches),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchCount > scored[j].MatchCount
	})

	return scored
}

// GroupByIngredient maps each required ingredient to the ranked products
// that cover that specific ingredient. A product may appear in several
// groups; within a group, products keep the ScoreProducts ranking.
func (s *MatchingService) GroupByIngredient(required []string, catalog []domain.Product) map[string][]domain.ScoredProduct {
	scored := s.ScoreProducts(required, catalog)

	groups := make(map[string][]domain.ScoredProduct, len(required))
	for _, sp := range scored {
		for _, name := range sp.MatchingIngredients {
			groups[name] = append(groups[name], sp)
		}
	}
	return groups
}

// matchingIngredients returns the required ingredients this product covers,
// in required-list order. An ingredient counts as covered when the product
// name or any token of its ingredient list contains it, case-insensitively.
//
// Substring containment is deliberate: it over-matches ("Acid" covers every
// named acid) in favor of recall. Do not tighten to token equality.
func matchingIngredients(required []string, product domain.Product) []string {
	nameLower := strings.ToLower(product.Name)

	tokens := ParseIngredientList(product.RawIngredients)
	for i, token := range tokens {
		tokens[i] = strings.ToLower(token)
	}

	var matches []string
	for _, ingredient := range required {
		needle := strings.ToLower(ingredient)
		if strings.Contains(nameLower, needle) {
			matches = append(matches, ingredient)
			continue
		}
		for _, token := range tokens {
			if strings.Contains(token, needle) {
				matches = append(matches, ingredient)
				break
			}
		}
	}
	return matches
}

// validProduct reports whether a catalog row carries every field the
// matcher needs.
func validProduct(p domain.Product) bool {
	return p.Name != "" && p.Price != "" && p.RawIngredients != ""
}
