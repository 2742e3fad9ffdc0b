package domain

// Product is a single catalog row, fetched fresh per recommendation request.
type Product struct {
	Name  string `json:"name"`
	Price string `json:"price"` // currency-formatted, e.g. "$14.24"
	// RawIngredients is the catalog's textual list encoding,
	// e.g. "['Water', 'Glycerin']"
	RawIngredients string `json:"rawIngredients"`
	URL            string `json:"url,omitempty"`
}

// ScoredProduct pairs a product with the required ingredients it covers.
// MatchCount always equals len(MatchingIngredients).
type ScoredProduct struct {
	Product             Product  `json:"product"`
	MatchingIngredients []string `json:"matchingIngredients"`
	MatchCount          int      `json:"matchCount"`
}

// AnalysisResult is the decoded output of the image concern classifier.
type AnalysisResult struct {
	SkinType string       `json:"skinType"`
	Concerns []ConcernRef `json:"concerns"`
}

// Recommendation is the full result of one recommendation computation:
// the profile it was computed for, the resolved required ingredients, and
// the ranked products that cover them.
type Recommendation struct {
	Profile     SkinProfile     `json:"profile"`
	Ingredients []string        `json:"ingredients"`
	Products    []ScoredProduct `json:"products"`
}

// GroupedRecommendation is the per-ingredient shape of the same result:
// each required ingredient maps to the ranked products that satisfy it.
// A product may legitimately appear in multiple groups.
type GroupedRecommendation struct {
	Profile     SkinProfile                `json:"profile"`
	Ingredients []string                   `json:"ingredients"`
	Products    map[string][]ScoredProduct `json:"products"`
}
