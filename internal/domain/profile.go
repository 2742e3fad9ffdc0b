package domain

// SkinProfile captures the quiz answers (or the decoded image analysis)
// that drive one recommendation computation. Immutable once submitted.
type SkinProfile struct {
	SkinType        string            `json:"skinType"`
	SkinColor       string            `json:"skinColor,omitempty"`
	IsSensitive     bool              `json:"isSensitive"`
	Concerns        []ConcernRef      `json:"concerns"`
	ConcernSubtypes map[string]string `json:"concernSubtypes,omitempty"`
	Routine         []string          `json:"routine,omitempty"`
}

// ConcernRef identifies a skin concern category. Concern names are the
// external-facing key: subtype lookups match them exactly, case-sensitive.
type ConcernRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// IngredientRef is a single ingredient row from the taxonomy store.
type IngredientRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}
