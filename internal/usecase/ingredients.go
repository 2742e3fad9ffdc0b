package usecase

import "strings"

// ingredientStripper removes the punctuation the catalog uses to encode
// ingredient lists as text, e.g. "['Water', 'Glycerin']".
var ingredientStripper = strings.NewReplacer("[", "", "]", "", "'", "", `"`, "")

// ParseIngredientList turns a raw delimited ingredient string into a clean
// ordered list of tokens. Accepts either the bracketed quoted-list encoding
// or plain comma-separated text; returns nil when nothing remains.
//
// Splitting happens on the literal ", " separator, so an ingredient name
// containing a comma-space is mis-split. Catalog rows are encoded upstream
// with exactly that separator; keep the behavior as-is.
func ParseIngredientList(raw string) []string {
	cleaned := ingredientStripper.Replace(raw)
	if strings.TrimSpace(cleaned) == "" {
		return nil
	}

	parts := strings.Split(cleaned, ", ")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}
