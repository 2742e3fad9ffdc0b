package usecase

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/hvutuan2514/SkincareApp/internal/domain"
)

// nonPriceCharsRegex strips currency symbols and any other non-numeric
// characters from a price field before comparison.
var nonPriceCharsRegex = regexp.MustCompile(`[^\d.]`)

// PriceRange is a validated min/max bound pair. A nil side is unbounded.
type PriceRange struct {
	Min *float64
	Max *float64
}

// ParsePriceRange validates user-supplied price bounds. An empty string
// means no bound on that side; a supplied bound must be a positive number,
// and min must not exceed max.
func ParsePriceRange(minPrice, maxPrice string) (PriceRange, error) {
	var r PriceRange

	if minPrice != "" {
		min, err := parseBound(minPrice, "minimum")
		if err != nil {
			return PriceRange{}, err
		}
		r.Min = &min
	}

	if maxPrice != "" {
		max, err := parseBound(maxPrice, "maximum")
		if err != nil {
			return PriceRange{}, err
		}
		r.Max = &max
	}

	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return PriceRange{}, fmt.Errorf("%w: minimum price cannot be higher than maximum price", domain.ErrInvalidPriceRange)
	}

	return r, nil
}

func parseBound(value, side string) (float64, error) {
	bound, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s price is not a number", domain.ErrInvalidPriceRange, side)
	}
	if bound <= 0 {
		return 0, fmt.Errorf("%w: price cannot be zero or negative", domain.ErrInvalidPriceRange)
	}
	return bound, nil
}

// Contains reports whether a price falls inside the range.
func (r PriceRange) Contains(price float64) bool {
	if r.Min != nil && price < *r.Min {
		return false
	}
	if r.Max != nil && price > *r.Max {
		return false
	}
	return true
}

// ParsePrice extracts the numeric value from a currency-formatted price
// string such as "$14.24" or "£9.99".
func ParsePrice(price string) (float64, error) {
	cleaned := nonPriceCharsRegex.ReplaceAllString(price, "")
	if cleaned == "" {
		return 0, fmt.Errorf("%w: unparseable price %q", domain.ErrMalformedProduct, price)
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unparseable price %q", domain.ErrMalformedProduct, price)
	}
	return value, nil
}

// FilterByPrice validates the bounds and returns the products whose price
// falls inside them. Products with unparseable prices are skipped with a
// warning.
func FilterByPrice(products []domain.ScoredProduct, minPrice, maxPrice string) ([]domain.ScoredProduct, error) {
	r, err := ParsePriceRange(minPrice, maxPrice)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.ScoredProduct, 0, len(products))
	for _, sp := range products {
		price, err := ParsePrice(sp.Product.Price)
		if err != nil {
			log.Printf("[FILTER] Skipping product %q: %v", sp.Product.Name, err)
			continue
		}
		if r.Contains(price) {
			filtered = append(filtered, sp)
		}
	}
	return filtered, nil
}

// ProductFilter owns the filtered view over one recommendation's product
// list. The caller keeps it alongside the recommendation; Apply and Reset
// never touch the original list.
type ProductFilter struct {
	original []domain.ScoredProduct
	filtered []domain.ScoredProduct
	lastErr  error
}

// NewProductFilter creates a filter whose initial view is the full list.
func NewProductFilter(products []domain.ScoredProduct) *ProductFilter {
	return &ProductFilter{
		original: products,
		filtered: products,
	}
}

// Apply validates the bounds and replaces the filtered view. On a
// validation error the previous view is left untouched and the error is
// recorded until the next successful Apply or Reset.
func (f *ProductFilter) Apply(minPrice, maxPrice string) error {
	filtered, err := FilterByPrice(f.original, minPrice, maxPrice)
	if err != nil {
		f.lastErr = err
		return err
	}
	f.filtered = filtered
	f.lastErr = nil
	return nil
}

// Reset clears the bounds and any validation error and restores the full
// unfiltered list.
func (f *ProductFilter) Reset() {
	f.filtered = f.original
	f.lastErr = nil
}

// Products returns the current filtered view.
func (f *ProductFilter) Products() []domain.ScoredProduct {
	return f.filtered
}

// Err returns the validation error from the last Apply, if any.
func (f *ProductFilter) Err() error {
	return f.lastErr
}
