package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hvutuan2514/SkincareApp/internal/domain"
)

func scoredProduct(name, price string) domain.ScoredProduct {
	return domain.ScoredProduct{
		Product:             product(name, price, "['Water']"),
		MatchingIngredients: []string{"Water"},
		MatchCount:          1,
	}
}

func TestParsePriceRange(t *testing.T) {
	t.Run("empty bounds are unbounded", func(t *testing.T) {
		r, err := ParsePriceRange("", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Min != nil || r.Max != nil {
			t.Errorf("range = %+v, want both sides unbounded", r)
		}
	})

	t.Run("rejects zero bound", func(t *testing.T) {
		_, err := ParsePriceRange("0", "")
		if !errors.Is(err, domain.ErrInvalidPriceRange) {
			t.Errorf("error = %v, want ErrInvalidPriceRange", err)
		}
	})

	t.Run("rejects negative bound", func(t *testing.T) {
		_, err := ParsePriceRange("", "-3")
		if !errors.Is(err, domain.ErrInvalidPriceRange) {
			t.Errorf("error = %v, want ErrInvalidPriceRange", err)
		}
	})

	t.Run("rejects non-numeric bound", func(t *testing.T) {
		_, err := ParsePriceRange("abc", "")
		if !errors.Is(err, domain.ErrInvalidPriceRange) {
			t.Errorf("error = %v, want ErrInvalidPriceRange", err)
		}
	})

	t.Run("rejects min greater than max", func(t *testing.T) {
		_, err := ParsePriceRange("10", "5")
		if !errors.Is(err, domain.ErrInvalidPriceRange) {
			t.Errorf("error = %v, want ErrInvalidPriceRange", err)
		}
	})

	t.Run("accepts equal min and max", func(t *testing.T) {
		r, err := ParsePriceRange("5", "5")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *r.Min != 5 || *r.Max != 5 {
			t.Errorf("range = [%v, %v], want [5, 5]", *r.Min, *r.Max)
		}
	})
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$14.24", 14.24},
		{"£9.99", 9.99},
		{"6.00", 6},
		{"USD 12.50", 12.5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	t.Run("rejects price with no digits", func(t *testing.T) {
		_, err := ParsePrice("free")
		if !errors.Is(err, domain.ErrMalformedProduct) {
			t.Errorf("error = %v, want ErrMalformedProduct", err)
		}
	})
}

func TestFilterByPrice(t *testing.T) {
	products := []domain.ScoredProduct{
		scoredProduct("Cleanser", "$14.24"),
		scoredProduct("Serum", "$6.00"),
	}

	t.Run("min-only bound", func(t *testing.T) {
		got, err := FilterByPrice(products, "10", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Product.Name != "Cleanser" {
			t.Errorf("filtered = %v, want only Cleanser", got)
		}
	})

	t.Run("max-only bound", func(t *testing.T) {
		got, err := FilterByPrice(products, "", "10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Product.Name != "Serum" {
			t.Errorf("filtered = %v, want only Serum", got)
		}
	})

	t.Run("both bounds inclusive", func(t *testing.T) {
		got, err := FilterByPrice(products, "6", "14.24")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("len(filtered) = %d, want 2", len(got))
		}
	})

	t.Run("skips products with unparseable prices", func(t *testing.T) {
		withBad := append([]domain.ScoredProduct{scoredProduct("Mystery", "n/a")}, products...)
		got, err := FilterByPrice(withBad, "", "20")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("len(filtered) = %d, want 2 (bad price skipped)", len(got))
		}
	})
}

func TestProductFilter(t *testing.T) {
	products := []domain.ScoredProduct{
		scoredProduct("Cleanser", "$14.24"),
		scoredProduct("Serum", "$6.00"),
	}

	t.Run("starts with the full list", func(t *testing.T) {
		f := NewProductFilter(products)
		if !reflect.DeepEqual(f.Products(), products) {
			t.Errorf("Products() = %v, want full list", f.Products())
		}
		if f.Err() != nil {
			t.Errorf("Err() = %v, want nil", f.Err())
		}
	})

	t.Run("apply narrows the view", func(t *testing.T) {
		f := NewProductFilter(products)
		if err := f.Apply("10", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := f.Products()
		if len(got) != 1 || got[0].Product.Name != "Cleanser" {
			t.Errorf("Products() = %v, want only Cleanser", got)
		}
	})

	t.Run("validation failure keeps previous view", func(t *testing.T) {
		f := NewProductFilter(products)
		if err := f.Apply("", "10"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		before := f.Products()

		err := f.Apply("10", "5")
		if !errors.Is(err, domain.ErrInvalidPriceRange) {
			t.Fatalf("error = %v, want ErrInvalidPriceRange", err)
		}
		if !reflect.DeepEqual(f.Products(), before) {
			t.Errorf("Products() changed after failed Apply")
		}
		if f.Err() == nil {
			t.Error("Err() = nil, want recorded validation error")
		}
	})

	t.Run("reset restores full list and clears error", func(t *testing.T) {
		f := NewProductFilter(products)
		_ = f.Apply("10", "5") // validation error
		if err := f.Apply("10", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f.Reset()
		if !reflect.DeepEqual(f.Products(), products) {
			t.Errorf("Products() = %v, want full list after Reset", f.Products())
		}
		if f.Err() != nil {
			t.Errorf("Err() = %v, want nil after Reset", f.Err())
		}
	})
}
