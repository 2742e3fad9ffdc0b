package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/hvutuan2514/SkincareApp/internal/domain"
)

// MockTaxonomyStore is a map-backed implementation of domain.TaxonomyStore.
type MockTaxonomyStore struct {
	skinTypeIDs        map[string]int64
	concernIDs         map[string]int64
	concernNames       []string
	typeIngredients    map[string][]domain.IngredientRef // key: "<typeID>:<sensitive>"
	concernIngredients map[string][]domain.IngredientRef // key: "<concernID>:<subtype>"
	products           []domain.Product

	skinTypeErr           error
	concernErr            error
	listConcernsErr       error
	typeIngredientsErr    error
	concernIngredientsErr error
	productsErr           error
}

func NewMockTaxonomyStore() *MockTaxonomyStore {
	return &MockTaxonomyStore{
		skinTypeIDs:        make(map[string]int64),
		concernIDs:         make(map[string]int64),
		typeIngredients:    make(map[string][]domain.IngredientRef),
		concernIngredients: make(map[string][]domain.IngredientRef),
	}
}

func typeKey(typeID int64, isSensitive bool) string {
	return fmt.Sprintf("%d:%t", typeID, isSensitive)
}

func concernKey(concernID int64, subtype string) string {
	return fmt.Sprintf("%d:%s", concernID, subtype)
}

func (m *MockTaxonomyStore) GetSkinTypeID(ctx context.Context, name string) (int64, error) {
	if m.skinTypeErr != nil {
		return 0, m.skinTypeErr
	}
	id, ok := m.skinTypeIDs[name]
	if !ok {
		return 0, domain.ErrSkinTypeNotFound
	}
	return id, nil
}

func (m *MockTaxonomyStore) GetConcernID(ctx context.Context, name string) (int64, error) {
	if m.concernErr != nil {
		return 0, m.concernErr
	}
	id, ok := m.concernIDs[name]
	if !ok {
		return 0, domain.ErrConcernNotFound
	}
	return id, nil
}

func (m *MockTaxonomyStore) ListConcernNames(ctx context.Context) ([]string, error) {
	if m.listConcernsErr != nil {
		return nil, m.listConcernsErr
	}
	return m.concernNames, nil
}

func (m *MockTaxonomyStore) GetIngredientsForType(ctx context.Context, skinTypeID int64, isSensitive bool) ([]domain.IngredientRef, error) {
	if m.typeIngredientsErr != nil {
		return nil, m.typeIngredientsErr
	}
	return m.typeIngredients[typeKey(skinTypeID, isSensitive)], nil
}

func (m *MockTaxonomyStore) GetIngredientsForConcern(ctx context.Context, concernID int64, subtype string) ([]domain.IngredientRef, error) {
	if m.concernIngredientsErr != nil {
		return nil, m.concernIngredientsErr
	}
	return m.concernIngredients[concernKey(concernID, subtype)], nil
}

func (m *MockTaxonomyStore) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if m.productsErr != nil {
		return nil, m.productsErr
	}
	return m.products, nil
}

func refs(names ...string) []domain.IngredientRef {
	out := make([]domain.IngredientRef, 0, len(names))
	for i, name := range names {
		out = append(out, domain.IngredientRef{ID: int64(i + 1), Name: name})
	}
	return out
}

func TestResolveIngredients(t *testing.T) {
	ctx := context.Background()

	t.Run("combines type and concern ingredients in order", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		store.skinTypeIDs["oily"] = 1
		store.concernIDs["Acne"] = 10
		store.concernIDs["Redness"] = 20
		store.typeIngredients[typeKey(1, false)] = refs("Salicylic Acid", "Niacinamide")
		store.concernIngredients[concernKey(10, "general")] = refs("Benzoyl Peroxide")
		store.concernIngredients[concernKey(20, "general")] = refs("Centella Asiatica")

		svc := NewResolverService(store, false)
		profile := domain.SkinProfile{
			SkinType: "oily",
			Concerns: []domain.ConcernRef{{Name: "Acne"}, {Name: "Redness"}},
		}

		got, err := svc.ResolveIngredients(ctx, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"Salicylic Acid", "Niacinamide", "Benzoyl Peroxide", "Centella Asiatica"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ingredients = %v, want %v", got, want)
		}
	})

	t.Run("deduplicates keeping first occurrence", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		store.skinTypeIDs["oily"] = 1
		store.concernIDs["Acne"] = 10
		store.typeIngredients[typeKey(1, false)] = refs("Niacinamide", "Tea Tree Oil")
		store.concernIngredients[concernKey(10, "general")] = refs("Niacinamide", "Benzoyl Peroxide")

		svc := NewResolverService(store, false)
		profile := domain.SkinProfile{
			SkinType: "oily",
			Concerns: []domain.ConcernRef{{Name: "Acne"}},
		}

		got, err := svc.ResolveIngredients(ctx, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"Niacinamide", "Tea Tree Oil", "Benzoyl Peroxide"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ingredients = %v, want %v", got, want)
		}
	})

	t.Run("uses sensitivity in type lookup", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		store.skinTypeIDs["dry"] = 2
		store.typeIngredients[typeKey(2, true)] = refs("Ceramides")
		store.typeIngredients[typeKey(2, false)] = refs("Retinol")

		svc := NewResolverService(store, false)
		got, err := svc.ResolveIngredients(ctx, domain.SkinProfile{SkinType: "dry", IsSensitive: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"Ceramides"}) {
			t.Errorf("ingredients = %v, want [Ceramides]", got)
		}
	})

	t.Run("applies concern subtype with general default", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		store.concernIDs["Acne"] = 10
		store.concernIDs["Dryness"] = 30
		store.concernIngredients[concernKey(10, "hormonal")] = refs("Azelaic Acid")
		store.concernIngredients[concernKey(30, "general")] = refs("Squalane")

		svc := NewResolverService(store, false)
		profile := domain.SkinProfile{
			Concerns:        []domain.ConcernRef{{Name: "Acne"}, {Name: "Dryness"}},
			ConcernSubtypes: map[string]string{"Acne": "hormonal"},
		}

		got, err := svc.ResolveIngredients(ctx, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"Azelaic Acid", "Squalane"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ingredients = %v, want %v", got, want)
		}
	})

	t.Run("subtype keys are case-sensitive", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		store.concernIDs["Acne"] = 10
		store.concernIngredients[concernKey(10, "general")] = refs("Benzoyl Peroxide")
		store.concernIngredients[concernKey(10, "hormonal")] = refs("Azelaic Acid")

		svc := NewResolverService(store, false)
		// "acne" does not match the concern name "Acne", so the subtype
		// falls back to general.
		profile := domain.SkinProfile{
			Concerns:        []domain.ConcernRef{{Name: "Acne"}},
			ConcernSubtypes: map[string]string{"acne": "hormonal"},
		}

		got, err := svc.ResolveIngredients(ctx, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"Benzoyl Peroxide"}) {
			t.Errorf("ingredients = %v, want [Benzoyl Peroxide]", got)
		}
	})

	t.Run("unknown skin type contributes zero ingredients", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		store.concernIDs["Acne"] = 10
		store.concernIngredients[concernKey(10, "general")] = refs("Benzoyl Peroxide")

		svc := NewResolverService(store, false)
		profile := domain.SkinProfile{
			SkinType: "unknown",
			Concerns: []domain.ConcernRef{{Name: "Acne"}},
		}

		got, err := svc.ResolveIngredients(ctx, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"Benzoyl Peroxide"}) {
			t.Errorf("ingredients = %v, want [Benzoyl Peroxide]", got)
		}
	})

	t.Run("unknown concern does not abort the others", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		store.concernIDs["Redness"] = 20
		store.concernIngredients[concernKey(20, "general")] = refs("Centella Asiatica")

		svc := NewResolverService(store, false)
		profile := domain.SkinProfile{
			Concerns: []domain.ConcernRef{{Name: "Nonexistent"}, {Name: "Redness"}},
		}

		got, err := svc.ResolveIngredients(ctx, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"Centella Asiatica"}) {
			t.Errorf("ingredients = %v, want [Centella Asiatica]", got)
		}
	})

	t.Run("drops refs without a resolvable name", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		store.skinTypeIDs["normal"] = 3
		store.typeIngredients[typeKey(3, false)] = []domain.IngredientRef{
			{ID: 1, Name: "Vitamin C"},
			{ID: 2, Name: ""},
			{ID: 3, Name: "Peptides"},
		}

		svc := NewResolverService(store, false)
		got, err := svc.ResolveIngredients(ctx, domain.SkinProfile{SkinType: "normal"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"Vitamin C", "Peptides"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ingredients = %v, want %v", got, want)
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		store.skinTypeErr = domain.ErrStoreUnavailable

		svc := NewResolverService(store, false)
		_, err := svc.ResolveIngredients(ctx, domain.SkinProfile{SkinType: "oily"})
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Errorf("error = %v, want ErrStoreUnavailable", err)
		}
	})

	t.Run("concern ingredient failure propagates", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		store.concernIDs["Acne"] = 10
		store.concernIngredientsErr = domain.ErrStoreUnavailable

		svc := NewResolverService(store, false)
		_, err := svc.ResolveIngredients(ctx, domain.SkinProfile{
			Concerns: []domain.ConcernRef{{Name: "Acne"}},
		})
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Errorf("error = %v, want ErrStoreUnavailable", err)
		}
	})

	t.Run("concern order is deterministic across many concerns", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		var wantOrder []string
		var concerns []domain.ConcernRef
		for i := 1; i <= 8; i++ {
			name := fmt.Sprintf("Concern%d", i)
			ingredient := fmt.Sprintf("Ingredient%d", i)
			store.concernIDs[name] = int64(i)
			store.concernIngredients[concernKey(int64(i), "general")] = refs(ingredient)
			concerns = append(concerns, domain.ConcernRef{Name: name})
			wantOrder = append(wantOrder, ingredient)
		}

		svc := NewResolverService(store, false)
		// Lookups fan out concurrently; the output order must still follow
		// the input concern order every time.
		for run := 0; run < 10; run++ {
			got, err := svc.ResolveIngredients(ctx, domain.SkinProfile{Concerns: concerns})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, wantOrder) {
				t.Fatalf("run %d: ingredients = %v, want %v", run, got, wantOrder)
			}
		}
	})

	t.Run("uses pre-resolved concern IDs without a name lookup", func(t *testing.T) {
		store := NewMockTaxonomyStore()
		store.concernErr = domain.ErrStoreUnavailable // would fail a name lookup
		store.concernIngredients[concernKey(42, "general")] = refs("Kojic Acid")

		svc := NewResolverService(store, false)
		got, err := svc.ResolveIngredients(ctx, domain.SkinProfile{
			Concerns: []domain.ConcernRef{{ID: 42, Name: "Dark spots"}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"Kojic Acid"}) {
			t.Errorf("ingredients = %v, want [Kojic Acid]", got)
		}
	})
}
