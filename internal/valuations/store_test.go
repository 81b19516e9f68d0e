package valuations

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/valuator/internal/models"
	"github.com/mmynk/valuator/internal/storage"
	"github.com/mmynk/valuator/internal/templates"
)

type staticSession string

func (s staticSession) CurrentUserID() string { return string(s) }

// fakeDocs records persist calls and answers with canned IDs.
type fakeDocs struct {
	docs      []storage.Document
	fetchErr  error
	persistID string
	persistFn func(id string) (string, error)

	persisted []*models.Valuation
	ids       []string
}

func (f *fakeDocs) FetchAll(ctx context.Context, collection, owner string) ([]storage.Document, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.docs, nil
}

func (f *fakeDocs) Persist(ctx context.Context, collection, id string, doc any) (string, error) {
	f.ids = append(f.ids, id)
	f.persisted = append(f.persisted, doc.(*models.Valuation))
	if f.persistFn != nil {
		return f.persistFn(id)
	}
	return f.persistID, nil
}

func newTestStore(docs storage.DocumentStore, user string) *Store {
	return New(docs, staticSession(user), templates.Default(), nil)
}

func TestNewStartsFromTemplate(t *testing.T) {
	s := newTestStore(&fakeDocs{}, "u1")

	if diff := cmp.Diff(templates.Default().EmptyValuation(), s.Wip()); diff != "" {
		t.Errorf("initial WIP differs from template (-want +got):\n%s", diff)
	}
	if s.SelectedID() != "" {
		t.Errorf("SelectedID = %q, want empty", s.SelectedID())
	}
	if len(s.All()) != 0 {
		t.Error("cache should start empty")
	}
}

func TestSetValuation(t *testing.T) {
	s := newTestStore(&fakeDocs{}, "u1")
	v := &models.Valuation{ID: "a", Price: 100, Units: []models.Unit{{Label: "1"}}}

	s.SetValuation("a", v)
	once := s.All()
	s.SetValuation("a", v)
	twice := s.All()

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("SetValuation is not idempotent (-once +twice):\n%s", diff)
	}
	if len(twice) != 1 {
		t.Errorf("Expected 1 cached valuation, got %d", len(twice))
	}

	s.SetValuation("a", &models.Valuation{ID: "a", Price: 200})
	got, ok := s.Valuation("a")
	if !ok || got.Price != 200 {
		t.Errorf("overwrite failed: %+v, %v", got, ok)
	}

	s.SetValuation("b", v)
	v.Units[0].Label = "mutated"
	got, _ = s.Valuation("b")
	if got.Units[0].Label != "1" {
		t.Error("cache entry should not alias the caller's valuation")
	}
}

func TestSelectIDKeepsDraft(t *testing.T) {
	s := newTestStore(&fakeDocs{}, "u1")
	s.SetPrice(500)

	s.SelectID("doc7")

	wip := s.Wip()
	if s.SelectedID() != "doc7" || wip.ID != "doc7" {
		t.Errorf("SelectID did not set both IDs: %q / %q", s.SelectedID(), wip.ID)
	}
	if wip.Price != 500 {
		t.Errorf("SelectID should not replace the draft, price = %v", wip.Price)
	}
}

func TestSetWip(t *testing.T) {
	s := newTestStore(&fakeDocs{}, "u1")

	t.Run("replaces draft wholesale", func(t *testing.T) {
		v := &models.Valuation{ID: "x", Price: 42}
		s.SetWip("x", v)
		if s.SelectedID() != "x" || s.Wip().Price != 42 {
			t.Errorf("unexpected WIP: %q %+v", s.SelectedID(), s.Wip())
		}
	})

	t.Run("nil valuation uses template", func(t *testing.T) {
		s.SetWip("y", nil)
		if s.SelectedID() != "y" {
			t.Errorf("SelectedID = %q, want y", s.SelectedID())
		}
		if len(s.Wip().Expenses) != len(templates.Default().EmptyValuation().Expenses) {
			t.Error("expected template expenses")
		}
	})

	t.Run("ResetWip clears selection", func(t *testing.T) {
		s.SetPrice(10)
		s.ResetWip()
		if s.SelectedID() != "" || s.Wip().Price != 0 {
			t.Errorf("ResetWip left state behind: %q %+v", s.SelectedID(), s.Wip())
		}
	})
}

func TestFieldSetters(t *testing.T) {
	s := newTestStore(&fakeDocs{}, "u1")

	s.SetWipProperty(&models.Property{Name: "Elm Court", City: "Austin"})
	if s.Wip().Property.Name != "Elm Court" {
		t.Errorf("Property = %+v", s.Wip().Property)
	}
	s.SetWipProperty(nil)
	if s.Wip().Property != templates.Default().EmptyProperty() {
		t.Errorf("nil property should reset to template, got %+v", s.Wip().Property)
	}

	cur := models.IncomeStatement{GrossRent: 100}
	pot := models.IncomeStatement{GrossRent: 120}
	s.SetWipIncomeStatement(cur, pot)
	if w := s.Wip(); w.StatementCurrent != cur || w.StatementPotential != pot {
		t.Errorf("statements = %+v / %+v", w.StatementCurrent, w.StatementPotential)
	}

	s.SetTotalSqFt(12000)
	if s.Wip().TotalSqFt != 12000 {
		t.Errorf("TotalSqFt = %v", s.Wip().TotalSqFt)
	}

	s.SetPrice(math.NaN())
	if s.Wip().Price != 0 {
		t.Errorf("NaN price should be stored as 0, got %v", s.Wip().Price)
	}

	if s.IsEditing() {
		t.Fatal("editing should start off")
	}
	s.ToggleEditing()
	if !s.IsEditing() {
		t.Error("ToggleEditing should turn editing on")
	}
	s.ToggleEditing()
	if s.IsEditing() {
		t.Error("ToggleEditing should turn editing off")
	}
}

func TestComparables(t *testing.T) {
	s := newTestStore(&fakeDocs{}, "u1")
	c := models.Comparable{ID: "c1", Address: "1 Main St", Rent: 1500}

	t.Run("add then update keeps one entry", func(t *testing.T) {
		s.AddComparable(c, models.ComparableRent)

		updated := c
		updated.Note = "x"
		s.UpdateComparable(updated, models.ComparableRent)

		comps := s.Wip().RentComps
		if len(comps) != 1 {
			t.Fatalf("Expected 1 rent comp, got %d", len(comps))
		}
		if comps[0].ID != "c1" || comps[0].Note != "x" || comps[0].Rent != 1500 {
			t.Errorf("unexpected comp: %+v", comps[0])
		}
	})

	t.Run("update with unknown id is a no-op", func(t *testing.T) {
		before := s.Wip().RentComps
		s.UpdateComparable(models.Comparable{ID: "nope", Note: "y"}, models.ComparableRent)
		if diff := cmp.Diff(before, s.Wip().RentComps); diff != "" {
			t.Errorf("list changed (-before +after):\n%s", diff)
		}
	})

	t.Run("sale list is separate", func(t *testing.T) {
		s.AddComparable(models.Comparable{ID: "s1", Price: 900000}, models.ComparableSale)
		s.UpdateComparable(models.Comparable{ID: "s1", Price: 950000}, models.ComparableSale)

		w := s.Wip()
		if len(w.SalesComps) != 1 || w.SalesComps[0].Price != 950000 {
			t.Errorf("SalesComps = %+v", w.SalesComps)
		}
		if len(w.RentComps) != 1 {
			t.Errorf("RentComps should be untouched, got %+v", w.RentComps)
		}
	})

	t.Run("delete removes exactly the match", func(t *testing.T) {
		s.AddComparable(models.Comparable{ID: "c2"}, models.ComparableRent)
		s.DeleteComparable("nope", models.ComparableRent)
		if n := len(s.Wip().RentComps); n != 2 {
			t.Fatalf("deleting unknown id changed length to %d", n)
		}

		s.DeleteComparable("c1", models.ComparableRent)
		comps := s.Wip().RentComps
		if len(comps) != 1 || comps[0].ID != "c2" {
			t.Errorf("RentComps = %+v", comps)
		}
	})

	t.Run("delete with non-rent type targets sales", func(t *testing.T) {
		s.DeleteComparable("s1", models.ComparableType(7))
		if n := len(s.Wip().SalesComps); n != 0 {
			t.Errorf("Expected sales comp removed, %d left", n)
		}
	})

	t.Run("unknown type is ignored by add", func(t *testing.T) {
		before := s.Wip()
		s.AddComparable(models.Comparable{ID: "z"}, models.ComparableType(7))
		after := s.Wip()
		if len(after.RentComps) != len(before.RentComps) || len(after.SalesComps) != len(before.SalesComps) {
			t.Error("unknown type should not append")
		}
	})
}

func TestExpenses(t *testing.T) {
	s := newTestStore(&fakeDocs{}, "u1")
	s.SetWip("", &models.Valuation{})

	s.AddExpense("Taxes", 4000, 4200)
	s.AddExpense("Insurance", math.NaN(), 0)
	s.AddExpense("Water", 900, 950)

	exp := s.Wip().Expenses
	if len(exp) != 3 {
		t.Fatalf("Expected 3 expenses, got %d", len(exp))
	}
	if exp[1] != (models.Expense{Label: "Insurance"}) {
		t.Errorf("NaN amounts should default to 0, got %+v", exp[1])
	}

	s.RemoveExpense(1)
	exp = s.Wip().Expenses
	if len(exp) != 2 {
		t.Fatalf("Expected 2 expenses, got %d", len(exp))
	}
	if exp[0].Label != "Taxes" || exp[1].Label != "Water" {
		t.Errorf("later entries should shift down, got %+v", exp)
	}

	s.RemoveExpense(5)
	s.RemoveExpense(-1)
	if n := len(s.Wip().Expenses); n != 2 {
		t.Errorf("out-of-range removal changed length to %d", n)
	}
}

func TestDerivedMetrics(t *testing.T) {
	tests := []struct {
		name          string
		units         []models.Unit
		price         float64
		wantCurrent   float64
		wantPotential float64
		wantPerUnit   string
		wantPerSf     string
	}{
		{
			name:        "no units shows price",
			price:       1234.5,
			wantPerUnit: "1235",
			wantPerSf:   "1235",
		},
		{
			name: "two units",
			units: []models.Unit{
				{CurrentRent: "1000", PotentialRent: "1100", SquareFeet: "800"},
				{CurrentRent: "1200", PotentialRent: "1300", SquareFeet: "1000"},
			},
			price:         360000,
			wantCurrent:   26400,
			wantPotential: 28800,
			wantPerUnit:   "180000",
			wantPerSf:     "200",
		},
		{
			name: "non-numeric values count as zero",
			units: []models.Unit{
				{CurrentRent: "abc", PotentialRent: "", SquareFeet: "n/a"},
				{CurrentRent: "500", PotentialRent: "600"},
			},
			price:         100000,
			wantCurrent:   6000,
			wantPotential: 7200,
			wantPerUnit:   "50000",
			wantPerSf:     "100000",
		},
		{
			name:          "half rounds away from zero",
			units:         []models.Unit{{}, {}},
			price:         5,
			wantPerUnit:   "3",
			wantPerSf:     "5",
			wantCurrent:   0,
			wantPotential: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(&fakeDocs{}, "u1")
			s.SetUnits(tt.units)
			s.SetPrice(tt.price)

			if got := s.GrossRentCurrent(); got != tt.wantCurrent {
				t.Errorf("GrossRentCurrent = %v, want %v", got, tt.wantCurrent)
			}
			if got := s.GrossRentPotential(); got != tt.wantPotential {
				t.Errorf("GrossRentPotential = %v, want %v", got, tt.wantPotential)
			}
			if got := s.PricePerUnit(); got != tt.wantPerUnit {
				t.Errorf("PricePerUnit = %v, want %v", got, tt.wantPerUnit)
			}
			if got := s.PricePerSf(); got != tt.wantPerSf {
				t.Errorf("PricePerSf = %v, want %v", got, tt.wantPerSf)
			}

			want := Summary{tt.wantCurrent, tt.wantPotential, tt.wantPerUnit, tt.wantPerSf}
			if diff := cmp.Diff(want, s.Metrics()); diff != "" {
				t.Errorf("Metrics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMetricsRecomputedOnAccess(t *testing.T) {
	s := newTestStore(&fakeDocs{}, "u1")
	s.SetUnits([]models.Unit{{CurrentRent: "100"}})
	if got := s.GrossRentCurrent(); got != 1200 {
		t.Fatalf("GrossRentCurrent = %v, want 1200", got)
	}
	s.SetUnits([]models.Unit{{CurrentRent: "100"}, {CurrentRent: "50"}})
	if got := s.GrossRentCurrent(); got != 1800 {
		t.Errorf("GrossRentCurrent = %v, want 1800", got)
	}
}
