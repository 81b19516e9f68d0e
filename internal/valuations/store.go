// Package valuations holds the dashboard's valuation state: a cache of every
// known valuation and one editable work-in-progress draft (the WIP).
//
// A Store is created once at startup and passed to whatever needs it. Mutations
// are synchronous. FetchAll and Persist talk to a storage.DocumentStore and
// then apply their results locally; the store lock is never held across a
// remote call, so edits made while a persist is in flight are not part of the
// document that was sent.
package valuations

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/mmynk/valuator/internal/models"
	"github.com/mmynk/valuator/internal/storage"
)

// Collection is the document collection valuations are stored in.
const Collection = "valuations"

// Session exposes the signed-in user.
type Session interface {
	CurrentUserID() string
}

// Templates builds empty records. Each call must return a fresh value.
type Templates interface {
	EmptyValuation() *models.Valuation
	EmptyProperty() models.Property
}

// Store owns the valuation cache and the WIP draft.
type Store struct {
	docs      storage.DocumentStore
	session   Session
	templates Templates
	logger    *slog.Logger
	now       func() time.Time

	mu                  sync.Mutex
	all                 map[string]*models.Valuation
	selectedValuationID string
	selectedValuation   *models.Valuation
	isEditing           bool

	// wipGen counts SetWip calls so Persist can tell whether the draft it
	// sent is still the one being edited.
	wipGen uint64
}

// New creates a Store with an empty cache and a WIP built from the empty template.
// A nil logger uses slog.Default().
func New(docs storage.DocumentStore, session Session, templates Templates, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		docs:              docs,
		session:           session,
		templates:         templates,
		logger:            logger,
		now:               time.Now,
		all:               make(map[string]*models.Valuation),
		selectedValuation: templates.EmptyValuation(),
	}
}

// SetValuation inserts or overwrites the cache entry for id.
func (s *Store) SetValuation(id string, v *models.Valuation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all[id] = v.Clone()
}

// SelectID points the WIP at id. Only the WIP's ID changes; the rest of the draft is kept.
func (s *Store) SelectID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedValuationID = id
	s.selectedValuation.ID = id
}

// SetWip replaces the WIP wholesale. A nil valuation starts from the empty template.
func (s *Store) SetWip(id string, v *models.Valuation) {
	if v == nil {
		v = s.templates.EmptyValuation()
	} else {
		v = v.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedValuationID = id
	s.selectedValuation = v
	s.wipGen++
}

// ResetWip starts a new, unsaved draft.
func (s *Store) ResetWip() {
	s.SetWip("", nil)
}

// SetWipProperty replaces the draft's property. Nil resets it to the empty template.
func (s *Store) SetWipProperty(p *models.Property) {
	property := s.templates.EmptyProperty()
	if p != nil {
		property = *p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedValuation.Property = property
}

// SetWipIncomeStatement replaces both income statement snapshots.
func (s *Store) SetWipIncomeStatement(current, potential models.IncomeStatement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedValuation.StatementCurrent = current
	s.selectedValuation.StatementPotential = potential
}

// SetUnits replaces the unit mix.
func (s *Store) SetUnits(units []models.Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedValuation.Units = slices.Clone(units)
}

// SetPrice replaces the asking price. NaN is stored as 0.
func (s *Store) SetPrice(price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedValuation.Price = orZero(price)
}

// SetTotalSqFt replaces the total square footage.
func (s *Store) SetTotalSqFt(sqft float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedValuation.TotalSqFt = sqft
}

// AddComparable appends c to the list selected by t.
func (s *Store) AddComparable(c models.Comparable, t models.ComparableType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t {
	case models.ComparableRent:
		s.selectedValuation.RentComps = append(s.selectedValuation.RentComps, c)
	case models.ComparableSale:
		s.selectedValuation.SalesComps = append(s.selectedValuation.SalesComps, c)
	}
}

// UpdateComparable replaces the entry with c's ID in place.
// It does nothing when no entry matches.
func (s *Store) UpdateComparable(c models.Comparable, t models.ComparableType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comps []models.Comparable
	switch t {
	case models.ComparableRent:
		comps = s.selectedValuation.RentComps
	case models.ComparableSale:
		comps = s.selectedValuation.SalesComps
	default:
		return
	}
	for i := range comps {
		if comps[i].ID == c.ID {
			comps[i] = c
		}
	}
}

// DeleteComparable removes the entries with the given ID. Any type other than
// rent targets the sales list. Unknown IDs leave the list unchanged.
func (s *Store) DeleteComparable(compID string, t models.ComparableType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := func(c models.Comparable) bool { return c.ID == compID }
	if t == models.ComparableRent {
		s.selectedValuation.RentComps = slices.DeleteFunc(s.selectedValuation.RentComps, match)
		return
	}
	s.selectedValuation.SalesComps = slices.DeleteFunc(s.selectedValuation.SalesComps, match)
}

// ToggleEditing flips the editing flag.
func (s *Store) ToggleEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isEditing = !s.isEditing
}

// AddExpense appends an expense line. NaN amounts are stored as 0.
func (s *Store) AddExpense(name string, current, potential float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedValuation.Expenses = append(s.selectedValuation.Expenses, models.Expense{
		Label:     name,
		Current:   orZero(current),
		Potential: orZero(potential),
	})
}

// RemoveExpense removes the expense at index. Later entries shift down by one.
// An out-of-range index is ignored.
func (s *Store) RemoveExpense(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.selectedValuation.Expenses) {
		return
	}
	s.selectedValuation.Expenses = slices.Delete(s.selectedValuation.Expenses, index, index+1)
}

// Valuation returns a copy of the cached valuation for id.
func (s *Store) Valuation(id string) (*models.Valuation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.all[id]
	return v.Clone(), ok
}

// All returns a copy of the cache.
func (s *Store) All() map[string]*models.Valuation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*models.Valuation, len(s.all))
	for id, v := range s.all {
		out[id] = v.Clone()
	}
	return out
}

// IDs returns the cached IDs in sorted order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.all))
}

// SelectedID returns the ID of the cache entry the WIP corresponds to.
func (s *Store) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedValuationID
}

// Wip returns a copy of the draft.
func (s *Store) Wip() *models.Valuation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedValuation.Clone()
}

// IsEditing reports the editing flag.
func (s *Store) IsEditing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isEditing
}
