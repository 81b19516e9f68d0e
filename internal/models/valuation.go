package models

import (
	"slices"
	"time"
)

// Valuation is a property valuation record. The same shape is used for the
// cached entries and for the editable draft.
type Valuation struct {
	// ID is the document identifier. Empty until the first persist.
	ID string `json:"id" yaml:"id,omitempty"`

	// UserID is the owner. Assigned on first persist when empty.
	UserID string `json:"userId" yaml:"userId,omitempty"`

	// CreatedOn is assigned on first persist when zero.
	CreatedOn time.Time `json:"createdOn" yaml:"createdOn,omitempty"`

	Property Property `json:"property" yaml:"property"`
	Units    []Unit   `json:"units" yaml:"units"`

	// TotalSqFt is entered separately from the unit mix and is not derived from it.
	TotalSqFt float64 `json:"totalSqFt" yaml:"totalSqFt"`
	Price     float64 `json:"price" yaml:"price"`

	StatementCurrent   IncomeStatement `json:"statementCurrent" yaml:"statementCurrent"`
	StatementPotential IncomeStatement `json:"statementPotential" yaml:"statementPotential"`

	RentComps  []Comparable `json:"rentComps" yaml:"rentComps"`
	SalesComps []Comparable `json:"salesComps" yaml:"salesComps"`

	// Expenses are addressed by position, not by ID.
	Expenses []Expense `json:"expenses" yaml:"expenses"`
}

// Owner returns the owning user ID. Document stores use it as the filter key.
func (v *Valuation) Owner() string {
	return v.UserID
}

// Clone returns a deep copy of v. A nil receiver returns nil.
func (v *Valuation) Clone() *Valuation {
	if v == nil {
		return nil
	}
	c := *v
	c.Units = slices.Clone(v.Units)
	c.RentComps = slices.Clone(v.RentComps)
	c.SalesComps = slices.Clone(v.SalesComps)
	c.Expenses = slices.Clone(v.Expenses)
	return &c
}

// Unit is one entry of the unit mix.
type Unit struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Beds  int    `json:"beds,omitempty" yaml:"beds,omitempty"`
	Baths int    `json:"baths,omitempty" yaml:"baths,omitempty"`

	// CurrentRent and PotentialRent are monthly.
	CurrentRent   Amount `json:"currentRent" yaml:"currentRent"`
	PotentialRent Amount `json:"potentialRent" yaml:"potentialRent"`
	SquareFeet    Amount `json:"squareFeet" yaml:"squareFeet"`
}

// Expense is an operating expense line with current and potential annual values.
type Expense struct {
	Label     string  `json:"label" yaml:"label"`
	Current   float64 `json:"current" yaml:"current"`
	Potential float64 `json:"potential" yaml:"potential"`
}

// Property describes the subject property.
type Property struct {
	Name         string  `json:"name" yaml:"name"`
	Address      string  `json:"address" yaml:"address"`
	City         string  `json:"city" yaml:"city"`
	State        string  `json:"state" yaml:"state"`
	Zip          string  `json:"zip" yaml:"zip"`
	PropertyType string  `json:"propertyType" yaml:"propertyType"`
	YearBuilt    int     `json:"yearBuilt" yaml:"yearBuilt"`
	LotSize      float64 `json:"lotSize" yaml:"lotSize"`
	Notes        string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// IncomeStatement is an annual operating statement snapshot.
type IncomeStatement struct {
	GrossRent            float64 `json:"grossRent" yaml:"grossRent"`
	Vacancy              float64 `json:"vacancy" yaml:"vacancy"`
	OtherIncome          float64 `json:"otherIncome" yaml:"otherIncome"`
	EffectiveGrossIncome float64 `json:"effectiveGrossIncome" yaml:"effectiveGrossIncome"`
	OperatingExpenses    float64 `json:"operatingExpenses" yaml:"operatingExpenses"`
	NetOperatingIncome   float64 `json:"netOperatingIncome" yaml:"netOperatingIncome"`
}
