package models

import (
	"errors"
	"fmt"
)

// ErrUnknownComparableType is returned when a comparable type tag is not recognised.
var ErrUnknownComparableType = errors.New("unknown comparable type")

// ComparableType selects the rent or sales comparable list.
type ComparableType int

const (
	ComparableRent ComparableType = iota
	ComparableSale
)

// String returns the tag used on the wire and in the CLI.
func (t ComparableType) String() string {
	switch t {
	case ComparableRent:
		return "rent"
	case ComparableSale:
		return "sale"
	default:
		return fmt.Sprintf("ComparableType(%d)", int(t))
	}
}

// ParseComparableType maps a tag to a ComparableType.
// Older dashboard builds sent "sales" when updating a sales comparable,
// so both "sale" and "sales" select the sales list.
func ParseComparableType(s string) (ComparableType, error) {
	switch s {
	case "rent":
		return ComparableRent, nil
	case "sale", "sales":
		return ComparableSale, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownComparableType, s)
	}
}

// Comparable is a rent or sales reference record used in valuation analysis.
type Comparable struct {
	// ID addresses the comparable within its list.
	ID string `json:"id" yaml:"id"`

	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Note    string `json:"note,omitempty" yaml:"note,omitempty"`

	// Price is the sale price for sales comparables.
	Price float64 `json:"price,omitempty" yaml:"price,omitempty"`

	// Rent is the monthly rent for rent comparables.
	Rent float64 `json:"rent,omitempty" yaml:"rent,omitempty"`

	Units      int     `json:"units,omitempty" yaml:"units,omitempty"`
	SquareFeet float64 `json:"squareFeet,omitempty" yaml:"squareFeet,omitempty"`
	CapRate    float64 `json:"capRate,omitempty" yaml:"capRate,omitempty"`

	// Date is when the comparable sold or was listed, as entered.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`
}
