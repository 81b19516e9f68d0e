package valuations

import (
	"math"
	"strconv"

	"github.com/mmynk/valuator/internal/models"
)

// Summary groups the derived metrics of the WIP.
type Summary struct {
	GrossRentCurrent   float64
	GrossRentPotential float64
	PricePerUnit       string
	PricePerSf         string
}

// GrossRentCurrent is the annual rent of all units at current rents.
func (s *Store) GrossRentCurrent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return grossRent(s.selectedValuation.Units, func(u models.Unit) models.Amount { return u.CurrentRent })
}

// GrossRentPotential is the annual rent of all units at potential rents.
func (s *Store) GrossRentPotential() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return grossRent(s.selectedValuation.Units, func(u models.Unit) models.Amount { return u.PotentialRent })
}

// PricePerUnit is the price divided by the unit count, rounded for display.
// With no units the price itself is shown.
func (s *Store) PricePerUnit() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricePerUnit(s.selectedValuation)
}

// PricePerSf is the price divided by the units' total square feet, rounded for
// display. When the units carry no square footage the price itself is shown.
func (s *Store) PricePerSf() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricePerSf(s.selectedValuation)
}

// Metrics computes every derived value from one consistent view of the WIP.
func (s *Store) Metrics() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summarize(s.selectedValuation)
}

// Summarize computes the derived metrics of any valuation.
func Summarize(v *models.Valuation) Summary {
	return Summary{
		GrossRentCurrent:   grossRent(v.Units, func(u models.Unit) models.Amount { return u.CurrentRent }),
		GrossRentPotential: grossRent(v.Units, func(u models.Unit) models.Amount { return u.PotentialRent }),
		PricePerUnit:       pricePerUnit(v),
		PricePerSf:         pricePerSf(v),
	}
}

func grossRent(units []models.Unit, rent func(models.Unit) models.Amount) float64 {
	var monthly float64
	for _, u := range units {
		monthly += rent(u).Float()
	}
	return monthly * 12
}

func pricePerUnit(v *models.Valuation) string {
	return formatWhole(v.Price / divisor(float64(len(v.Units))))
}

func pricePerSf(v *models.Valuation) string {
	var sf float64
	for _, u := range v.Units {
		sf += u.SquareFeet.Float()
	}
	return formatWhole(v.Price / divisor(sf))
}

// divisor floors a zero (or NaN) denominator at 1.
func divisor(d float64) float64 {
	if d == 0 || math.IsNaN(d) {
		return 1
	}
	return d
}

// formatWhole renders f with no decimals, rounding half away from zero.
func formatWhole(f float64) string {
	return strconv.FormatFloat(math.Round(f), 'f', 0, 64)
}

func orZero(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}
