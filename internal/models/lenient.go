package models

import "encoding/json"

// Stored documents come from form input, so numeric fields may arrive as
// strings, empty strings or null. The decoders below read those fields
// through Amount and keep the typed fields for everything else.

// UnmarshalJSON decodes v, coercing price and totalSqFt.
func (v *Valuation) UnmarshalJSON(data []byte) error {
	type plain Valuation
	aux := struct {
		plain
		TotalSqFt Amount `json:"totalSqFt"`
		Price     Amount `json:"price"`
	}{
		plain:     plain(*v),
		TotalSqFt: NewAmount(v.TotalSqFt),
		Price:     NewAmount(v.Price),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*v = Valuation(aux.plain)
	v.TotalSqFt = aux.TotalSqFt.Float()
	v.Price = aux.Price.Float()
	return nil
}

// UnmarshalJSON decodes e, coercing both amounts.
func (e *Expense) UnmarshalJSON(data []byte) error {
	type plain Expense
	aux := struct {
		plain
		Current   Amount `json:"current"`
		Potential Amount `json:"potential"`
	}{
		plain:     plain(*e),
		Current:   NewAmount(e.Current),
		Potential: NewAmount(e.Potential),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Expense(aux.plain)
	e.Current = aux.Current.Float()
	e.Potential = aux.Potential.Float()
	return nil
}

// UnmarshalJSON decodes c, coercing its numeric fields. Units is truncated
// to a whole number.
func (c *Comparable) UnmarshalJSON(data []byte) error {
	type plain Comparable
	aux := struct {
		plain
		Price      Amount `json:"price"`
		Rent       Amount `json:"rent"`
		Units      Amount `json:"units"`
		SquareFeet Amount `json:"squareFeet"`
		CapRate    Amount `json:"capRate"`
	}{
		plain:      plain(*c),
		Price:      NewAmount(c.Price),
		Rent:       NewAmount(c.Rent),
		Units:      NewAmount(float64(c.Units)),
		SquareFeet: NewAmount(c.SquareFeet),
		CapRate:    NewAmount(c.CapRate),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Comparable(aux.plain)
	c.Price = aux.Price.Float()
	c.Rent = aux.Rent.Float()
	c.Units = int(aux.Units.Float())
	c.SquareFeet = aux.SquareFeet.Float()
	c.CapRate = aux.CapRate.Float()
	return nil
}
