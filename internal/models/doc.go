// Package models defines the core domain records for the valuation workspace.
//
// # Records
//
//   - Valuation: a property valuation with units, comparables, expenses and
//     income statements. Both the cached entries and the editable draft use it.
//   - Unit, Comparable, Expense: the list entries a valuation is edited through.
//   - Property, IncomeStatement: descriptive records passed through untouched.
//   - User: an account that owns valuations.
//
// # Conventions
//
//  1. Records refer to each other by ID strings, never by pointers.
//  2. An empty ID means the record has not been persisted yet.
//  3. Numeric unit fields are lenient (see Amount) because they come straight
//     from form input; aggregation treats anything non-numeric as zero.
//  4. Clone returns a structural deep copy; callers never share slices with a
//     cached record.
package models
