package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mmynk/valuator/internal/models"
	"github.com/mmynk/valuator/internal/valuations"
)

func newCompCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comp",
		Short: "Manage rent and sales comparables",
	}

	var (
		compType string
		comp     models.Comparable
	)
	addFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&compType, "type", "rent", "comparable type: rent or sale")
		c.Flags().StringVar(&comp.Address, "address", "", "address")
		c.Flags().StringVar(&comp.Note, "note", "", "note")
		c.Flags().Float64Var(&comp.Price, "price", 0, "sale price")
		c.Flags().Float64Var(&comp.Rent, "rent", 0, "monthly rent")
		c.Flags().IntVar(&comp.Units, "units", 0, "unit count")
		c.Flags().Float64Var(&comp.SquareFeet, "sqft", 0, "square feet")
		c.Flags().Float64Var(&comp.CapRate, "cap-rate", 0, "cap rate")
		c.Flags().StringVar(&comp.Date, "date", "", "sale or listing date")
	}

	add := &cobra.Command{
		Use:   "add <valuation-id>",
		Short: "Add a comparable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := models.ParseComparableType(compType)
			if err != nil {
				return err
			}
			if comp.ID == "" {
				comp.ID = uuid.New().String()
			}
			return a.edit(cmd, args[0], func(s *valuations.Store) error {
				s.AddComparable(comp, t)
				return nil
			})
		},
	}
	addFlags(add)
	add.Flags().StringVar(&comp.ID, "id", "", "comparable ID (generated when empty)")

	update := &cobra.Command{
		Use:   "update <valuation-id> <comp-id>",
		Short: "Replace a comparable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := models.ParseComparableType(compType)
			if err != nil {
				return err
			}
			comp.ID = args[1]
			return a.edit(cmd, args[0], func(s *valuations.Store) error {
				s.UpdateComparable(comp, t)
				return nil
			})
		},
	}
	addFlags(update)

	var rmType string
	rm := &cobra.Command{
		Use:   "rm <valuation-id> <comp-id>",
		Short: "Delete a comparable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := models.ParseComparableType(rmType)
			if err != nil {
				return err
			}
			return a.edit(cmd, args[0], func(s *valuations.Store) error {
				s.DeleteComparable(args[1], t)
				return nil
			})
		},
	}
	rm.Flags().StringVar(&rmType, "type", "rent", "comparable type: rent or sale")

	cmd.AddCommand(add, update, rm)
	return cmd
}

func newExpenseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage operating expenses",
	}

	var (
		label              string
		current, potential float64
	)
	add := &cobra.Command{
		Use:   "add <valuation-id>",
		Short: "Append an expense line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, args[0], func(s *valuations.Store) error {
				s.AddExpense(label, current, potential)
				return nil
			})
		},
	}
	add.Flags().StringVar(&label, "label", "", "expense label")
	add.Flags().Float64Var(&current, "current", 0, "current annual amount")
	add.Flags().Float64Var(&potential, "potential", 0, "potential annual amount")
	add.MarkFlagRequired("label")

	rm := &cobra.Command{
		Use:   "rm <valuation-id> <index>",
		Short: "Remove the expense at a position (0-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			return a.edit(cmd, args[0], func(s *valuations.Store) error {
				if n := len(s.Wip().Expenses); index < 0 || index >= n {
					return fmt.Errorf("index %d out of range (valuation has %d expenses)", index, n)
				}
				s.RemoveExpense(index)
				return nil
			})
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}
