package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/valuator/internal/models"
	"github.com/mmynk/valuator/internal/valuations"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your valuations with their headline metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPROPERTY\tPRICE\tUNITS\tGROSS RENT\tPRICE/UNIT\tPRICE/SF")
			for _, id := range store.IDs() {
				v, _ := store.Valuation(id)
				m := valuations.Summarize(v)
				fmt.Fprintf(tw, "%s\t%s\t%.0f\t%d\t%.0f\t%s\t%s\n",
					id, v.Property.Name, v.Price, len(v.Units), m.GrossRentCurrent, m.PricePerUnit, m.PricePerSf)
			}
			return tw.Flush()
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a valuation as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}
			v, ok := store.Valuation(args[0])
			if !ok {
				return fmt.Errorf("valuation %s not found", args[0])
			}
			store.SetWip(args[0], v)

			out := cmd.OutOrStdout()
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			if err := enc.Close(); err != nil {
				return err
			}

			m := store.Metrics()
			fmt.Fprintf(out, "# gross rent: current %.0f, potential %.0f\n", m.GrossRentCurrent, m.GrossRentPotential)
			fmt.Fprintf(out, "# price per unit: %s, price per sf: %s\n", m.PricePerUnit, m.PricePerSf)
			return nil
		},
	}
}

func newNewCmd(a *app) *cobra.Command {
	var property models.Property
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty valuation for a property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}
			store.ResetWip()
			p := a.templates.EmptyProperty()
			p.Name, p.Address, p.City, p.State = property.Name, property.Address, property.City, property.State
			store.SetWipProperty(&p)
			return save(cmd.Context(), cmd.OutOrStdout(), store)
		},
	}
	cmd.Flags().StringVar(&property.Name, "name", "", "property name")
	cmd.Flags().StringVar(&property.Address, "address", "", "street address")
	cmd.Flags().StringVar(&property.City, "city", "", "city")
	cmd.Flags().StringVar(&property.State, "state", "", "state")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Save a valuation read from a YAML file",
		Long: `Save a valuation read from a YAML file.

Without --id the file is stored as a new valuation. With --id it replaces
the valuation with that ID.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			v := a.templates.EmptyValuation()
			if err := yaml.Unmarshal(data, v); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			store, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}
			if id != "" {
				if _, ok := store.Valuation(id); !ok {
					return fmt.Errorf("valuation %s not found", id)
				}
			}
			v.ID = id
			store.SetWip(id, v)
			return save(cmd.Context(), cmd.OutOrStdout(), store)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "existing valuation to replace")
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	var price, sqft float64
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Change the price or total square footage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, args[0], func(s *valuations.Store) error {
				if cmd.Flags().Changed("price") {
					s.SetPrice(price)
				}
				if cmd.Flags().Changed("sqft") {
					s.SetTotalSqFt(sqft)
				}
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&price, "price", 0, "asking price")
	cmd.Flags().Float64Var(&sqft, "sqft", 0, "total square feet")
	return cmd
}
