package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/rpgo/irs-calculator/internal/output"
	"github.com/rpgo/irs-calculator/internal/tables"
	"github.com/spf13/cobra"
)

func newTableCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the bracket table selected by --table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := tables.Load(cmd.Context(), a.tablePath)
			if err != nil {
				return err
			}
			if asYAML {
				data, err := tables.MarshalYAML(table)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return printTable(cmd, table)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the table in the YAML table format")
	cmd.AddCommand(newTableImportCmd(a), newTableListCmd())
	return cmd
}

func printTable(cmd *cobra.Command, table *domain.BracketTable) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "#\tUp to\tMarginal\tAverage at cap\t\n")
	for i, r := range table.Rows() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n", i, output.FormatCurrency(r.MaxThreshold),
			output.FormatPercentage(r.MarginalRate), output.FormatPercentage(r.RateAtThreshold))
	}
	return w.Flush()
}

func newTableImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import database.db name",
		Short: "Store the table selected by --table in a SQLite database under name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			table, err := tables.Load(ctx, a.tablePath)
			if err != nil {
				return err
			}
			store, err := tables.OpenSQLiteStore(ctx, args[0])
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Save(ctx, args[1], table); err != nil {
				return err
			}
			a.log.Infof("stored %d rows from %s as %q in %s", table.Len(), table.Name(), args[1], args[0])
			return nil
		},
	}
}

func newTableListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list database.db",
		Short: "List the tables stored in a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := tables.OpenSQLiteStore(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer store.Close()
			names, err := store.Names(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
