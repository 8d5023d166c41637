package cli

import (
	"fmt"

	"sunburst-explorer/internal/model"
	"sunburst-explorer/internal/pipeline"

	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns <file-or-url>",
	Short: "List the columns available for the hierarchy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := loadSource(cmd.Context(), args[0], loadOptions(current()))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, c := range tbl.Columns {
			fmt.Fprintln(out, c)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d columns, %d rows\n", len(tbl.Columns), tbl.Len())
		return nil
	},
}

var valuesCmd = &cobra.Command{
	Use:   "values <file-or-url>",
	Short: "List the filter values of a column, missing cells replaced",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := current()
		tbl, err := loadSource(cmd.Context(), args[0], loadOptions(c))
		if err != nil {
			return err
		}
		column := valuesColumn
		if !tbl.HasColumn(column) {
			return fmt.Errorf("%w: %s", model.ErrUnknownColumn, column)
		}
		tbl = pipeline.Substitute(tbl, []string{column}, c.PlaceholderFormat)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, model.AllOption)
		for _, v := range pipeline.FilterOptions(tbl, column) {
			fmt.Fprintln(out, v)
		}
		return nil
	},
}

var valuesColumn string

func init() {
	valuesCmd.Flags().StringVar(&valuesColumn, "column", "", "column to list (required)")
	_ = valuesCmd.MarkFlagRequired("column")
	rootCmd.AddCommand(columnsCmd, valuesCmd)
}
