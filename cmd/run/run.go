// Package run implements the run command: parse followed by plans.
package run

import (
	"fmt"

	"fjacquet/emi-tracker/cmd/common"
	"fjacquet/emi-tracker/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the run command
var Cmd = &cobra.Command{
	Use:   "run <file-or-dir>...",
	Short: "Parse statements and reconstruct EMI plans in one step",
	Long: `Parse the given statement files into the extraction store, then reconstruct
EMI plans over the whole store, so earlier statements still contribute.

Example:
  emi-tracker run statements/ -o out/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFunc,
}

func runFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}

	statements, err := common.ParseStatementFiles(cmd.Context(), c, args)
	if err != nil {
		return err
	}

	doc, err := common.SaveStatements(c, statements)
	if err != nil {
		return err
	}

	_, arts, err := common.BuildPlans(c, doc.Statements, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", arts.PlansJSON)
	return nil
}
