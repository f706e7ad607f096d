// Package plans implements the plans command.
package plans

import (
	"fmt"

	"fjacquet/emi-tracker/cmd/common"
	"fjacquet/emi-tracker/cmd/root"
	"fjacquet/emi-tracker/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the plans command
var Cmd = &cobra.Command{
	Use:   "plans",
	Short: "Reconstruct EMI plans from the extraction store",
	Long: `Reconstruct EMI plans from every statement in the extraction store and
write emi_plans.json (plus emi_plans.csv and transactions.csv with --csv) to
the output directory. Run "emi-tracker parse" first.`,
	Args: cobra.NoArgs,
	RunE: plansFunc,
}

func plansFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}

	doc, err := c.GetStore().Load()
	if err != nil {
		c.GetLogger().WithError(err).Error("Cannot load statement extractions",
			logging.F(logging.FieldInputFile, c.GetStore().Path))
		return err
	}

	_, arts, err := common.BuildPlans(c, doc.Statements, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", arts.PlansJSON)
	return nil
}
