// Package parse implements the parse command.
package parse

import (
	"fmt"

	"fjacquet/emi-tracker/cmd/common"
	"fjacquet/emi-tracker/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse <file-or-dir>...",
	Short: "Parse statement files into the extraction store",
	Long: `Parse statement text (.txt) or unencrypted PDF (.pdf) files into dated
transactions and merge them into the extraction store. A statement whose
filename is already stored is replaced, so re-parsing a file is idempotent.

Example:
  emi-tracker parse statements/
  emi-tracker parse ICICI_XXXX7003_Mar2024.pdf --csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) error {
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

	csvFile, err := common.ExportTransactions(c, doc.Statements)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Parsed %d statement(s); store now holds %d statement(s), %d transaction(s): %s\n",
		len(statements), len(doc.Statements), doc.TransactionCount(), c.GetStore().Path)
	if csvFile != "" {
		_, _ = fmt.Fprintf(out, "Transactions exported to %s\n", csvFile)
	}
	return nil
}
