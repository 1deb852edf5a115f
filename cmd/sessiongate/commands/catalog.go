package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/sessiongate/internal/cli/output"
	"github.com/marmos91/sessiongate/pkg/restriction"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the supported restriction attributes",
	Long: `List every restriction attribute SessionGate can enforce, with the
exact attribute name and the value that activates it. Any other value,
including "True" or "yes", leaves the restriction inactive.`,
	Run: func(cmd *cobra.Command, args []string) {
		rows := make([][]string, 0, len(restriction.Catalog()))
		for _, r := range restriction.Catalog() {
			rows = append(rows, []string{
				r.AttributeName(),
				restriction.TruthValue,
				r.Description(),
			})
		}
		output.Table(os.Stdout, []string{"Attribute", "Active Value", "Description"}, rows)
	},
}
