package cli

import (
	"fmt"

	"github.com/poliscout/poliscout/discover"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List supported document types",
	Long:  "Display the document types poliscout can discover and the --type values selecting them",
	Run:   runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) {
	fmt.Println("Document types:")
	for _, t := range discover.AllDocumentTypes() {
		fmt.Printf("  %-15s %s\n", t.String(), t.DisplayName())
	}
}
