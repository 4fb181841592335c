package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Judith-olmand/persona/pkg/store"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every persona record in the log",
	Long: `List every persona record in the log in append order.

Example:
  persona list`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// Get log from context
		log, ok := cmd.Context().Value("log").(*store.PersonaLog)
		if !ok {
			fmt.Printf("Error: log not found in context\n")
			return
		}

		records, err := log.List()
		if err != nil {
			fmt.Printf("Error listing records: %v\n", err)
			return
		}

		if len(records) == 0 {
			fmt.Printf("No records in log\n")
			return
		}

		for i, record := range records {
			fmt.Printf("%d: Name: %s, Age: %d\n", i, record.Name, record.Age)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
