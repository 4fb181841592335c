package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Judith-olmand/persona/pkg/store"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the most recent persona record",
	Long: `Read and decode the most recently appended persona record.

Example:
  persona read`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// Get log from context
		log, ok := cmd.Context().Value("log").(*store.PersonaLog)
		if !ok {
			fmt.Printf("Error: log not found in context\n")
			return
		}

		record, err := log.Last()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				fmt.Printf("No records in log\n")
			} else {
				fmt.Printf("Error reading record: %v\n", err)
			}
			return
		}

		fmt.Printf("Name: %s, Age: %d\n", record.Name, record.Age)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
