package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Judith-olmand/persona/pkg/codec"
	"github.com/Judith-olmand/persona/pkg/store"
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write <name> <age>",
	Short: "Encode a persona record and append it to the log",
	Long: `Encode a persona record and append it to the log.

Example:
  persona write Juan 30`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		age, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			fmt.Printf("Error: age must be a 32-bit integer: %v\n", err)
			return
		}

		// Get log from context
		log, ok := cmd.Context().Value("log").(*store.PersonaLog)
		if !ok {
			fmt.Printf("Error: log not found in context\n")
			return
		}

		record := codec.Record{Name: name, Age: int32(age)}
		offset, err := log.Append(record)
		if err != nil {
			fmt.Printf("Error appending record: %v\n", err)
			return
		}

		fmt.Printf("Appended record at offset %d (%d bytes)\n", offset, codec.EncodedSize(record))
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
}
