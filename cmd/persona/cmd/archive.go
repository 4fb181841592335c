package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/Judith-olmand/persona/pkg/codec"
	"github.com/Judith-olmand/persona/pkg/storage"
)

// archiveCmd groups the long-term archive operations
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the long-term persona archive",
	Long: `Manage the long-term persona archive, a KSUID-keyed store of
encoded persona records kept separately from the append-only log.`,
}

// archiveAddCmd represents the archive add command
var archiveAddCmd = &cobra.Command{
	Use:   "add <name> <age>",
	Short: "Add a persona record to the archive",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		age, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			fmt.Printf("Error: age must be a 32-bit integer: %v\n", err)
			return
		}

		archive, err := openArchive(cmd)
		if err != nil {
			fmt.Printf("Error opening archive: %v\n", err)
			return
		}
		defer archive.Close()

		id, err := archive.Create(codec.Record{Name: args[0], Age: int32(age)})
		if err != nil {
			fmt.Printf("Error adding record: %v\n", err)
			return
		}

		fmt.Printf("%s\n", id.String())
	},
}

// archiveGetCmd represents the archive get command
var archiveGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a persona record from the archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			fmt.Printf("Error: invalid id: %v\n", err)
			return
		}

		archive, err := openArchive(cmd)
		if err != nil {
			fmt.Printf("Error opening archive: %v\n", err)
			return
		}
		defer archive.Close()

		record, err := archive.Read(id)
		if err != nil {
			fmt.Printf("Error reading record: %v\n", err)
			return
		}

		fmt.Printf("Name: %s, Age: %d\n", record.Name, record.Age)
	},
}

// archiveListCmd represents the archive list command
var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every persona record in the archive",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		archive, err := openArchive(cmd)
		if err != nil {
			fmt.Printf("Error opening archive: %v\n", err)
			return
		}
		defer archive.Close()

		entries, err := archive.List()
		if err != nil {
			fmt.Printf("Error listing records: %v\n", err)
			return
		}

		if len(entries) == 0 {
			fmt.Printf("No records in archive\n")
			return
		}

		for _, entry := range entries {
			fmt.Printf("%s: Name: %s, Age: %d\n", entry.ID.String(), entry.Record.Name, entry.Record.Age)
		}
	},
}

func openArchive(cmd *cobra.Command) (*storage.Archive, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	return storage.Open(filepath.Join(dataDir, "archive"))
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveAddCmd)
	archiveCmd.AddCommand(archiveGetCmd)
	archiveCmd.AddCommand(archiveListCmd)
}
