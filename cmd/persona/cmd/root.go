/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Judith-olmand/persona/pkg/store"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "persona",
	Short: "Persona - versioned record log",
	Long: `Persona is an append-only log of versioned binary persona records
with crash recovery, a REST API and a KSUID-keyed archive.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		log, err := store.NewPersonaLog(store.PersonaLogConfig{DataDir: dataDir})
		if err != nil {
			return fmt.Errorf("failed to create persona log: %w", err)
		}
		recovery, err := log.Open()
		if err != nil {
			return fmt.Errorf("failed to open persona log: %w", err)
		}
		if recovery.TailTruncated {
			fmt.Printf("Recovered from corruption: %d bytes truncated\n", recovery.BytesTruncated)
		}
		// Store in command context
		cmd.SetContext(context.WithValue(cmd.Context(), "log", log))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log, ok := cmd.Context().Value("log").(*store.PersonaLog); ok {
			return log.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global data directory flag
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the log")
}
