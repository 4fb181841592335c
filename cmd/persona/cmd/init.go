/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Judith-olmand/persona/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize Persona configuration for local development",
	Long: `Initialize the Persona configuration file with a generated API key.

This command will:
- Create the configuration directory
- Generate a secure random API key
- Write the configuration file with restrictive permissions

This is required before running the server without an explicit --api-key.

Examples:
  persona init
  persona init --config=./persona.yaml --data-dir=./data`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists. Use --force to reinitialize.\n")
			cmd.Printf("Configuration location: %s\n", configPath)
			return
		}

		cmd.Printf("Initializing Persona configuration...\n")
		cmd.Printf("Config file: %s\n", configPath)
		cmd.Printf("Data directory: %s\n", dataDir)

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			cmd.Printf("Error writing configuration: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("Persona initialization completed successfully!\n")
		cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  persona serve --config=%s --data-dir=%s\n", configPath, dataDir)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("config", "", "Path to the config file")
	initCmd.Flags().Bool("force", false, "Force reinitialization even if a config already exists")
}
