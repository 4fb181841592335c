/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Judith-olmand/persona/pkg/api"
	"github.com/Judith-olmand/persona/pkg/config"
	"github.com/Judith-olmand/persona/pkg/store"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the Persona REST API server with API key authentication.

Flags override values from the config file. When --api-key is not given
the key is read from the config file (run 'persona init' first).

Examples:
  persona serve --api-key=mysecretkey --port=8080
  persona serve --config=~/.config/persona/config.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		// Fall back to the config file for anything not given on the
		// command line
		if apiKey == "" {
			if configPath == "" {
				configPath = config.GetDefaultConfigPath()
			}
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				cmd.Printf("Error: --api-key is required (or run 'persona init' first): %v\n", err)
				return
			}
			apiKey = cfg.Security.APIKey
			if !cmd.Flags().Changed("port") {
				port = cfg.Port
			}
			if !cmd.Flags().Changed("bind") {
				bind = cfg.Bind
			}
			cmd.Printf("Loaded configuration from %s\n", configPath)
		}

		// Get log from context
		log, ok := cmd.Context().Value("log").(*store.PersonaLog)
		if !ok {
			cmd.Println("Error: log not found in context")
			return
		}

		serverConfig := api.ServerConfig{
			Port:    port,
			Bind:    bind,
			APIKey:  apiKey,
			DataDir: dataDir,
		}

		if err := api.StartServer(log, serverConfig); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key for authentication")
	serveCmd.Flags().String("config", "", "Path to the config file")
}
