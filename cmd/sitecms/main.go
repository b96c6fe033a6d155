package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/brightlane/sitecms/cmd/sitecms/commands"
)

// @title sitecms API
// @version 1.0
// @description Services and blog posts for the site, with a shared admin password.

// @BasePath /api

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name sitecms_session
// @description Set by POST /auth/login

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "sitecms",
		Short:         "sitecms content server",
		Long:          `sitecms serves a small marketing site with editable services and blog posts, stored as JSON files or in PostgreSQL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (yaml, json or toml)")

	rootCmd.AddCommand(commands.NewServeCommand(&configFile))
	rootCmd.AddCommand(commands.NewSeedCommand(&configFile))
	rootCmd.AddCommand(commands.NewMigrateCommand(&configFile))
	rootCmd.AddCommand(commands.NewHashPasswordCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
