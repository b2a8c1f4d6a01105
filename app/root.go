// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clearlane-web",
	Short: "Clearlane-Web serves the Clearlane Advisory website",
	Long: `Clearlane-Web serves the Clearlane Advisory marketing website
together with a lightweight content-management admin panel for the blog,
team roster, document library and site settings.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
