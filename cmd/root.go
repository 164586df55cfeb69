package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriParts/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "roriparts",
	Short: "Request and search auto parts from the terminal",
	Long: `RoriParts picks a vehicle make, model, submodel, engine and year and sends a part
request to the parts backend. Use "roriparts search" to look up offers instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: run the part request form
		runApplication(app.ModeRequest)
	},
}

func runApplication(mode app.Mode) {
	application, err := app.NewApplication(mode)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}
