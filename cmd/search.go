package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriParts/internal/api"
	"github.com/Rorical/RoriParts/internal/app"
	"github.com/Rorical/RoriParts/internal/apperr"
	"github.com/Rorical/RoriParts/internal/config"
	"github.com/Rorical/RoriParts/internal/core"
	"github.com/Rorical/RoriParts/internal/render"
)

var searchCmd = &cobra.Command{
	Use:   "search [term...]",
	Short: "Search part offers",
	Long: `Without arguments, open the part search view with the car catalog.
With a term, look it up once and print the offer.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			runApplication(app.ModeSearch)
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		client := api.NewClient(cfg.GetSearchBaseURL(), cfg.GetTimeout())
		if err := searchOnce(ctx, cmd.OutOrStdout(), client, strings.Join(args, " ")); err != nil {
			os.Exit(1)
		}
	},
}

// searchOnce prints the offer for term the way the search view shows it.
func searchOnce(ctx context.Context, w io.Writer, searcher core.PartSearcher, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		err := apperr.Validation("Please enter a search term.")
		fmt.Fprintln(w, err)
		return err
	}

	result, err := searcher.SearchPart(ctx, term)
	if err != nil {
		log.Printf("search part q=%q kind=%s: %v", term, apperr.Kind(err), err)
		fmt.Fprintln(w, "Failed to fetch offers.")
		return err
	}

	display := render.Result(result)
	for _, line := range display.Lines() {
		fmt.Fprintln(w, line)
	}
	if display.Error != "" {
		return fmt.Errorf("search %q: %s", term, display.Error)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
