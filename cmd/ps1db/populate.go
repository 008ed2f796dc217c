package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/ps1db/internal/scrape"
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Populate the catalog from the Wikipedia game lists",
	Long: `Fetches the configured list pages, parses every game row and replaces
the catalog with the result. Run this once before the first scan, and
again whenever the lists change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client := scrape.New(nil, env.log)
		games, err := client.FetchAll(ctx, env.cfg.Scrape.URLs)
		if err != nil {
			return err
		}
		if len(games) == 0 {
			return fmt.Errorf("no games scraped; page layout may have changed")
		}
		if err := env.catalog.ReplaceAll(games); err != nil {
			return err
		}

		fmt.Printf("Catalog populated with %d games\n", len(games))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(populateCmd)
}
