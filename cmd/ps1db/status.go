package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/ps1db/internal/collection"
)

var statusNotes string

var statusCmd = &cobra.Command{
	Use:   "status <game-id> <OWNED|HUNTING|NONE>",
	Short: "Record the ownership state of a game",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid game id %q", args[0])
		}
		status, err := collection.ParseStatus(args[1])
		if err != nil {
			return err
		}

		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		game, err := env.catalog.GetGame(id)
		if err != nil {
			return err
		}
		if err := env.collection.SetStatus(id, status, statusNotes); err != nil {
			return err
		}

		fmt.Printf("%s: %s\n", game.Title, status)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusNotes, "notes", "", "Free-form note stored with the status")
	rootCmd.AddCommand(statusCmd)
}
