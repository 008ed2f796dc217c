package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/ps1db/internal/collection"
)

var (
	listOwned   bool
	listHunting bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List games by ownership state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		statuses := []collection.Status{collection.StatusOwned, collection.StatusHunting}
		switch {
		case listOwned && !listHunting:
			statuses = statuses[:1]
		case listHunting && !listOwned:
			statuses = statuses[1:]
		}

		var rows [][]string
		for _, st := range statuses {
			games, err := env.collection.ListByStatus(st)
			if err != nil {
				return err
			}
			for _, g := range games {
				rows = append(rows, []string{
					strconv.FormatInt(g.GameID, 10),
					g.Title,
					string(g.Status),
					g.Notes,
				})
			}
		}
		if len(rows) == 0 {
			fmt.Println("Nothing tracked yet")
			return nil
		}

		fmt.Println(renderTable([]string{"ID", "Title", "Status", "Notes"}, rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listOwned, "owned", false, "Only owned games")
	listCmd.Flags().BoolVar(&listHunting, "hunting", false, "Only games being hunted")
	rootCmd.AddCommand(listCmd)
}
