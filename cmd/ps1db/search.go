package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search the catalog by title, publisher or serial",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		term := strings.Join(args, " ")
		games, err := env.catalog.SearchGames(term)
		if err != nil {
			return err
		}
		if len(games) == 0 {
			fmt.Printf("No games matching %q\n", term)
			return nil
		}

		rows := make([][]string, 0, len(games))
		for _, g := range games {
			rows = append(rows, []string{
				strconv.FormatInt(g.ID, 10),
				g.Title,
				g.SerialNumber,
				g.Publisher,
				g.Regions().String(),
			})
		}
		fmt.Println(renderTable(
			[]string{"ID", "Title", "Serial", "Publisher", "Regions"}, rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
