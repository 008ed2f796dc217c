package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the catalog and collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		cs, err := env.catalog.Stats()
		if err != nil {
			return err
		}
		counts, err := env.collection.Counts()
		if err != nil {
			return err
		}

		rows := [][]string{
			{"Catalog games", strconv.Itoa(cs.TotalGames)},
			{"Launch titles", strconv.Itoa(cs.LaunchTitles)},
			{"Released in Japan", strconv.Itoa(cs.RegionJP)},
			{"Released in Europe", strconv.Itoa(cs.RegionEU)},
			{"Released in North America", strconv.Itoa(cs.RegionNA)},
			{"Publishers", strconv.Itoa(cs.Publishers)},
			{"Owned", strconv.Itoa(counts.Owned)},
			{"Hunting", strconv.Itoa(counts.Hunting)},
			{"Backups", strconv.Itoa(counts.Backups)},
			{"Backups verified", strconv.Itoa(counts.Verified)},
			{"Library files", strconv.Itoa(counts.LibraryFiles)},
		}
		fmt.Println(renderTable([]string{"Metric", "Count"}, rows,
			[]columnAlignment{alignLeft, alignRight}))

		byType, err := env.collection.CountByFileType()
		if err != nil {
			return err
		}
		if len(byType) > 0 {
			exts := make([]string, 0, len(byType))
			for ext := range byType {
				exts = append(exts, ext)
			}
			sort.Strings(exts)

			typeRows := make([][]string, 0, len(exts))
			for _, ext := range exts {
				typeRows = append(typeRows, []string{ext, strconv.Itoa(byType[ext])})
			}
			fmt.Println(renderTable([]string{"File Type", "Count"}, typeRows,
				[]columnAlignment{alignLeft, alignRight}))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
