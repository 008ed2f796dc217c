package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List scanned library files and their matches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		entries, err := env.collection.ListEntries()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Library is empty; run a scan first")
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			matched := e.Title
			if matched == "" {
				matched = "-"
			}
			rows = append(rows, []string{
				matched,
				e.FilePath,
				fmt.Sprintf("%d/%d", e.DiscNumber, e.TotalDiscs),
				formatBytes(e.FileSize),
			})
		}
		fmt.Println(renderTable([]string{"Matched Title", "File", "Disc", "Size"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))

		byType, err := env.collection.CountByFileType()
		if err != nil {
			return err
		}
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
		return nil
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
}
