package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/ps1db/internal/collection"
	"github.com/vmunix/ps1db/pkg/title"
)

var organizeRegion string

var regionGroups = []string{"NTSC-U", "PAL", "NTSC-J", "Unknown"}

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Group scanned library files by release region",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var only string
		switch organizeRegion {
		case "":
		case "na":
			only = "NTSC-U"
		case "eu":
			only = "PAL"
		case "jp":
			only = "NTSC-J"
		default:
			return fmt.Errorf("unknown region %q (want jp, eu or na)", organizeRegion)
		}

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

		catalog, err := env.catalog.Entries()
		if err != nil {
			return err
		}
		regions := make(map[int64]title.RegionSet, len(catalog))
		for _, e := range catalog {
			regions[e.ID] = e.Regions
		}

		groups := make(map[string][][]string)
		for _, e := range entries {
			g := regionGroup(e, regions)
			groups[g] = append(groups[g], libraryRow(e))
		}

		for _, name := range regionGroups {
			rows := groups[name]
			if len(rows) == 0 || (only != "" && name != only) {
				continue
			}
			fmt.Printf("%s (%d)\n", name, len(rows))
			fmt.Println(renderTable([]string{"Title", "File", "Discs", "Size"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
		}
		return nil
	},
}

// regionGroup buckets a library file by its matched game's release regions.
// NA wins over EU over JP so multi-region releases land in one group.
func regionGroup(e *collection.LibraryEntry, regions map[int64]title.RegionSet) string {
	if e.GameID == nil {
		return "Unknown"
	}
	rs, ok := regions[*e.GameID]
	if !ok {
		return "Unknown"
	}
	switch {
	case rs.NA:
		return "NTSC-U"
	case rs.EU:
		return "PAL"
	case rs.JP:
		return "NTSC-J"
	}
	return "Unknown"
}

func libraryRow(e *collection.LibraryEntry) []string {
	t := e.Title
	if t == "" {
		t = "-"
	}
	discs := "-"
	if e.TotalDiscs > 1 {
		discs = fmt.Sprintf("%d/%d", e.DiscNumber, e.TotalDiscs)
	}
	return []string{t, e.FilePath, discs, formatBytes(e.FileSize)}
}

func init() {
	organizeCmd.Flags().StringVar(&organizeRegion, "region", "", "Only show one region: jp, eu or na")
	rootCmd.AddCommand(organizeCmd)
}
