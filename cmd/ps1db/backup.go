package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/ps1db/internal/collection"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage digital backups",
}

var backupAddCmd = &cobra.Command{
	Use:   "add <game-id> <file>",
	Short: "Record a backup file for a game",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid game id %q", args[0])
		}
		path, err := filepath.Abs(args[1])
		if err != nil {
			return err
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("backup file: %w", err)
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

		sum, err := collection.Checksum(path)
		if err != nil {
			return err
		}
		b := &collection.Backup{
			GameID:   id,
			FilePath: path,
			FileType: strings.ToLower(filepath.Ext(path)),
			FileSize: info.Size(),
			CRC32:    sum,
		}
		if err := env.collection.AddBackup(b); err != nil {
			return err
		}

		fmt.Printf("Backup recorded for %s (crc32 %s)\n", game.Title, sum)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded backups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		backups, err := env.collection.ListBackups()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Println("No backups recorded")
			return nil
		}

		rows := make([][]string, 0, len(backups))
		for _, b := range backups {
			verified := "never"
			if b.LastVerified != nil {
				verified = b.LastVerified.Format("2006-01-02")
			}
			rows = append(rows, []string{
				strconv.FormatInt(b.GameID, 10),
				b.Title,
				b.FilePath,
				formatBytes(b.FileSize),
				b.CRC32,
				verified,
			})
		}
		fmt.Println(renderTable(
			[]string{"Game", "Title", "File", "Size", "CRC32", "Verified"}, rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft}))
		return nil
	},
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}

func init() {
	backupCmd.AddCommand(backupAddCmd)
	backupCmd.AddCommand(backupListCmd)
	rootCmd.AddCommand(backupCmd)
}
