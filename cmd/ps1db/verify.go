package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <game-id>",
	Short: "Verify a recorded backup against its checksum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid game id %q", args[0])
		}

		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		b, err := env.collection.VerifyBackup(id)
		if err != nil {
			return err
		}

		fmt.Printf("%s: OK (crc32 %s)\n", b.Title, b.CRC32)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
