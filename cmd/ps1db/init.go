package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		fmt.Printf("Database ready at %s\n", env.cfg.Database.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
