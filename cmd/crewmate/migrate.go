package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the crewmates table if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer s.close()

		log.Info("migration complete")
		return nil
	},
}
