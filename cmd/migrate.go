package main

import (
	"fmt"

	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(db.MigrateUp), string(db.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadConfig()
			if err != nil {
				return err
			}

			conn := db.ConnConfig{
				User:     cf.DbUser,
				Password: cf.DbPas,
				Host:     cf.DbHost,
				Port:     cf.DbPort,
				DbName:   cf.DbName,
			}
			direction := db.MigrateDirection(args[0])
			if err := db.RunMigration(conn.MigrateURL(), direction); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s completed\n", direction)
			return nil
		},
	}
}
