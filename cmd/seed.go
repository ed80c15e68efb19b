package main

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/appcontext"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "upsert the book catalog from a yaml file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadConfig()
			if err != nil {
				return err
			}

			app, err := appcontext.NewApplicationContext(cf)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = app.Shutdown(ctx)
			}()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			n, err := app.SeedCatalog(ctx, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d books\n", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed yaml (default $SEED_FILE)")
	return cmd
}
