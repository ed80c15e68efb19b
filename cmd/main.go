package main

import (
	"os"

	"github.com/RoyceAzure/lab/bookstore/internal/config"
	"github.com/spf13/cobra"
)

// @title bookstore
// @version 1.0
// @description 線上書店 API
// @BasePath  /api/v1

//go:generate swag init -d ../ -g cmd/main.go -o ../docs --outputTypes go,json --parseInternal

var envFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookstore",
		Short:         "online bookstore server",
		SilenceUsage:  true,
		SilenceErrors: false,
		// 未指定子命令時啟動 http server
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "path to .env file (default $BOOKSTORE_ENV_FILE or ./.env)")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return root
}

// loadConfig --env-file 優先, 其餘沿用 config singleton
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		return config.LoadFrom(envFile)
	}
	return config.GetConfig(), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
