package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"usuarios-api/cmd/api/app"
	"usuarios-api/cmd/api/server"
)

var (
	version = "dev"
	commit  = "none"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "usuarios-api",
		Short:         "usuarios-api - user records HTTP service",
		Long:          `usuarios-api exposes create, list, update and delete operations for user records stored in MongoDB.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "directory containing app.env (or set CONFIG_PATH env var)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("usuarios-api %s (commit: %s)\n", version, commit)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "application exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	a, err := app.New(cmd.Context(), configPath)
	if err != nil {
		return err
	}

	ctx, stop := server.WithSignal(cmd.Context(), a.Logger)
	defer stop()

	return a.Run(ctx)
}
