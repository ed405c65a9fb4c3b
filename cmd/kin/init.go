package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/kin-core/internal/infrastructure/config"
)

func newInitCmd() *cobra.Command {
	var backend, path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration in the current directory",
		Long: `Writes .kin/config.yaml. Without flags the commented default template
is written; with flags a config using the given storage settings is generated.

Examples:
  kin init
  kin init --backend json --path tree.json`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(backend, path)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "Storage backend (sqlite or json)")
	cmd.Flags().StringVar(&path, "path", "", "Storage file path (relative paths live under .kin/)")
	return cmd
}

func runInit(backend, path string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if backend == "" && path == "" {
		if err := config.WriteDefault(cwd); err != nil {
			return err
		}
		fmt.Printf("Initialized %s\n", config.ConfigDir(cwd))
		return nil
	}

	if backend != "" && backend != config.BackendSQLite && backend != config.BackendJSON {
		return fmt.Errorf("unknown storage backend %q (valid: %s, %s)",
			backend, config.BackendSQLite, config.BackendJSON)
	}
	if config.Exists(cwd) {
		return fmt.Errorf("config file already exists in %s", config.ConfigDir(cwd))
	}

	cfg := config.Default()
	if backend != "" {
		cfg.Storage.Backend = backend
	}
	if path != "" {
		cfg.Storage.Path = path
	}
	if err := config.Write(cwd, cfg); err != nil {
		return err
	}

	fmt.Printf("Initialized %s\n", config.ConfigDir(cwd))
	return nil
}
