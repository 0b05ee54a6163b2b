package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lamina-ui/lamina/internal/config"
)

func initCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default lamina.yaml in the current directory",
		Long: `Write a lamina.yaml with default settings to the current directory.
Existing files are never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (default: directory name)")

	return cmd
}

func runInit(name string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	path := filepath.Join(wd, config.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", config.ConfigFileName)
	}

	cfg := config.New()
	if name == "" {
		name = filepath.Base(wd)
	}
	cfg.Name = name

	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	success("wrote %s", config.ConfigFileName)
	info("project: %s", name)
	info("server:  http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	return nil
}
