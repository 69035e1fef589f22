package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pugxlabs/pugx/cmd/pugx/internal/config"
	"github.com/pugxlabs/pugx/internal/cache"
)

func newCleanCommand() *cobra.Command {
	var keepCache bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build output and the compile cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if err := os.RemoveAll(cfg.OutDir); err != nil {
				return fmt.Errorf("failed to remove %s: %w", cfg.OutDir, err)
			}
			if !keepCache {
				c, err := cache.Open(cache.DefaultDir)
				if err != nil {
					return err
				}
				if err := c.Clear(); err != nil {
					return err
				}
				if err := c.Close(); err != nil {
					return err
				}
			}
			fmt.Println(successStyle.Render("✓ cleaned"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepCache, "keep-cache", false, "Keep the compile cache")
	return cmd
}
