package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pugxlabs/pugx/cmd/pugx/internal/ui"
)

func newCreateCommand() *cobra.Command {
	var (
		noInteractive bool
		srcDir        string
		outDir        string
		port          int
	)

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new pugx project",
		Long:  `Scaffolds a project directory with a pugx.yaml, a sample template, and an output directory wired for live reload.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			if noInteractive {
				if name == "" {
					return fmt.Errorf("a project name is required with --no-interactive")
				}
				cfg := ui.ProjectConfig{Name: name, SrcDir: srcDir, OutDir: outDir, Port: port}
				if err := ui.CreateProject(cfg); err != nil {
					return err
				}
				fmt.Println(successStyle.Render("✓ created " + name))
				fmt.Println(dimStyle.Render(fmt.Sprintf("cd %s && pugx dev", name)))
				return nil
			}

			cfg, err := ui.RunCreateWizard(name)
			if err != nil {
				return err
			}
			fmt.Println(successStyle.Render("✓ created " + cfg.Name))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Skip the wizard and use flag values")
	cmd.Flags().StringVar(&srcDir, "src", "templates", "Template directory")
	cmd.Flags().StringVar(&outDir, "out", "dist", "Output directory")
	cmd.Flags().IntVar(&port, "port", 5173, "Dev server port")
	return cmd
}
