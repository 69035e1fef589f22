package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pugxlabs/pugx/cmd/pugx/internal/config"
	"github.com/pugxlabs/pugx/internal/cache"
	"github.com/pugxlabs/pugx/pkg/compiler"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newBuildCommand() *cobra.Command {
	var cwd string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile all templates to JSX",
		Long:  `Compiles every .pug template under the source directory into a .jsx file under the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("failed to change directory to %s: %w", cwd, err)
				}
			}
			return runBuild()
		},
	}

	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory of the project (defaults to current)")
	return cmd
}

func runBuild() error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	c, err := cache.Open(cache.DefaultDir)
	if err != nil {
		return err
	}
	defer c.Close()
	return buildAll(cfg, c)
}

func buildAll(cfg *config.Config, c *cache.Cache) error {
	start := time.Now()
	count := 0
	err := filepath.WalkDir(cfg.SrcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".pug") {
			return nil
		}
		outPath, err := outputPath(cfg, path)
		if err != nil {
			return err
		}
		cached, err := compileOne(c, path, outPath)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ " + path))
			return err
		}
		note := ""
		if cached {
			note = " (cached)"
		}
		fmt.Println(dimStyle.Render(fmt.Sprintf("  %s → %s%s", path, outPath, note)))
		count++
		return nil
	})
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("✓ compiled %d template(s) in %s", count, time.Since(start).Round(time.Millisecond))
	if hits := c.Stats().Hits; hits > 0 {
		summary += fmt.Sprintf(", %d from cache", hits)
	}
	fmt.Println(successStyle.Render(summary))
	return nil
}

// compileOne compiles a single template, consulting the build cache first.
func compileOne(c *cache.Cache, srcPath, outPath string) (cached bool, err error) {
	source, err := os.ReadFile(srcPath)
	if err != nil {
		return false, err
	}

	name := compiler.ComponentName(srcPath)
	key := cache.Key(name, string(source))
	out, hit := c.Get(key)
	if !hit {
		out, err = compiler.Compile(srcPath, string(source), compiler.Options{ComponentName: name})
		if err != nil {
			return false, err
		}
		if err := c.Put(key, out); err != nil {
			return false, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return false, err
	}
	return hit, os.WriteFile(outPath, []byte(out), 0644)
}

// outputPath maps a source template path to its .jsx destination, keeping
// the directory layout below SrcDir.
func outputPath(cfg *config.Config, srcPath string) (string, error) {
	rel, err := filepath.Rel(cfg.SrcDir, srcPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.OutDir, strings.TrimSuffix(rel, ".pug")+".jsx"), nil
}
