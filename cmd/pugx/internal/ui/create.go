package ui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pugxlabs/pugx/cmd/pugx/internal/config"
)

// RunCreateWizard starts the interactive TUI for project creation and
// scaffolds the project when the user confirms.
func RunCreateWizard(projectName string) (ProjectConfig, error) {
	if !isatty() {
		return ProjectConfig{}, fmt.Errorf("not running in a terminal, use --no-interactive")
	}

	p := tea.NewProgram(NewModel(projectName))
	finalModel, err := p.Run()
	if err != nil {
		return ProjectConfig{}, fmt.Errorf("wizard: %w", err)
	}

	m := finalModel.(Model)
	if !m.Done() {
		if m.err != nil {
			return m.GetConfig(), m.err
		}
		return ProjectConfig{}, fmt.Errorf("project creation cancelled")
	}
	return m.GetConfig(), nil
}

// CreateProject scaffolds a project directory: pugx.yaml, a sample template,
// and an index page wired for dev-server reloads.
func CreateProject(cfg ProjectConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("project name is required")
	}
	root := cfg.Name
	if _, err := os.Stat(root); err == nil {
		return fmt.Errorf("directory %s already exists", root)
	}

	srcDir := filepath.Join(root, cfg.SrcDir)
	outDir := filepath.Join(root, cfg.OutDir)
	for _, dir := range []string{srcDir, outDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	projectConfig := &config.Config{
		SrcDir: cfg.SrcDir,
		OutDir: cfg.OutDir,
		Dev: &config.DevConfig{
			Port: cfg.Port,
			Host: "localhost",
		},
	}
	if err := config.Save(projectConfig, root); err != nil {
		return err
	}

	sample := `.app
  h1.title Welcome to ` + cfg.Name + `
  p Edit ` + cfg.SrcDir + `/index.pug and save to reload.
  a(href="https://pugjs.org") template reference
`
	if err := os.WriteFile(filepath.Join(srcDir, "index.pug"), []byte(sample), 0644); err != nil {
		return err
	}

	index := `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>` + cfg.Name + `</title></head>
<body>
<p>Compiled components land in this directory. Open index.jsx.</p>
<script>
  new WebSocket("ws://" + location.host + "/__pugx_reload").onmessage = function (e) {
    if (e.data === "reload") location.reload();
  };
</script>
</body>
</html>
`
	return os.WriteFile(filepath.Join(outDir, "index.html"), []byte(index), 0644)
}

func isatty() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
