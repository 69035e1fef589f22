package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Step represents the current step in the creation flow.
type Step int

const (
	StepName Step = iota
	StepSrcDir
	StepOutDir
	StepPort
	StepSummary
	StepExecuting
	StepComplete
)

// ProjectConfig holds all configuration for the new project.
type ProjectConfig struct {
	Name   string
	SrcDir string
	OutDir string
	Port   int
}

type keyMap struct {
	Next key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
	Quit: key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// Model is the bubbletea model for the create wizard.
type Model struct {
	step     Step
	inputs   []textinput.Model
	spinner  spinner.Model
	cfg      ProjectConfig
	err      error
	quitting bool
}

type createDoneMsg struct {
	err error
}

// NewModel creates the wizard model, pre-filling the project name when given.
func NewModel(projectName string) Model {
	mk := func(placeholder, value string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.SetValue(value)
		ti.CharLimit = 64
		return ti
	}

	inputs := []textinput.Model{
		mk("my-app", projectName),
		mk("templates", "templates"),
		mk("dist", "dist"),
		mk("5173", "5173"),
	}
	inputs[0].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{inputs: inputs, spinner: sp}
}

// GetConfig returns the collected project configuration.
func (m Model) GetConfig() ProjectConfig {
	return m.cfg
}

// Done reports whether the wizard finished successfully.
func (m Model) Done() bool {
	return m.step == StepComplete && m.err == nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			return m.advance()
		}
	case createDoneMsg:
		m.err = msg.err
		m.step = StepComplete
		return m, nil
	case spinner.TickMsg:
		if m.step == StepExecuting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if int(m.step) < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.step], cmd = m.inputs[m.step].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	switch m.step {
	case StepName, StepSrcDir, StepOutDir, StepPort:
		if strings.TrimSpace(m.inputs[m.step].Value()) == "" {
			return m, nil
		}
		if m.step == StepPort {
			if _, err := strconv.Atoi(m.inputs[StepPort].Value()); err != nil {
				return m, nil
			}
		}
		m.inputs[m.step].Blur()
		m.step++
		if int(m.step) < len(m.inputs) {
			m.inputs[m.step].Focus()
		}
		return m, nil
	case StepSummary:
		port, _ := strconv.Atoi(m.inputs[StepPort].Value())
		m.cfg = ProjectConfig{
			Name:   strings.TrimSpace(m.inputs[StepName].Value()),
			SrcDir: strings.TrimSpace(m.inputs[StepSrcDir].Value()),
			OutDir: strings.TrimSpace(m.inputs[StepOutDir].Value()),
			Port:   port,
		}
		m.step = StepExecuting
		cfg := m.cfg
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return createDoneMsg{err: CreateProject(cfg)}
		})
	case StepComplete:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting && m.step != StepComplete {
		return faintStyle.Render("cancelled") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("pugx · new project") + "\n")

	switch m.step {
	case StepName, StepSrcDir, StepOutDir, StepPort:
		labels := []string{"Project name", "Template directory", "Output directory", "Dev server port"}
		b.WriteString(labelStyle.Render(labels[m.step]) + "\n")
		b.WriteString(m.inputs[m.step].View() + "\n\n")
		b.WriteString(faintStyle.Render("enter to continue · esc to quit") + "\n")
	case StepSummary:
		summary := fmt.Sprintf("name    %s\nsrc     %s\nout     %s\nport    %s",
			m.inputs[StepName].Value(),
			m.inputs[StepSrcDir].Value(),
			m.inputs[StepOutDir].Value(),
			m.inputs[StepPort].Value())
		b.WriteString(summaryStyle.Render(summary) + "\n\n")
		b.WriteString(faintStyle.Render("enter to create · esc to quit") + "\n")
	case StepExecuting:
		b.WriteString(m.spinner.View() + " creating project...\n")
	case StepComplete:
		if m.err != nil {
			b.WriteString(errStyle.Render("✗ "+m.err.Error()) + "\n")
		} else {
			b.WriteString(okStyle.Render("✓ project created") + "\n\n")
			b.WriteString(faintStyle.Render(fmt.Sprintf("cd %s && pugx dev", m.cfg.Name)) + "\n")
		}
		b.WriteString(faintStyle.Render("enter to exit") + "\n")
	}
	return b.String()
}
