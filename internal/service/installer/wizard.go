package installer

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var ErrInterrupted = errors.New("setup interrupted")

// Step represents a single screen of the setup wizard. Update returns nil
// once the step has stored its answer.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// entering is implemented by steps that depend on earlier answers. Enter
// runs when the step becomes current; false skips it.
type entering interface {
	Enter(state *InstallState) bool
}

func getSteps() []Step {
	steps := []Step{NewChannelStep()}
	steps = append(steps, NewLiveKitSteps()...)
	return append(steps,
		NewProviderStep(),
		NewAPIKeyStep(),
		NewOllamaURLStep(),
		NewCustomURLStep(),
		NewModelStep(),
		NewPersistenceStep(),
		NewDatabaseURLStep(),
		NewTelegramTokenStep(),
		NewTelegramOwnerStep(),
	)
}

// model is the Bubble Tea model that walks through the steps.
type model struct {
	steps    []Step
	current  int
	state    *InstallState
	quitting bool
	done     bool
	width    int
	height   int
}

func initialModel() model {
	m := model{
		steps: getSteps(),
		state: NewInstallState(),
	}
	m.current = m.next(0)
	return m
}

// next returns the index of the first step from i that wants to run.
func (m model) next(i int) int {
	for ; i < len(m.steps); i++ {
		if e, ok := m.steps[i].(entering); ok && !e.Enter(m.state) {
			continue
		}
		break
	}
	return i
}

func (m model) Init() tea.Cmd {
	if m.current < len(m.steps) {
		return m.steps[m.current].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.current >= len(m.steps) {
		m.done = true
		return m, tea.Quit
	}

	step, cmd := m.steps[m.current].Update(msg, m.state, m.width, m.height)
	if step != nil {
		m.steps[m.current] = step
		return m, cmd
	}

	m.current = m.next(m.current + 1)
	if m.current >= len(m.steps) {
		m.done = true
		return m, tea.Quit
	}
	return m, m.steps[m.current].Init()
}

func (m model) View() string {
	switch {
	case m.quitting:
		return "Setup cancelled.\n"
	case m.done:
		return "Configuration complete!\n"
	}
	return titleStyle.Render("Setting up roombot") + "\n\n" + m.steps[m.current].View(m.state)
}

// RunWizard asks for the settings interactively and returns them as env
// variables.
func RunWizard() (map[string]string, error) {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := m.(model)
	if final.quitting || !final.done {
		return nil, ErrInterrupted
	}
	return final.state.EnvVars, nil
}

// renderChoices draws a cursor list; mark decorates each label.
func renderChoices(title string, labels []string, cursor int, mark func(i int) string) string {
	var b strings.Builder
	b.WriteString(title + "\n\n")
	for i, label := range labels {
		line := fmt.Sprintf("%s%s", mark(i), label)
		if i == cursor {
			b.WriteString(selStyle.Render("❯ "+line) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+line) + "\n")
		}
	}
	return b.String()
}
