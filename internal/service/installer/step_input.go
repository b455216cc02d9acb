package installer

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var errRequired = errors.New("a value is required")

// InputStep asks for one free-text setting.
type InputStep struct {
	key   string
	title string
	input textinput.Model

	// fallback is stored when the answer is left empty.
	fallback string
	optional bool
	validate func(string) error
	// when gates the step on earlier answers; nil always runs it.
	when    func(*InstallState) bool
	prepare func(*InputStep, *InstallState)

	err error
}

func newInputStep(key, title, placeholder string, secret bool) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 48
	ti.Placeholder = placeholder
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return &InputStep{key: key, title: title, input: ti}
}

func (s *InputStep) Enter(state *InstallState) bool {
	if s.when != nil && !s.when(state) {
		return false
	}
	if s.prepare != nil {
		s.prepare(s, state)
	}
	return true
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if ok && key.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if value == "" {
			value = s.fallback
		}
		if value == "" {
			if !s.optional {
				s.err = errRequired
				return s, nil
			}
			return nil, nil
		}
		if s.validate != nil {
			if err := s.validate(value); err != nil {
				s.err = err
				return s, nil
			}
		}
		state.EnvVars[s.key] = value
		return nil, nil
	}
	if ok {
		s.err = nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	hint := ""
	switch {
	case s.fallback != "":
		hint = fmt.Sprintf(" (Enter keeps %s)", s.fallback)
	case s.optional:
		hint = " (optional, press Enter to skip)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Enter the %s%s:\n\n%s\n", s.title, hint, s.input.View())
	if s.err != nil {
		b.WriteString("\n" + errorStyle.Render(s.err.Error()) + "\n")
	}
	b.WriteString("\n(press enter to confirm)\n")
	return b.String()
}

func validateURL(schemes ...string) func(string) error {
	return func(value string) error {
		u, err := url.Parse(value)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%q is not a valid URL", value)
		}
		if !slices.Contains(schemes, u.Scheme) {
			return fmt.Errorf("the URL must start with %s://", strings.Join(schemes, ":// or "))
		}
		return nil
	}
}

func enabled(key string) func(*InstallState) bool {
	return func(state *InstallState) bool { return state.Enabled(key) }
}
