package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

type option struct {
	label string
	value string
}

// SelectStep stores the value of the chosen option under key.
type SelectStep struct {
	title   string
	key     string
	options []option
	cursor  int
}

func (s *SelectStep) Init() tea.Cmd {
	return nil
}

func (s *SelectStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.options)-1 {
			s.cursor++
		}
	case "enter":
		state.EnvVars[s.key] = s.options[s.cursor].value
		return nil, nil
	}
	return s, nil
}

func (s *SelectStep) View(state *InstallState) string {
	labels := make([]string, len(s.options))
	for i, o := range s.options {
		labels[i] = o.label
	}
	return renderChoices(s.title, labels, s.cursor, func(int) string { return "" }) +
		"\n(press ctrl+c to quit)\n"
}
