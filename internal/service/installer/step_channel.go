package installer

import (
	"errors"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

var errNoChannel = errors.New("select at least one channel")

type channel struct {
	label string
	key   string
	on    bool
}

// ChannelStep toggles the transports the bot listens on.
type ChannelStep struct {
	channels []channel
	cursor   int
	err      error
}

func NewChannelStep() Step {
	return &ChannelStep{
		channels: []channel{
			{label: "LiveKit room", key: "ENABLE_LIVEKIT", on: true},
			{label: "Telegram", key: "ENABLE_TELEGRAM"},
			{label: "Terminal chat", key: "ENABLE_CLI"},
		},
	}
}

func (s *ChannelStep) Init() tea.Cmd {
	return nil
}

func (s *ChannelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
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
		if s.cursor < len(s.channels)-1 {
			s.cursor++
		}
	case " ", "x":
		s.channels[s.cursor].on = !s.channels[s.cursor].on
		s.err = nil
	case "enter":
		selected := false
		for _, c := range s.channels {
			selected = selected || c.on
		}
		if !selected {
			s.err = errNoChannel
			return s, nil
		}
		for _, c := range s.channels {
			state.EnvVars[c.key] = strconv.FormatBool(c.on)
		}
		return nil, nil
	}
	return s, nil
}

func (s *ChannelStep) View(state *InstallState) string {
	labels := make([]string, len(s.channels))
	for i, c := range s.channels {
		labels[i] = c.label
	}
	view := renderChoices("Where should the bot chat?", labels, s.cursor, func(i int) string {
		if s.channels[i].on {
			return "[x] "
		}
		return "[ ] "
	})
	if s.err != nil {
		view += "\n" + errorStyle.Render(s.err.Error()) + "\n"
	}
	return view + "\n(space toggles, enter confirms)\n"
}
