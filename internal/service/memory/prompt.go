package memory

import (
	"os"
	"strings"

	"github.com/sandevgo/roombot/internal/core"
)

// SysPrompt assembles the system instructions from the runtime prompt
// files, falling back to the persona instructions when none exist.
type SysPrompt struct {
	cfg      core.PromptConfig
	fallback string
}

func NewSysPrompt(cfg core.PromptConfig, fallback string) *SysPrompt {
	return &SysPrompt{
		cfg:      cfg,
		fallback: fallback,
	}
}

func (p *SysPrompt) Build() string {
	readFile := func(path string) string {
		content, err := os.ReadFile(path)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(content))
	}

	var parts []string
	if content := readFile(p.cfg.GetSystemPath()); content != "" {
		parts = append(parts, content)
	}
	if content := readFile(p.cfg.GetIdentityPath()); content != "" {
		parts = append(parts, "YOUR IDENTITY:\n"+content)
	}
	if len(parts) == 0 {
		return strings.TrimSpace(p.fallback)
	}
	return strings.Join(parts, "\n\n")
}
