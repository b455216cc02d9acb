package installer

// InstallState holds the answers as env variables, keyed like the config.
type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

// Enabled reports whether a boolean answer was set to true.
func (s *InstallState) Enabled(key string) bool {
	return s.EnvVars[key] == "true"
}
