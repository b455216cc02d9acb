package core

type PromptConfig interface {
	GetSystemPath() string
	GetIdentityPath() string
}
