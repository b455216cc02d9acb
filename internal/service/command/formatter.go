package command

import (
	"fmt"
	"strings"
)

// ResponseFormatter renders command replies as markdown. Transports convert
// the result for their medium (plain text in the room, HTML in Telegram).
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return fmt.Sprintf("⚙️ **%s**\n", title)
}

func (f *ResponseFormatter) Success(message string) string {
	return fmt.Sprintf("✅ **%s**\n", message)
}

// Error reports a failed command by name.
func (f *ResponseFormatter) Error(command string, err error) string {
	return fmt.Sprintf("❌ **/%s failed**\n\n**Issue**: %s\n", command, err.Error())
}

// Unknown answers a command that is not registered.
func (f *ResponseFormatter) Unknown(command string) string {
	return fmt.Sprintf("Unknown command: /%s. Try /help.", command)
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**  ›  `%s`\n", label, value)
}

func (f *ResponseFormatter) Usage(command string) string {
	return fmt.Sprintf("**Usage**: `%s`\n", command)
}

func (f *ResponseFormatter) Examples(examples []string) string {
	quoted := make([]string, len(examples))
	for i, ex := range examples {
		quoted[i] = "`" + ex + "`"
	}
	return "**Examples**: " + strings.Join(quoted, ", ") + "\n"
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("› " + item + "\n")
	}
	return sb.String()
}

func (f *ResponseFormatter) Tip(text string) string {
	return fmt.Sprintf("**Tip**: %s\n", text)
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}
