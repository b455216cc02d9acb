package installer

import (
	"fmt"
	"strconv"
)

func NewTelegramTokenStep() Step {
	s := newInputStep("TELEGRAM_TOKEN", "Telegram bot token", "123456789:ABCDEF...", true)
	s.when = enabled("ENABLE_TELEGRAM")
	return s
}

// NewTelegramOwnerStep restricts the bot to one account when answered.
func NewTelegramOwnerStep() Step {
	s := newInputStep("TELEGRAM_OWNER_ID", "Telegram user ID of the owner", "123456789", false)
	s.optional = true
	s.validate = func(value string) error {
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("%q is not a numeric user ID", value)
		}
		return nil
	}
	s.when = enabled("ENABLE_TELEGRAM")
	return s
}
