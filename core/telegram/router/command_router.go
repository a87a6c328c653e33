package router

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/core/telegram/commands"
	"github.com/chanceofrain/spotifam/core/telegram/middleware"
)

// CommandSource resolves slash command names to handlers.
type CommandSource interface {
	Command(name string) (commands.Command, bool)
}

// NewCommandRouter dispatches "/name" messages to registered commands.
// Admin-only commands are dropped for other senders; unknown commands fall
// through to the fallback handler when one is given.
func NewCommandRouter(src CommandSource, adminID int64, fallback tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		name := commandName(c.Text())
		if name == "" {
			if fallback != nil {
				return fallback(c)
			}
			return nil
		}

		cmd, ok := src.Command(name)
		if !ok {
			log := logger.TG
			log.Debug("tg.command.unknown", "command", name)
			if fallback != nil {
				return fallback(c)
			}
			return nil
		}
		h := handleWithSummary("cmd."+name, cmd.Handler)
		if cmd.AdminOnly {
			h = middleware.AdminOnly(adminID)(h)
		}
		return h(c)
	}
}

// commandName extracts the command from a message like "/orders@BotName arg".
func commandName(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name := strings.TrimPrefix(strings.Fields(text)[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name)
}
