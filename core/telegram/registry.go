package telegram

import (
	"sort"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/core/telegram/commands"
)

// Registry collects command and callback handlers before the bot starts.
// Routes are installed once by RunTelegram; registration after start has
// no effect.
type Registry struct {
	commands  map[string]commands.Command
	callbacks map[string]tele.HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]commands.Command),
		callbacks: make(map[string]tele.HandlerFunc),
	}
}

// RegisterCommand binds a slash command. Name is given without the leading
// slash.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if name == "" || cmd.Handler == nil {
		return
	}
	r.commands[name] = cmd
}

// RegisterCallback binds a handler to a callback data key. The key matches
// the unique part of callback data, before the '|' payload separator.
func (r *Registry) RegisterCallback(key string, h tele.HandlerFunc) {
	key = strings.TrimSpace(key)
	if key == "" || h == nil {
		return
	}
	r.callbacks[key] = h
}

// Command returns the registered command by name.
func (r *Registry) Command(name string) (commands.Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Callback returns the handler registered for key.
func (r *Registry) Callback(key string) (tele.HandlerFunc, bool) {
	h, ok := r.callbacks[key]
	return h, ok
}

// CommandNames returns registered command names sorted alphabetically.
func (r *Registry) CommandNames() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitBotCommands publishes the visible command menu to Telegram.
// Hidden and admin-only commands are kept out of the public menu.
func InitBotCommands(bot *tele.Bot, reg *Registry) {
	log := logger.TG

	var menu []tele.Command
	for _, name := range reg.CommandNames() {
		cmd, _ := reg.Command(name)
		if cmd.Hidden || cmd.AdminOnly {
			continue
		}
		desc := cmd.Description
		if desc == "" {
			desc = name
		}
		menu = append(menu, tele.Command{Text: name, Description: desc})
	}
	if len(menu) == 0 {
		return
	}
	if err := bot.SetCommands(menu); err != nil {
		log.Warn("tg.commands.publish.failed", "error", err)
		return
	}
	log.Debug("tg.commands.published", "count", len(menu))
}
