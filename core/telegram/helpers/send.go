package helpers

import (
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/telegram/sender"
)

var (
	dispatcherMu sync.RWMutex
	dispatcher   *sender.Dispatcher
)

// SetDispatcher installs the async sender used by the helpers below.
// Before it is set, sends go through the bot synchronously.
func SetDispatcher(d *sender.Dispatcher) {
	dispatcherMu.Lock()
	dispatcher = d
	dispatcherMu.Unlock()
}

func getDispatcher() *sender.Dispatcher {
	dispatcherMu.RLock()
	defer dispatcherMu.RUnlock()
	return dispatcher
}

// SendText replies with plain text via the async queue.
func SendText(c tele.Context, text string, opts ...any) error {
	if d := getDispatcher(); d != nil && c.Chat() != nil {
		d.Enqueue(c.Chat(), text, opts...)
		return nil
	}
	return c.Send(text, opts...)
}

// SendMD replies with Markdown formatting.
func SendMD(c tele.Context, text string, opts ...any) error {
	opts = append(opts, tele.ModeMarkdown)
	return SendText(c, text, opts...)
}

// EditOrSendMD edits the message behind a callback in place, falling back
// to a fresh message when the original is too old to edit.
func EditOrSendMD(c tele.Context, text string, opts ...any) error {
	opts = append(opts, tele.ModeMarkdown)
	if c.Callback() != nil {
		if err := c.Edit(text, opts...); err == nil {
			return nil
		}
	}
	return SendText(c, text, opts...)
}

// NotifyUser sends to an arbitrary chat outside a handler context.
func NotifyUser(bot *tele.Bot, chatID int64, text string, opts ...any) error {
	rec := &tele.Chat{ID: chatID}
	if d := getDispatcher(); d != nil {
		d.Enqueue(rec, text, opts...)
		return nil
	}
	_, err := bot.Send(rec, text, opts...)
	return err
}
