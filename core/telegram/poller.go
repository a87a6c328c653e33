package telegram

import (
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/config"
)

// buildPoller selects the update source from config: long polling by default,
// webhook when telegram.run_mode is "webhook".
func buildPoller(cfg *config.Config) (tele.Poller, error) {
	switch cfg.Telegram.RunMode {
	case config.RunModeWebhook:
		listen := cfg.Webhook.Listen
		if cfg.Webhook.Port > 0 {
			listen = fmt.Sprintf("%s:%d", cfg.Webhook.Listen, cfg.Webhook.Port)
		}
		return &tele.Webhook{
			Listen: listen,
			Endpoint: &tele.WebhookEndpoint{
				PublicURL: cfg.Webhook.URL,
			},
		}, nil
	case config.RunModeLongpoll:
		timeout := time.Duration(cfg.Telegram.LongPollTimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		return &tele.LongPoller{Timeout: timeout}, nil
	default:
		return nil, fmt.Errorf("unsupported run mode %q", cfg.Telegram.RunMode)
	}
}
