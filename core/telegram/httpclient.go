package telegram

import (
	"net/http"
	"time"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/core/telegram/netutil"
)

// retryTransport retries transient Bot API failures at the transport level so
// that handler code never sees a flaky network blip.
type retryTransport struct {
	base     http.RoundTripper
	attempts int
	backoff  time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	log := logger.TG

	var resp *http.Response
	var err error
	for attempt := 1; attempt <= t.attempts; attempt++ {
		resp, err = t.base.RoundTrip(req)
		if err == nil && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		retriable := err != nil && netutil.ShouldRetry(err)
		if resp != nil {
			retriable = true
			resp.Body.Close()
		}
		if !retriable || attempt == t.attempts {
			return resp, err
		}
		delay := t.backoff * time.Duration(attempt)
		log.Debug("tg.http.retry", "attempt", attempt, "delay_ms", delay.Milliseconds())
		time.Sleep(delay)
	}
	return resp, err
}

// newHTTPClient builds the client handed to telebot with a total request
// timeout wide enough for long polling.
func newHTTPClient(longPollTimeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: longPollTimeout + 30*time.Second,
		Transport: &retryTransport{
			base:     http.DefaultTransport,
			attempts: 3,
			backoff:  500 * time.Millisecond,
		},
	}
}
