package sender

import (
	"strings"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/core/telegram/netutil"
)

// Options tunes the outgoing queue.
type Options struct {
	QueueSize   int
	Workers     int
	MaxAttempts int
	BaseBackoff time.Duration
}

// DefaultOptions matches Telegram's practical per-bot send limits.
func DefaultOptions() Options {
	return Options{
		QueueSize:   256,
		Workers:     2,
		MaxAttempts: 3,
		BaseBackoff: 700 * time.Millisecond,
	}
}

// job is one queued outbound message.
type job struct {
	to   tele.Recipient
	what any
	opts []any
}

// Dispatcher serializes outbound sends through a worker pool with retry on
// transient failures. Handlers enqueue and return immediately; a full queue
// falls back to a synchronous send rather than dropping the message.
type Dispatcher struct {
	bot  *tele.Bot
	opts Options

	queue chan job
	wg    sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

func NewDispatcher(bot *tele.Bot, opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultOptions().QueueSize
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultOptions().Workers
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultOptions().MaxAttempts
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = DefaultOptions().BaseBackoff
	}
	return &Dispatcher{
		bot:   bot,
		opts:  opts,
		queue: make(chan job, opts.QueueSize),
	}
}

// Start launches the worker pool. Safe to call once.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	for i := 0; i < d.opts.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop closes the queue and waits for in-flight sends to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	close(d.queue)
	d.wg.Wait()
}

// Enqueue queues a message for async delivery.
func (d *Dispatcher) Enqueue(to tele.Recipient, what any, opts ...any) {
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()
	if stopped {
		d.deliver(job{to: to, what: what, opts: opts})
		return
	}
	select {
	case d.queue <- job{to: to, what: what, opts: opts}:
	default:
		// queue saturated; do the send inline instead of losing it
		d.deliver(job{to: to, what: what, opts: opts})
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	log := logger.TG
	var err error
	for attempt := 1; attempt <= d.opts.MaxAttempts; attempt++ {
		_, err = d.bot.Send(j.to, j.what, j.opts...)
		if err == nil {
			return
		}
		class := classifyError(err)
		if class == errPermanent || attempt == d.opts.MaxAttempts {
			break
		}
		delay := d.opts.BaseBackoff * time.Duration(attempt)
		if class == errFloodWait {
			delay = 3 * time.Second * time.Duration(attempt)
		}
		log.Debug("tg.send.retry",
			"attempt", attempt,
			"delay_ms", delay.Milliseconds(),
			"error", sanitizeErrorMessage(err),
		)
		time.Sleep(delay)
	}
	log.Warn("tg.send.failed",
		"recipient", j.to.Recipient(),
		"error", sanitizeErrorMessage(err),
	)
}

type errClass int

const (
	errTransient errClass = iota
	errFloodWait
	errPermanent
)

// classifyError separates retriable failures from ones retrying cannot fix,
// such as a user who blocked the bot.
func classifyError(err error) errClass {
	if err == nil {
		return errPermanent
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "retry after"), strings.Contains(msg, "too many requests"):
		return errFloodWait
	case strings.Contains(msg, "blocked by the user"),
		strings.Contains(msg, "chat not found"),
		strings.Contains(msg, "user is deactivated"),
		strings.Contains(msg, "bot can't initiate conversation"):
		return errPermanent
	case netutil.ShouldRetry(err):
		return errTransient
	default:
		return errTransient
	}
}

// sanitizeErrorMessage strips the bot token from API error text before it
// reaches the logs.
func sanitizeErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.Index(msg, "/bot"); i >= 0 {
		end := i + len("/bot")
		for end < len(msg) && msg[end] != '/' && msg[end] != ' ' && msg[end] != '"' {
			end++
		}
		msg = msg[:i+len("/bot")] + "<redacted>" + msg[end:]
	}
	return logger.SanitizeLimit(msg, 300)
}
