package mailer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// OutboxMessage is one email queued for asynchronous delivery.
type OutboxMessage struct {
	To       []string
	Subject  string
	HTMLBody string
	attempts int
}

// Outbox decouples email delivery from the request path. Enqueue never blocks
// the caller beyond the channel buffer; delivery failures are retried with
// backoff and finally logged and dropped. The primary data mutation is never
// rolled back because of a mail failure.
type Outbox struct {
	sender     Sender
	logger     *slog.Logger
	queue      chan OutboxMessage
	maxRetries int
	backoff    time.Duration
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// NewOutbox creates an Outbox with the given queue capacity.
func NewOutbox(sender Sender, logger *slog.Logger, capacity int) *Outbox {
	if capacity <= 0 {
		capacity = 256
	}
	return &Outbox{
		sender:     sender,
		logger:     logger,
		queue:      make(chan OutboxMessage, capacity),
		maxRetries: 3,
		backoff:    2 * time.Second,
	}
}

// Start launches the delivery workers. It returns immediately; workers stop
// when ctx is cancelled and the queue has drained.
func (o *Outbox) Start(ctx context.Context, workers int) {
	if workers <= 0 {
		workers = 2
	}
	for i := 0; i < workers; i++ {
		o.wg.Add(1)
		go o.worker(ctx, i)
	}
}

func (o *Outbox) worker(ctx context.Context, id int) {
	defer o.wg.Done()
	logger := o.logger.With(slog.Int("outbox_worker", id))

	for {
		select {
		case <-ctx.Done():
			// drain whatever is already queued before exiting
			for {
				select {
				case msg, ok := <-o.queue:
					if !ok {
						return
					}
					o.deliver(context.Background(), logger, msg)
				default:
					return
				}
			}
		case msg, ok := <-o.queue:
			if !ok {
				return
			}
			o.deliver(ctx, logger, msg)
		}
	}
}

func (o *Outbox) deliver(ctx context.Context, logger *slog.Logger, msg OutboxMessage) {
	for {
		err := o.sender.Send(ctx, msg.To, msg.Subject, msg.HTMLBody)
		if err == nil {
			return
		}

		msg.attempts++
		if msg.attempts > o.maxRetries {
			logger.Error("Dropping email after retries exhausted",
				slog.String("subject", msg.Subject),
				slog.Int("attempts", msg.attempts),
				slog.String("error", err.Error()),
			)
			return
		}

		logger.Warn("Email delivery failed, retrying",
			slog.String("subject", msg.Subject),
			slog.Int("attempt", msg.attempts),
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(o.backoff * time.Duration(msg.attempts)):
		}
	}
}

// Enqueue queues a message for delivery. If the queue is full the message is
// dropped and logged, keeping the caller non-blocking.
func (o *Outbox) Enqueue(msg OutboxMessage) {
	if len(msg.To) == 0 {
		return
	}
	select {
	case o.queue <- msg:
	default:
		o.logger.Warn("Outbox queue full, dropping email", slog.String("subject", msg.Subject))
	}
}

// EnqueueRendered decodes nothing; it renders the typed payload for the given
// email type and queues the result. Render errors are logged and swallowed.
func (o *Outbox) EnqueueRendered(emailType EmailType, payload any, to []string) {
	subject, body, err := Render(emailType, payload)
	if err != nil {
		o.logger.Error("Failed to render email", slog.String("email_type", string(emailType)), slog.String("error", err.Error()))
		return
	}
	o.Enqueue(OutboxMessage{To: to, Subject: subject, HTMLBody: body})
}

// Close stops accepting new messages and waits for the workers to finish.
func (o *Outbox) Close() {
	o.closeOnce.Do(func() { close(o.queue) })
	o.wg.Wait()
}
