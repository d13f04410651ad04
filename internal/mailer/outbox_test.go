package mailer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	sent     []OutboxMessage
	failures int
}

func (r *recordingSender) Send(_ context.Context, to []string, subject, htmlBody string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("smtp unavailable")
	}
	r.sent = append(r.sent, OutboxMessage{To: to, Subject: subject, HTMLBody: htmlBody})
	return nil
}

func (r *recordingSender) sentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestOutbox_DeliversEnqueuedMessages(t *testing.T) {
	sender := &recordingSender{}
	outbox := NewOutbox(sender, slog.Default(), 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	outbox.Start(ctx, 1)

	outbox.Enqueue(OutboxMessage{To: []string{"a@example.com"}, Subject: "s1", HTMLBody: "<p>b1</p>"})
	outbox.Enqueue(OutboxMessage{To: []string{"b@example.com"}, Subject: "s2", HTMLBody: "<p>b2</p>"})

	waitFor(t, func() bool { return sender.sentCount() == 2 })
}

func TestOutbox_RetriesTransientFailures(t *testing.T) {
	sender := &recordingSender{failures: 2}
	outbox := NewOutbox(sender, slog.Default(), 16)
	outbox.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	outbox.Start(ctx, 1)

	outbox.Enqueue(OutboxMessage{To: []string{"a@example.com"}, Subject: "flaky", HTMLBody: "<p>b</p>"})

	waitFor(t, func() bool { return sender.sentCount() == 1 })
	assert.Equal(t, "flaky", sender.sent[0].Subject)
}

func TestOutbox_DropsAfterRetriesExhausted(t *testing.T) {
	sender := &recordingSender{failures: 100}
	outbox := NewOutbox(sender, slog.Default(), 16)
	outbox.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	outbox.Start(ctx, 1)

	outbox.Enqueue(OutboxMessage{To: []string{"a@example.com"}, Subject: "doomed", HTMLBody: "<p>b</p>"})
	outbox.Enqueue(OutboxMessage{To: []string{"b@example.com"}, Subject: "fine", HTMLBody: "<p>b</p>"})

	// after the first message burns its retries (4 attempts), the sender
	// still has failures left, so the second also burns through; nothing lands
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, sender.sentCount())
}

func TestOutbox_IgnoresEmptyRecipientList(t *testing.T) {
	sender := &recordingSender{}
	outbox := NewOutbox(sender, slog.Default(), 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	outbox.Start(ctx, 1)

	outbox.Enqueue(OutboxMessage{To: nil, Subject: "nobody", HTMLBody: "<p>b</p>"})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, sender.sentCount())
}

func TestOutbox_EnqueueRendered(t *testing.T) {
	sender := &recordingSender{}
	outbox := NewOutbox(sender, slog.Default(), 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	outbox.Start(ctx, 1)

	outbox.EnqueueRendered(EmailLowBalanceAlert, &LowBalanceAlertPayload{
		Branch:    "BLR-01",
		Balance:   "-500.00",
		Threshold: "500",
	}, []string{"admin@example.com"})

	waitFor(t, func() bool { return sender.sentCount() == 1 })
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Subject, "BLR-01")
	assert.Contains(t, sender.sent[0].HTMLBody, "-500.00")
}
