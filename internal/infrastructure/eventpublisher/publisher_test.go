package eventpublisher

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase/mocks"
)

func TestProcessEventsPublishesAndMarks(t *testing.T) {
	repo := mocks.NewOutboxRepositoryStub()
	repo.Events = []*domain.OutboxEvent{{ID: "evt-1", EventType: domain.EventTypeMovementPosted}}
	pub := &stubPublisher{}
	ep := newTestPublisher(repo, pub)

	n, err := ep.ProcessEvents(context.Background())
	if err != nil {
		t.Fatalf("ProcessEvents failed: %v", err)
	}

	if n != 1 || len(pub.published) != 1 {
		t.Fatalf("expected one published event, got n=%d published=%d", n, len(pub.published))
	}
	if !repo.Events[0].Published {
		t.Fatalf("expected event to be marked published")
	}

	n, err = ep.ProcessEvents(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("expected nothing left to publish, got n=%d err=%v", n, err)
	}
}

func TestProcessEventsContinuesOnPublishError(t *testing.T) {
	repo := mocks.NewOutboxRepositoryStub()
	repo.Events = []*domain.OutboxEvent{
		{ID: "evt-1", EventType: domain.EventTypeMovementPosted},
		{ID: "evt-2", EventType: domain.EventTypeBudgetCreated},
	}
	pub := &stubPublisher{
		errorsByID: map[string]error{"evt-1": errors.New("fail")},
	}
	ep := newTestPublisher(repo, pub)

	if _, err := ep.ProcessEvents(context.Background()); err != nil {
		t.Fatalf("ProcessEvents returned error: %v", err)
	}

	if len(pub.published) != 1 || pub.published[0].ID != "evt-2" {
		t.Fatalf("expected only evt-2 to be published, got %#v", pub.published)
	}
	if repo.Events[0].Published || !repo.Events[1].Published {
		t.Fatalf("expected only evt-2 to be marked")
	}
}

func TestStartStopsOnContextCancellation(t *testing.T) {
	ep := newTestPublisher(mocks.NewOutboxRepositoryStub(), &stubPublisher{})
	ep.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ep.Start(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop after cancel")
	}
}

func TestLogPublisherWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf))

	err := p.Publish(context.Background(), &domain.OutboxEvent{
		ID:            "evt-1",
		EventType:     domain.EventTypeAccountCreated,
		AggregateType: domain.AggregateTypeAccount,
		AggregateID:   "acc-1",
		Payload:       map[string]any{"name": "Main"},
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !strings.Contains(buf.String(), `"event_type":"account.created"`) || !strings.Contains(buf.String(), `"name":"Main"`) {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

type stubPublisher struct {
	published  []*domain.OutboxEvent
	errorsByID map[string]error
}

func (s *stubPublisher) Publish(_ context.Context, event *domain.OutboxEvent) error {
	if err := s.errorsByID[event.ID]; err != nil {
		return err
	}
	s.published = append(s.published, event)
	return nil
}

func newTestPublisher(repo *mocks.OutboxRepositoryStub, pub Publisher) *EventPublisher {
	return NewEventPublisher(Config{
		OutboxRepo: repo,
		Publisher:  pub,
		Logger:     zerolog.Nop(),
		BatchSize:  10,
		Interval:   time.Second,
	})
}
