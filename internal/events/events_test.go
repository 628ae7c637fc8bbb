// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package events

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/mattailor/internal/logging"
	"github.com/tomtom215/mattailor/internal/metrics"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	bus, err := NewBus(DefaultConfig(), logging.NewTestLogger(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

// startRouter runs an audited router until the test ends.
func startRouter(t *testing.T, bus *Bus) *AuditLog {
	t.Helper()
	router, err := NewRouter(bus)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	audit := NewAuditLog(10, logging.NewTestLogger(&bytes.Buffer{}))
	router.AddAudit(audit)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- router.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}
	return audit
}

func waitForEntries(t *testing.T, audit *AuditLog, n int) []AuditEntry {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if got := audit.Recent(n); len(got) == n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("audit log has %d entries, want %d", len(audit.Recent(n)), n)
	return nil
}

func TestBus_PublishReachesAudit(t *testing.T) {
	bus := newTestBus(t)
	audit := startRouter(t, bus)

	published := metrics.EventsPublished.WithLabelValues(TopicTradeoff, metrics.ResultSuccess)
	consumed := metrics.EventsConsumed.WithLabelValues(TopicTradeoff)
	beforePub, beforeCons := testutil.ToFloat64(published), testutil.ToFloat64(consumed)

	ctx := logging.ContextWithRequestID(context.Background(), "req-42")
	err := bus.Publish(ctx, TopicTradeoff, TradeoffCompleted{
		AnalysisID:  "a-1",
		Materials:   []string{"al_6061_t6", "ti_6al_4v"},
		BestOverall: "ti_6al_4v",
		Method:      "multi_criteria_weighted",
		Confidence:  0.8,
	})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	entry := waitForEntries(t, audit, 1)[0]
	if entry.Topic != TopicTradeoff || entry.RequestID != "req-42" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Payload["best_overall"] != "ti_6al_4v" {
		t.Errorf("payload = %v", entry.Payload)
	}
	if entry.OccurredAt.IsZero() {
		t.Error("occurred_at not set")
	}
	if got := testutil.ToFloat64(published) - beforePub; got != 1 {
		t.Errorf("published delta = %v", got)
	}
	if got := testutil.ToFloat64(consumed) - beforeCons; got != 1 {
		t.Errorf("consumed delta = %v", got)
	}
	if audit.Counts()[TopicTradeoff] != 1 {
		t.Errorf("Counts() = %v", audit.Counts())
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := newTestBus(t)
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
	err := bus.Publish(context.Background(), TopicPlan, PlanCreated{SessionID: "rl_session_1"})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Publish() error = %v, want ErrClosed", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestBus_UnencodablePayload(t *testing.T) {
	bus := newTestBus(t)
	if err := bus.Publish(context.Background(), TopicPlan, make(chan int)); err == nil {
		t.Error("expected encode error")
	}
}

func TestNewBus_InvalidConfig(t *testing.T) {
	_, err := NewBus(Config{BufferSize: -1, CloseTimeout: time.Second}, logging.NewTestLogger(&bytes.Buffer{}))
	if err == nil {
		t.Error("expected error for negative buffer")
	}
}

func TestAuditLog_RingBuffer(t *testing.T) {
	audit := NewAuditLog(3, logging.NewTestLogger(&bytes.Buffer{}))
	for _, id := range []string{"e1", "e2", "e3", "e4", "e5"} {
		msg := message.NewMessage(id, []byte(`{"session_id":"`+id+`"}`))
		msg.Metadata.Set(MetadataTopic, TopicPlan)
		if err := audit.Handle(msg); err != nil {
			t.Fatal(err)
		}
	}

	recent := audit.Recent(10)
	if len(recent) != 3 {
		t.Fatalf("len(Recent) = %d, want 3", len(recent))
	}
	for i, want := range []string{"e5", "e4", "e3"} {
		if recent[i].ID != want {
			t.Errorf("recent[%d] = %s, want %s", i, recent[i].ID, want)
		}
	}
	if audit.Counts()[TopicPlan] != 5 {
		t.Errorf("Counts() = %v, want 5 plan events", audit.Counts())
	}
}

func TestAuditLog_DropsUndecodable(t *testing.T) {
	audit := NewAuditLog(3, logging.NewTestLogger(&bytes.Buffer{}))
	msg := message.NewMessage("bad", []byte("not json"))
	msg.Metadata.Set(MetadataTopic, TopicFeedback)

	if err := audit.Handle(msg); err != nil {
		t.Errorf("Handle() error = %v, want nil so the message is acked", err)
	}
	if len(audit.Recent(1)) != 0 {
		t.Error("undecodable event should not be stored")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), TopicPlan, nil); err != nil {
		t.Errorf("Publish() error = %v", err)
	}
}
