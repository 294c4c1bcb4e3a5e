package events

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInMemoryEventStore_StreamVersioning(t *testing.T) {
	store := NewInMemoryEventStore(zerolog.Nop())

	store.AppendEvent("run-1", NewRunStartedEvent("run-1", 6))
	store.AppendEvent("run-2", NewRunStartedEvent("run-2", 6))
	store.AppendEvent("run-1", NewRunCompletedEvent("run-1", 3, 0))

	events, err := store.ReadEvents("run-1", 0)
	if err != nil {
		t.Fatalf("Failed to read stream: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events on run-1, got %d", len(events))
	}
	for i, e := range events {
		if e.Version() != i+1 {
			t.Errorf("Expected version %d, got %d", i+1, e.Version())
		}
		if e.StreamID() != "run-1" {
			t.Errorf("Expected stream run-1, got %s", e.StreamID())
		}
	}
	if events[1].Type() != RunCompletedEvent {
		t.Errorf("Expected %s, got %s", RunCompletedEvent, events[1].Type())
	}
	if data, ok := events[1].Data().(RunCompleted); !ok || data.Records != 3 {
		t.Errorf("Expected RunCompleted payload with 3 records, got %#v", events[1].Data())
	}

	tail, _ := store.ReadEvents("run-1", 2)
	if len(tail) != 1 {
		t.Errorf("Expected 1 event from version 2, got %d", len(tail))
	}
	if none, _ := store.ReadEvents("run-1", 5); len(none) != 0 {
		t.Errorf("Expected no events past the stream end, got %d", len(none))
	}
	if none, _ := store.ReadEvents("missing", 0); len(none) != 0 {
		t.Errorf("Expected no events for unknown stream, got %d", len(none))
	}

	if other, _ := store.ReadEvents("run-2", 1); len(other) != 1 || other[0].Version() != 1 {
		t.Errorf("Expected run-2 to be versioned independently, got %v", other)
	}
}

func TestInMemoryEventStore_Subscribers(t *testing.T) {
	store := NewInMemoryEventStore(zerolog.Nop())

	var headerMisses, everything []string
	store.Subscribe([]string{HeaderNotFoundEvent}, HandlerFunc(func(e Event) error {
		headerMisses = append(headerMisses, e.Data().(HeaderNotFound).Sheet)
		return nil
	}))
	allID, _ := store.Subscribe(nil, HandlerFunc(func(e Event) error {
		everything = append(everything, e.Type())
		return nil
	}))

	store.AppendEvent("run", NewRunStartedEvent("run", 1))
	store.AppendEvent("run", NewHeaderNotFoundEvent("run", SheetStock, 4))

	store.Unsubscribe(allID)
	store.AppendEvent("run", NewHeaderNotFoundEvent("run", SheetRequisition, 2))

	if strings.Join(headerMisses, ",") != "stock,requisition" {
		t.Errorf("Expected header misses for stock then requisition, got %v", headerMisses)
	}
	if strings.Join(everything, ",") != RunStartedEvent+","+HeaderNotFoundEvent {
		t.Errorf("Expected catch-all subscriber to stop after unsubscribe, got %v", everything)
	}
}

func TestInMemoryEventStore_HandlerErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	store := NewInMemoryEventStore(zerolog.New(&buf))

	store.Subscribe(nil, HandlerFunc(func(Event) error {
		return errors.New("boom")
	}))

	if err := store.AppendEvent("run", NewRunStartedEvent("run", 1)); err != nil {
		t.Errorf("Expected append to succeed despite handler failure, got %v", err)
	}
	if !strings.Contains(buf.String(), "event handler failed") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("Expected handler failure to be logged, got %q", buf.String())
	}
	if events, _ := store.ReadEvents("run", 1); len(events) != 1 {
		t.Errorf("Expected event to be stored, got %d", len(events))
	}
}
