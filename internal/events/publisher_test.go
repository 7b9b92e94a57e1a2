package events

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	p := NewMemoryPublisher()
	defer p.Close()

	ch := p.Subscribe("T001")
	p.Publish(NewEvent(EventTaskSaved, "T001", SaveData{Fields: []string{"title"}}))

	select {
	case ev := <-ch:
		if ev.Type != EventTaskSaved {
			t.Errorf("Type = %s, want %s", ev.Type, EventTaskSaved)
		}
		if ev.TaskID != "T001" {
			t.Errorf("TaskID = %s, want T001", ev.TaskID)
		}
		if ev.ID == "" {
			t.Error("expected event ID to be set")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscriberIsolation(t *testing.T) {
	p := NewMemoryPublisher()
	defer p.Close()

	other := p.Subscribe("T002")
	p.Publish(NewEvent(EventTaskSaved, "T001", nil))

	select {
	case ev := <-other:
		t.Errorf("subscriber for T002 received event for %s", ev.TaskID)
	default:
	}
}

func TestGlobalSubscriber(t *testing.T) {
	p := NewMemoryPublisher()
	defer p.Close()

	global := p.Subscribe(GlobalTaskID)
	p.Publish(NewEvent(EventTaskCreated, "T001", nil))
	p.Publish(NewEvent(EventFocusChanged, "T002", FocusData{Current: "T002"}))

	for _, wantTask := range []string{"T001", "T002"} {
		select {
		case ev := <-global:
			if ev.TaskID != wantTask {
				t.Errorf("TaskID = %s, want %s", ev.TaskID, wantTask)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event for %s", wantTask)
		}
	}
}

func TestPublishDoesNotBlockOnFullBuffer(t *testing.T) {
	p := NewMemoryPublisher(WithBufferSize(1))
	defer p.Close()

	_ = p.Subscribe("T001")

	done := make(chan struct{})
	go func() {
		// Second publish would block forever if delivery were synchronous.
		p.Publish(NewEvent(EventTaskSaved, "T001", nil))
		p.Publish(NewEvent(EventTaskSaved, "T001", nil))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber buffer")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	p := NewMemoryPublisher()
	defer p.Close()

	ch := p.Subscribe("T001")
	p.Unsubscribe("T001", ch)

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed after unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	p.Publish(NewEvent(EventTaskSaved, "T001", nil))
}

func TestClose(t *testing.T) {
	p := NewMemoryPublisher()
	ch := p.Subscribe("T001")

	p.Close()
	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed after Close")
	}

	// Idempotent, and post-close operations are no-ops.
	p.Close()
	p.Publish(NewEvent(EventTaskSaved, "T001", nil))

	closed := p.Subscribe("T001")
	if _, ok := <-closed; ok {
		t.Error("expected subscription after Close to be closed immediately")
	}
}

func TestPublishHelperNilSafe(t *testing.T) {
	var h *PublishHelper

	// Every helper method must tolerate a nil receiver.
	h.TaskCreated("T001")
	h.TaskSaved("T001", []string{"title"})
	h.TaskDeleted("T001")
	h.ProgressUpdated("T001", "planning", "in_development", 30, "in_progress")
	h.CommitAssociated("T001", "abc123")
	h.FocusChanged("", "T001")
	h.HierarchyUpdated(1, 2)
}

func TestPublishHelperPublishes(t *testing.T) {
	p := NewMemoryPublisher()
	defer p.Close()

	h := NewPublishHelper(p)
	ch := p.Subscribe("T001")

	h.ProgressUpdated("T001", "planning", "in_development", 30, "in_progress")

	select {
	case ev := <-ch:
		if ev.Type != EventProgressUpdated {
			t.Errorf("Type = %s, want %s", ev.Type, EventProgressUpdated)
		}
		data, ok := ev.Data.(ProgressData)
		if !ok {
			t.Fatalf("Data has type %T, want ProgressData", ev.Data)
		}
		if data.ToState != "in_development" || data.Percentage != 30 {
			t.Errorf("unexpected payload: %+v", data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}
