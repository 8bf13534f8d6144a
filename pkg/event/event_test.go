// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
	"time"

	"github.com/opd-ai/go-ballista/pkg/physics"
)

// TestNewEventBus tests the creation of a new event bus
func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}

	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}

	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

// TestBaseEvent tests the BaseEvent functionality
func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{
			name:      "ShellFired event",
			eventType: ShellFired,
			source:    "test_source",
		},
		{
			name:      "ShellDestroyed event",
			eventType: ShellDestroyed,
			source:    123,
		},
		{
			name:      "Empty source",
			eventType: GameStarted,
			source:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{
				EventType: tt.eventType,
				Source:    tt.source,
			}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}

			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

// TestBusSubscribe tests event subscription functionality
func TestBusSubscribe_SingleHandler_ReturnsValidSubscription(t *testing.T) {
	bus := NewEventBus()

	handler := func(e Event) {
		// Handler for testing subscription
	}

	sub := bus.Subscribe(ShellFired, handler)

	if sub == nil {
		t.Fatal("Subscribe() returned nil subscription")
	}

	if sub.ID == 0 {
		t.Error("subscription ID should not be 0")
	}

	if sub.Cancel == nil {
		t.Error("subscription Cancel function should not be nil")
	}

	// Verify handler was registered
	bus.mu.RLock()
	handlers := bus.handlers[ShellFired]
	bus.mu.RUnlock()

	if len(handlers) != 1 {
		t.Errorf("expected 1 handler, got %d", len(handlers))
	}
}

// TestBusSubscribe_MultipleHandlers tests multiple subscriptions
func TestBusSubscribe_MultipleHandlers_AllRegistered(t *testing.T) {
	bus := NewEventBus()
	var callCount int

	handler1 := func(e Event) { callCount++ }
	handler2 := func(e Event) { callCount++ }
	handler3 := func(e Event) { callCount++ }

	sub1 := bus.Subscribe(ShellFired, handler1)
	sub2 := bus.Subscribe(ShellFired, handler2)
	_ = bus.Subscribe(ShellDestroyed, handler3)

	// Check unique IDs
	if sub1.ID == sub2.ID {
		t.Error("subscriptions should have unique IDs")
	}

	// Check handlers count
	bus.mu.RLock()
	firedHandlers := bus.handlers[ShellFired]
	destroyedHandlers := bus.handlers[ShellDestroyed]
	bus.mu.RUnlock()

	if len(firedHandlers) != 2 {
		t.Errorf("expected 2 handlers for ShellFired, got %d", len(firedHandlers))
	}

	if len(destroyedHandlers) != 1 {
		t.Errorf("expected 1 handler for ShellDestroyed, got %d", len(destroyedHandlers))
	}
}

// TestBusPublish tests event publishing functionality
func TestBusPublish_WithSubscribers_CallsAllHandlers(t *testing.T) {
	bus := NewEventBus()
	var callCount int
	var receivedEvents []Event

	handler1 := func(e Event) {
		callCount++
		receivedEvents = append(receivedEvents, e)
	}

	handler2 := func(e Event) {
		callCount++
		receivedEvents = append(receivedEvents, e)
	}

	bus.Subscribe(ShellFired, handler1)
	bus.Subscribe(ShellFired, handler2)

	event := &BaseEvent{
		EventType: ShellFired,
		Source:    "test",
	}

	bus.Publish(event)

	if callCount != 2 {
		t.Errorf("expected 2 handler calls, got %d", callCount)
	}

	if len(receivedEvents) != 2 {
		t.Errorf("expected 2 received events, got %d", len(receivedEvents))
	}

	for _, e := range receivedEvents {
		if e.GetType() != ShellFired {
			t.Errorf("expected event type %v, got %v", ShellFired, e.GetType())
		}
	}
}

// TestBusPublish_NoSubscribers tests publishing without subscribers
func TestBusPublish_NoSubscribers_NoError(t *testing.T) {
	bus := NewEventBus()

	event := &BaseEvent{
		EventType: ShellFired,
		Source:    "test",
	}

	// Should not panic or error
	bus.Publish(event)
}

// TestBusPublish_WrongEventType tests publishing to non-subscribed event type
func TestBusPublish_WrongEventType_HandlersNotCalled(t *testing.T) {
	bus := NewEventBus()
	handlerCalled := false

	handler := func(e Event) {
		handlerCalled = true
	}

	bus.Subscribe(ShellFired, handler)

	event := &BaseEvent{
		EventType: ShellDestroyed,
		Source:    "test",
	}

	bus.Publish(event)

	if handlerCalled {
		t.Error("handler should not have been called for different event type")
	}
}

// TestSubscriptionCancel tests canceling subscriptions
func TestSubscriptionCancel_ValidSubscription_RemovesHandler(t *testing.T) {
	bus := NewEventBus()
	handlerCalled := false

	handler := func(e Event) {
		handlerCalled = true
	}

	sub := bus.Subscribe(ShellFired, handler)

	// Verify handler is registered
	bus.mu.RLock()
	handlersBefore := len(bus.handlers[ShellFired])
	bus.mu.RUnlock()

	if handlersBefore != 1 {
		t.Errorf("expected 1 handler before cancel, got %d", handlersBefore)
	}

	// Cancel subscription
	sub.Cancel()

	// Verify handler is removed
	bus.mu.RLock()
	handlersAfter := len(bus.handlers[ShellFired])
	bus.mu.RUnlock()

	if handlersAfter != 0 {
		t.Errorf("expected 0 handlers after cancel, got %d", handlersAfter)
	}

	// Verify handler is not called after cancellation
	event := &BaseEvent{
		EventType: ShellFired,
		Source:    "test",
	}

	bus.Publish(event)

	if handlerCalled {
		t.Error("handler should not be called after cancellation")
	}
}

// TestConcurrentAccess tests thread safety
func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	handlerCount := 0
	var mu sync.Mutex

	handler := func(e Event) {
		mu.Lock()
		handlerCount++
		mu.Unlock()
	}

	// Start multiple goroutines to subscribe concurrently
	numGoroutines := 10
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			bus.Subscribe(ShellFired, handler)
		}()
	}

	wg.Wait()

	// Verify all subscriptions were registered
	bus.mu.RLock()
	handlers := bus.handlers[ShellFired]
	bus.mu.RUnlock()

	if len(handlers) != numGoroutines {
		t.Errorf("expected %d handlers, got %d", numGoroutines, len(handlers))
	}

	// Test concurrent publishing
	event := &BaseEvent{
		EventType: ShellFired,
		Source:    "test",
	}

	// Publish concurrently
	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			bus.Publish(event)
		}()
	}

	wg.Wait()

	// Give handlers time to execute
	time.Sleep(10 * time.Millisecond)

	mu.Lock()
	expectedCalls := numGoroutines * 3
	if handlerCount != expectedCalls {
		t.Errorf("expected %d handler calls, got %d", expectedCalls, handlerCount)
	}
	mu.Unlock()
}

// TestNewShellEvent tests shell event creation
func TestNewShellEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	tests := []struct {
		name     string
		source   interface{}
		shellID  uint64
		cannon   string
		position physics.Vector2D
		velocity physics.Vector2D
	}{
		{
			name:     "field gun shot",
			source:   "game_engine",
			shellID:  12345,
			cannon:   "field gun",
			position: physics.Vector2D{X: 400, Y: 520},
			velocity: physics.Vector2D{X: 12, Y: -20},
		},
		{
			name:     "mortar shot",
			source:   nil,
			shellID:  67890,
			cannon:   "mortar",
			position: physics.Vector2D{X: 100, Y: 530},
			velocity: physics.Vector2D{X: 4, Y: -28},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewShellEvent(tt.source, tt.shellID, tt.cannon, tt.position, tt.velocity)

			if event == nil {
				t.Fatal("NewShellEvent() returned nil")
			}

			if event.GetType() != ShellFired {
				t.Errorf("GetType() = %v, want %v", event.GetType(), ShellFired)
			}

			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}

			if event.ShellID != tt.shellID {
				t.Errorf("ShellID = %v, want %v", event.ShellID, tt.shellID)
			}

			if event.Cannon != tt.cannon {
				t.Errorf("Cannon = %v, want %v", event.Cannon, tt.cannon)
			}

			if event.Position != tt.position {
				t.Errorf("Position = %v, want %v", event.Position, tt.position)
			}

			if event.Velocity != tt.velocity {
				t.Errorf("Velocity = %v, want %v", event.Velocity, tt.velocity)
			}
		})
	}
}

// TestNewShellImpactEvent tests impact event creation
func TestNewShellImpactEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	source := "game_engine"
	shellID := uint64(555)
	reason := "ground"
	position := physics.Vector2D{X: 640, Y: 550}

	event := NewShellImpactEvent(source, shellID, reason, position)

	if event == nil {
		t.Fatal("NewShellImpactEvent() returned nil")
	}

	if event.GetType() != ShellDestroyed {
		t.Errorf("GetType() = %v, want %v", event.GetType(), ShellDestroyed)
	}

	if event.GetSource() != source {
		t.Errorf("GetSource() = %v, want %v", event.GetSource(), source)
	}

	if event.ShellID != shellID {
		t.Errorf("ShellID = %v, want %v", event.ShellID, shellID)
	}

	if event.Reason != reason {
		t.Errorf("Reason = %v, want %v", event.Reason, reason)
	}

	if event.Position != position {
		t.Errorf("Position = %v, want %v", event.Position, position)
	}
}

// TestNewTrajectoryEvent tests trajectory event creation
func TestNewTrajectoryEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	source := "game_engine"

	event := NewTrajectoryEvent(source, 42, 125, true)

	if event == nil {
		t.Fatal("NewTrajectoryEvent() returned nil")
	}

	if event.GetType() != TrajectoryComputed {
		t.Errorf("GetType() = %v, want %v", event.GetType(), TrajectoryComputed)
	}

	if event.Points != 42 {
		t.Errorf("Points = %v, want 42", event.Points)
	}

	if event.Iterations != 125 {
		t.Errorf("Iterations = %v, want 125", event.Iterations)
	}

	if !event.HitGround {
		t.Error("HitGround = false, want true")
	}
}

// TestNewConfigEvent tests config event creation
func TestNewConfigEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	event := NewConfigEvent("tui", "gravity", 12.5)

	if event == nil {
		t.Fatal("NewConfigEvent() returned nil")
	}

	if event.GetType() != ConfigChanged {
		t.Errorf("GetType() = %v, want %v", event.GetType(), ConfigChanged)
	}

	if event.Field != "gravity" {
		t.Errorf("Field = %v, want %v", event.Field, "gravity")
	}

	if event.Value != 12.5 {
		t.Errorf("Value = %v, want %v", event.Value, 12.5)
	}
}

// TestEventTypes tests that all event type constants are properly defined
func TestEventTypes_Constants_AllDefined(t *testing.T) {
	expectedTypes := []Type{
		GameStarted,
		GameEnded,
		ShellFired,
		ShellDestroyed,
		TrajectoryComputed,
		ConfigChanged,
	}

	for _, eventType := range expectedTypes {
		if string(eventType) == "" {
			t.Errorf("event type %v is empty", eventType)
		}
	}
}

// TestCancelMultipleSubscriptions tests canceling multiple subscriptions
func TestCancelMultipleSubscriptions_DifferentTypes_OnlyTargetRemoved(t *testing.T) {
	bus := NewEventBus()

	handler1Called := false
	handler2Called := false
	handler3Called := false

	handler1 := func(e Event) { handler1Called = true }
	handler2 := func(e Event) { handler2Called = true }
	handler3 := func(e Event) { handler3Called = true }

	sub1 := bus.Subscribe(ShellFired, handler1)
	_ = bus.Subscribe(ShellFired, handler2)
	_ = bus.Subscribe(ShellDestroyed, handler3)

	// Cancel only the first subscription
	sub1.Cancel()

	// Publish ShellFired event
	firedEvent := &BaseEvent{EventType: ShellFired, Source: "test"}
	bus.Publish(firedEvent)

	// Publish ShellDestroyed event
	destroyedEvent := &BaseEvent{EventType: ShellDestroyed, Source: "test"}
	bus.Publish(destroyedEvent)

	if handler1Called {
		t.Error("handler1 should not be called after cancellation")
	}

	if !handler2Called {
		t.Error("handler2 should be called")
	}

	if !handler3Called {
		t.Error("handler3 should be called")
	}
}
