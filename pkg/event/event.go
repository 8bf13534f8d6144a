// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-ballista/pkg/physics"
)

// Type represents the type of event
type Type string

// Common event types
const (
	GameStarted        Type = "game_started"
	GameEnded          Type = "game_ended"
	ShellFired         Type = "shell_fired"
	ShellDestroyed     Type = "shell_destroyed"
	TrajectoryComputed Type = "trajectory_computed"
	ConfigChanged      Type = "config_changed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// subscriber pairs a handler with the ID its subscription was issued
// under, so Cancel can remove exactly this registration.
type subscriber struct {
	id      uint64
	handler Handler
}

// Subscription identifies one registered handler. Cancel removes the
// handler from the bus; further publishes will not reach it.
type Subscription struct {
	ID     uint64
	Cancel func()
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{
		id:      id,
		handler: handler,
	})

	return &Subscription{
		ID: id,
		Cancel: func() {
			b.unsubscribe(eventType, id)
		},
	}
}

// unsubscribe removes the handler registered under id
func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			// Publish iterates its snapshot outside the lock, so the
			// old backing array must stay intact.
			next := make([]subscriber, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			b.handlers[eventType] = next
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	// Call each handler
	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// ShellEvent describes a shell leaving the barrel
type ShellEvent struct {
	BaseEvent
	ShellID  uint64
	Cannon   string
	Position physics.Vector2D
	Velocity physics.Vector2D
}

// NewShellEvent creates a new shell fired event
func NewShellEvent(source interface{}, shellID uint64, cannon string, position, velocity physics.Vector2D) *ShellEvent {
	return &ShellEvent{
		BaseEvent: BaseEvent{
			EventType: ShellFired,
			Source:    source,
		},
		ShellID:  shellID,
		Cannon:   cannon,
		Position: position,
		Velocity: velocity,
	}
}

// ShellImpactEvent describes a shell leaving play, either on the ground
// or past a playfield edge
type ShellImpactEvent struct {
	BaseEvent
	ShellID  uint64
	Reason   string
	Position physics.Vector2D
}

// NewShellImpactEvent creates a new shell destroyed event
func NewShellImpactEvent(source interface{}, shellID uint64, reason string, position physics.Vector2D) *ShellImpactEvent {
	return &ShellImpactEvent{
		BaseEvent: BaseEvent{
			EventType: ShellDestroyed,
			Source:    source,
		},
		ShellID:  shellID,
		Reason:   reason,
		Position: position,
	}
}

// TrajectoryEvent describes a completed preview simulation
type TrajectoryEvent struct {
	BaseEvent
	Points     int
	Iterations int
	HitGround  bool
}

// NewTrajectoryEvent creates a new trajectory computed event
func NewTrajectoryEvent(source interface{}, points, iterations int, hitGround bool) *TrajectoryEvent {
	return &TrajectoryEvent{
		BaseEvent: BaseEvent{
			EventType: TrajectoryComputed,
			Source:    source,
		},
		Points:     points,
		Iterations: iterations,
		HitGround:  hitGround,
	}
}

// ConfigEvent describes a runtime parameter change
type ConfigEvent struct {
	BaseEvent
	Field string
	Value float64
}

// NewConfigEvent creates a new config changed event
func NewConfigEvent(source interface{}, field string, value float64) *ConfigEvent {
	return &ConfigEvent{
		BaseEvent: BaseEvent{
			EventType: ConfigChanged,
			Source:    source,
		},
		Field: field,
		Value: value,
	}
}
