package notify

import (
	"go.uber.org/zap"

	"github.com/akademix/jadwal-api/internal/models"
)

// Observer receives schedule change events. Implementations must be fast;
// delivery is synchronous within the mutating call.
type Observer interface {
	Update(event models.EventType, data map[string]any)
}

// Subject is the publish side of the schedule notification channel. Fan-out
// is synchronous, in attachment order, and a panicking observer never stops
// delivery to the rest.
type Subject struct {
	observers []Observer
	logger    *zap.Logger
}

// NewSubject constructs an empty subject.
func NewSubject(logger *zap.Logger) *Subject {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subject{logger: logger}
}

// Attach registers an observer. Attaching the same observer twice is a
// no-op; it will still receive each event exactly once.
func (s *Subject) Attach(observer Observer) {
	if observer == nil {
		return
	}
	for _, existing := range s.observers {
		if existing == observer {
			return
		}
	}
	s.observers = append(s.observers, observer)
	s.logger.Debug("observer attached", zap.Int("observers", len(s.observers)))
}

// Detach removes an observer if present.
func (s *Subject) Detach(observer Observer) {
	for i, existing := range s.observers {
		if existing == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			s.logger.Debug("observer detached", zap.Int("observers", len(s.observers)))
			return
		}
	}
}

// Len returns the number of attached observers.
func (s *Subject) Len() int {
	return len(s.observers)
}

// Notify delivers the event to every attached observer in order.
func (s *Subject) Notify(event models.EventType, data map[string]any) {
	for _, observer := range s.observers {
		s.deliver(observer, event, data)
	}
}

func (s *Subject) deliver(observer Observer, event models.EventType, data map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("observer update failed",
				zap.String("event", string(event)),
				zap.Any("panic", r))
		}
	}()
	observer.Update(event, data)
}
