package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademix/jadwal-api/internal/models"
)

type countingObserver struct {
	name   string
	events []models.EventType
	sink   *[]string
}

func (o *countingObserver) Update(event models.EventType, data map[string]any) {
	o.events = append(o.events, event)
	if o.sink != nil {
		*o.sink = append(*o.sink, o.name)
	}
}

type panickyObserver struct{}

func (o *panickyObserver) Update(event models.EventType, data map[string]any) {
	panic("observer exploded")
}

func TestAttachIsIdempotent(t *testing.T) {
	subject := NewSubject(nil)
	observer := &countingObserver{}

	subject.Attach(observer)
	subject.Attach(observer)
	assert.Equal(t, 1, subject.Len())

	subject.Notify(models.EventScheduleCreated, nil)
	assert.Equal(t, []models.EventType{models.EventScheduleCreated}, observer.events)
}

func TestAttachNilIsNoop(t *testing.T) {
	subject := NewSubject(nil)
	subject.Attach(nil)
	assert.Equal(t, 0, subject.Len())
}

func TestDetach(t *testing.T) {
	subject := NewSubject(nil)
	first := &countingObserver{}
	second := &countingObserver{}

	subject.Attach(first)
	subject.Attach(second)
	subject.Detach(first)
	require.Equal(t, 1, subject.Len())

	subject.Notify(models.EventScheduleDeleted, nil)
	assert.Empty(t, first.events)
	assert.Len(t, second.events, 1)

	// Detaching an unknown observer is a no-op.
	subject.Detach(first)
	assert.Equal(t, 1, subject.Len())
}

func TestNotifyDeliversInAttachmentOrder(t *testing.T) {
	subject := NewSubject(nil)
	var order []string
	subject.Attach(&countingObserver{name: "first", sink: &order})
	subject.Attach(&countingObserver{name: "second", sink: &order})
	subject.Attach(&countingObserver{name: "third", sink: &order})

	subject.Notify(models.EventScheduleUpdated, nil)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestPanickingObserverDoesNotStopDelivery(t *testing.T) {
	subject := NewSubject(nil)
	survivor := &countingObserver{}
	subject.Attach(&panickyObserver{})
	subject.Attach(survivor)

	assert.NotPanics(t, func() {
		subject.Notify(models.EventConflictDetected, map[string]any{"description": "boom"})
	})
	assert.Len(t, survivor.events, 1)
}
