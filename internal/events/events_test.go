package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublishSubscribe(t *testing.T) {
	bus := NewEventBus()

	var received []*Event
	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		received = append(received, event)
		return nil
	})

	payload := BookingEventPayload{
		BookingID:     42,
		Reference:     "XM-ABC-DEFG",
		OrganizerName: "Jamie",
		TotalGuests:   2,
		TotalAmount:   22.00,
		PaymentStatus: "pending",
	}
	require.NoError(t, bus.PublishJSON(EventBookingCreated, payload))

	require.Len(t, received, 1)
	assert.Equal(t, EventBookingCreated, received[0].Type)
	assert.False(t, received[0].CreatedAt.IsZero())

	var decoded BookingEventPayload
	require.NoError(t, json.Unmarshal(received[0].Payload, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestEventBusIgnoresOtherTypes(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	bus.Subscribe(EventBookingPaid, func(*Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.PublishJSON(EventBookingDeleted, BookingEventPayload{BookingID: 1}))
	assert.Zero(t, calls)

	require.NoError(t, bus.PublishJSON(EventBookingPaid, BookingEventPayload{BookingID: 1}))
	assert.Equal(t, 1, calls)
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	first, second := 0, 0
	bus.Subscribe(EventBookingPaid, func(*Event) error { first++; return nil })
	bus.Subscribe(EventBookingPaid, func(*Event) error { second++; return nil })

	require.NoError(t, bus.PublishJSON(EventBookingPaid, BookingEventPayload{BookingID: 1}))
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventBookingCreated, BookingEventPayload{}))
}
