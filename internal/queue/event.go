// Package queue defines message payloads exchanged over the broker and the
// background consumer that records booking activity.
package queue

// BookingCreatedEvent is published when a booking is successfully created.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.
type BookingCreatedEvent struct {
	BookingID  uint64 `json:"booking_id"`
	RoomNumber string `json:"room_number"`
	Date       string `json:"date"`
	TimeSlot   string `json:"time_slot"`
	BatchName  string `json:"batch_name"`
	CreatedBy  uint64 `json:"created_by,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// BookingCancelledEvent is published when an active booking is cancelled.
type BookingCancelledEvent struct {
	BookingID   uint64 `json:"booking_id,omitempty"`
	RoomNumber  string `json:"room_number"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	CancelledAt string `json:"cancelled_at"`
}
