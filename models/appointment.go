package models

import "time"

// AppointmentRecord is the persisted trace of a successfully finalized
// booking, kept for the clinic's records.
type AppointmentRecord struct {
	ID         string    `bson:"_id" json:"id"`
	CallID     string    `bson:"callId" json:"callId"`
	Doctor     string    `bson:"doctor" json:"doctor"`
	TimeText   string    `bson:"timeText" json:"timeText"`
	StartsAt   time.Time `bson:"startsAt" json:"startsAt"`
	GuestName  string    `bson:"guestName" json:"guestName"`
	GuestPhone string    `bson:"guestPhone" json:"guestPhone"`
	BookingURL string    `bson:"bookingUrl" json:"bookingUrl"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is carried by the queued reminder task and rendered into
// the reminder SMS shortly before the appointment.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	Phone         string `json:"phone"`
	Doctor        string `json:"doctor"`
	TimeText      string `json:"timeText"`
	BookingURL    string `json:"bookingUrl"`
}
