package models

import "time"

// NotificationRecord is the append-only audit of webhook deliveries: one row
// per channel per event, success or not. Never updated, never deleted.
type NotificationRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID *string `gorm:"size:36;index" json:"agendamento_id"`

	Kind      string `gorm:"size:50;not null" json:"tipo"`
	TargetURL string `gorm:"size:500" json:"webhook_url"`

	Payload  string `gorm:"type:text" json:"payload"`
	Response string `gorm:"type:text" json:"resposta"`

	// Outcome is "enviado" or "falhou".
	Outcome     string `gorm:"size:10;not null" json:"status"`
	ErrorDetail string `gorm:"size:500" json:"erro"`

	CreatedAt time.Time `json:"created_at"`
}
