package models

import "time"

// Settings is a single-row table holding the global webhook channel and the
// business rules an operator may tune from the dashboard.
type Settings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WebhookURL string `gorm:"size:500" json:"webhook_url"`

	// NotifyConfirmation gates novo_agendamento, reagendamento and
	// confirmacao events on the global channel; NotifyCancellation gates
	// cancelamento.
	NotifyConfirmation bool `gorm:"default:true" json:"notif_confirmacao"`
	NotifyCancellation bool `gorm:"default:true" json:"notif_cancelamento"`

	// Per-kind switches for the reminder sweep. All ride the global channel.
	NotifyReminder24h bool `gorm:"default:true" json:"notif_lembrete_24h"`
	NotifyReminder2h  bool `gorm:"default:true" json:"notif_lembrete_2h"`
	NotifyFollowUp3d  bool `gorm:"default:true" json:"notif_followup_3d"`
	NotifyFollowUp21d bool `gorm:"default:true" json:"notif_followup_21d"`

	CancellationWindowHours int `gorm:"default:2" json:"prazo_cancelamento_horas"`

	UpdatedAt time.Time `json:"updated_at"`
}
