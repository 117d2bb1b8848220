package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WebhookSubscription is the per-professional notification target. The global
// channel lives in Settings instead; a professional has at most one row here.
type WebhookSubscription struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ProfessionalID string       `gorm:"size:36;uniqueIndex" json:"profissional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	URL    string   `gorm:"size:500;not null" json:"webhook_url"`
	Events []string `gorm:"serializer:json" json:"eventos"`
	Active bool     `gorm:"default:true" json:"ativo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *WebhookSubscription) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// SubscribedTo reports whether the subscription wants eventKind.
func (w *WebhookSubscription) SubscribedTo(eventKind string) bool {
	for _, e := range w.Events {
		if e == eventKind {
			return true
		}
	}
	return false
}
