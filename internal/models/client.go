package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente simples, sem login, identificado pelo telefone
type Client struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name  string `gorm:"size:100;not null" json:"nome"`
	Phone string `gorm:"size:20;index" json:"telefone"`
	Email string `gorm:"size:100" json:"email"`

	// LastService mirrors the most recent finalized appointment's services.
	LastService string `gorm:"size:255" json:"ultimo_servico"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
