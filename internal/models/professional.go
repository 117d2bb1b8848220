package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Professional struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name        string   `gorm:"size:100;not null" json:"nome"`
	Phone       string   `gorm:"size:20" json:"telefone"`
	Specialties []string `gorm:"serializer:json" json:"especialidades"`
	Active      bool     `gorm:"default:true;index" json:"ativo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
