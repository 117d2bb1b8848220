package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is the single booking record. Time blocks (status "bloqueado")
// and purchase pickups (status "pendente_retirada") live in the same table,
// which is why ProfessionalID and the client fields are nullable.
type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ClientID *string `gorm:"size:36" json:"cliente_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"cliente,omitempty"`

	ProfessionalID *string       `gorm:"size:36;index:idx_professional_day" json:"profissional_id"`
	Professional   *Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"profissional,omitempty"`

	// Date is the calendar day at midnight in the business timezone.
	Date time.Time `gorm:"type:date;index:idx_professional_day" json:"data_agendamento"`

	StartTime string `gorm:"size:5" json:"hora_inicio"`
	// EndTime is only set for blocks; service appointments derive their end
	// from the linked service durations.
	EndTime string `gorm:"size:5" json:"hora_fim,omitempty"`

	ClientName  string `gorm:"size:100" json:"nome_cliente"`
	ClientPhone string `gorm:"size:20" json:"telefone"`

	// ProfessionalName is a snapshot taken at booking time so history survives
	// professional renames or removals.
	ProfessionalName string `gorm:"size:100" json:"barbeiro"`

	Value  float64 `json:"valor"`
	Status string  `gorm:"size:20;default:'agendado';index" json:"status"`

	// Attended stays nil until check-in, attendance confirmation or the
	// no-show sweep decides it.
	Attended *bool `json:"compareceu"`

	CheckinAt      *time.Time `json:"hora_checkin"`
	CheckoutAt     *time.Time `json:"hora_checkout"`
	ServiceTimeMin *int       `json:"tempo_atendimento_minutos"`

	Notes string `gorm:"size:500" json:"observacoes"`

	Services []AppointmentService `json:"servicos,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AppointmentService links an appointment to one of its services, snapshotting
// price and duration at booking time.
type AppointmentService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID string `gorm:"size:36;index" json:"agendamento_id"`

	ServiceID string  `gorm:"size:36" json:"servico_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"servico"`

	Price       float64 `json:"preco"`
	DurationMin int     `json:"duracao_minutos"`
}
