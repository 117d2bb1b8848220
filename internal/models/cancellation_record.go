package models

import "time"

// CancellationRecord keeps the history of every cancellation attempt,
// including the notice given and whether the window rules allowed it.
type CancellationRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID string `gorm:"size:36;index" json:"agendamento_id"`

	CancelledBy string  `gorm:"size:20" json:"cancelado_por"`
	Reason      string  `gorm:"size:255" json:"motivo"`
	HoursNotice float64 `json:"horas_antecedencia"`
	Allowed     bool    `json:"permitido"`

	ClientName       string  `gorm:"size:100" json:"cliente_nome"`
	ClientPhone      string  `gorm:"size:20" json:"cliente_telefone"`
	ProfessionalName string  `gorm:"size:100" json:"barbeiro_nome"`
	Date             string  `gorm:"size:10" json:"data_agendamento"`
	StartTime        string  `gorm:"size:5" json:"hora_inicio"`
	Value            float64 `json:"valor"`

	CreatedAt time.Time `json:"created_at"`
}
