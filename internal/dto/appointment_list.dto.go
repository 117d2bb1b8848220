package dto

import (
	"github.com/brukssoft/navalha-api/internal/domain/schedule"
	"github.com/brukssoft/navalha-api/internal/models"
)

// AppointmentListDTO is the flat shape the dashboard tables consume. Dates go
// out as DD/MM/YYYY like everywhere else on the wire.
type AppointmentListDTO struct {
	ID               string   `json:"id"`
	Date             string   `json:"data"`
	StartTime        string   `json:"hora_inicio"`
	EndTime          string   `json:"hora_fim,omitempty"`
	Status           string   `json:"status"`
	ClientName       string   `json:"nome_cliente"`
	ClientPhone      string   `json:"telefone"`
	ProfessionalName string   `json:"barbeiro"`
	Services         []string `json:"servicos"`
	Value            float64  `json:"valor"`
	Attended         *bool    `json:"compareceu"`
	Notes            string   `json:"observacoes,omitempty"`
}

func AppointmentToListDTO(ap *models.Appointment) AppointmentListDTO {
	services := make([]string, 0, len(ap.Services))
	for _, s := range ap.Services {
		if s.Service.Name != "" {
			services = append(services, s.Service.Name)
		}
	}

	return AppointmentListDTO{
		ID:               ap.ID,
		Date:             schedule.FormatDate(ap.Date),
		StartTime:        ap.StartTime,
		EndTime:          ap.EndTime,
		Status:           ap.Status,
		ClientName:       ap.ClientName,
		ClientPhone:      ap.ClientPhone,
		ProfessionalName: ap.ProfessionalName,
		Services:         services,
		Value:            ap.Value,
		Attended:         ap.Attended,
		Notes:            ap.Notes,
	}
}

func AppointmentsToListDTO(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for i := range aps {
		out = append(out, AppointmentToListDTO(&aps[i]))
	}
	return out
}
