package notification

// Event kinds, matching the values the booking agents subscribe to.
const (
	EventNewAppointment = "novo_agendamento"
	EventCancellation   = "cancelamento"
	EventReschedule     = "reagendamento"
	EventConfirmation   = "confirmacao"
)

// Reminder kinds go out on the global channel only, driven by the reminder
// sweep rather than by a state change.
const (
	EventReminder24h = "lembrete_24h"
	EventReminder2h  = "lembrete_2h"
	EventFollowUp3d  = "followup_3d"
	EventFollowUp21d = "followup_21d"
)

// ValidEvents is the accepted set for professional subscriptions.
var ValidEvents = []string{
	EventNewAppointment,
	EventCancellation,
	EventReschedule,
	EventConfirmation,
}

func IsValidEvent(kind string) bool {
	for _, e := range ValidEvents {
		if e == kind {
			return true
		}
	}
	return false
}

// Payload is the wire format POSTed to both webhook channels.
type Payload struct {
	Tipo          string `json:"tipo"`
	AgendamentoID string `json:"agendamento_id"`

	Cliente     ClientInfo      `json:"cliente"`
	Agendamento AppointmentInfo `json:"agendamento"`

	Cancelamento  *CancellationInfo `json:"cancelamento,omitempty"`
	Reagendamento *RescheduleInfo   `json:"reagendamento,omitempty"`
}

type ClientInfo struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
}

type AppointmentInfo struct {
	Data         string   `json:"data"`
	Hora         string   `json:"hora"`
	Barbeiro     string   `json:"barbeiro"`
	Servicos     []string `json:"servicos,omitempty"`
	ValorTotal   float64  `json:"valor_total"`
	DuracaoTotal int      `json:"duracao_total,omitempty"`
}

type CancellationInfo struct {
	CanceladoPor      string `json:"cancelado_por,omitempty"`
	Motivo            string `json:"motivo,omitempty"`
	HorasAntecedencia string `json:"horas_antecedencia,omitempty"`
}

type RescheduleInfo struct {
	DataAnterior string `json:"data_anterior"`
	HoraAnterior string `json:"hora_anterior"`
}

// FollowUpPayload is the wire format of the post-service follow-ups. The
// appointment already happened, so the slot travels as "atendimento" and the
// message tells the agent which conversation to open.
type FollowUpPayload struct {
	Tipo          string `json:"tipo"`
	AgendamentoID string `json:"agendamento_id"`

	Cliente     ClientInfo     `json:"cliente"`
	Atendimento AttendanceInfo `json:"atendimento"`
	FollowUp    FollowUpInfo   `json:"follow_up"`

	Mensagem string `json:"mensagem"`
}

type AttendanceInfo struct {
	Data     string `json:"data"`
	Hora     string `json:"hora"`
	Barbeiro string `json:"barbeiro"`
}

type FollowUpInfo struct {
	EnviadoEm string `json:"enviado_em"`
	DiasApos  int    `json:"dias_apos_atendimento"`
}
